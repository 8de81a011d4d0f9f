package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tosa2mlir/internal/graph"
	"github.com/roach88/tosa2mlir/internal/ir"
	"github.com/roach88/tosa2mlir/internal/testutil"
)

func load(t *testing.T, spec testutil.GraphSpec) *graph.Graph {
	t.Helper()
	g, err := graph.Load(spec.Encode())
	require.NoError(t, err)
	return g
}

func multiResultGraph() testutil.GraphSpec {
	return testutil.Main(testutil.BlockSpec{
		Inputs:  []string{"x", "w"},
		Outputs: []string{"s", "z"},
		Tensors: []testutil.TensorSpec{
			testutil.Tensor("x", ir.ElementInt32, 4),
			testutil.Tensor("w", ir.ElementInt32, 4),
			testutil.Tensor("y", ir.ElementInt32, 4),
			testutil.Tensor("z", ir.ElementInt32, 4),
			testutil.Tensor("s", ir.ElementInt32, 4),
		},
		Operators: []testutil.OperatorSpec{
			testutil.Placeholder("x"),
			testutil.Placeholder("w"),
			testutil.Op(ir.OpIdentityN, []string{"x", "w"}, "y", "z"),
			testutil.Op(ir.OpAdd, []string{"y", "z"}, "s"),
		},
	})
}

func TestTranslate_Golden(t *testing.T) {
	tests := []struct {
		name string
		spec testutil.GraphSpec
	}{
		{"add", testutil.AddGraph()},
		{"multi_result", multiResultGraph()},
		{"scalar_chain", testutil.Main(testutil.BlockSpec{
			Inputs:  []string{"p"},
			Outputs: []string{"r"},
			Tensors: []testutil.TensorSpec{
				testutil.Tensor("p", ir.ElementBool),
				testutil.Tensor("q", ir.ElementBool),
				testutil.Tensor("r", ir.ElementBool),
			},
			Operators: []testutil.OperatorSpec{
				testutil.Placeholder("p"),
				testutil.Op(ir.OpLogicalNot, []string{"p"}, "q"),
				testutil.Op(ir.OpIdentity, []string{"q"}, "r"),
			},
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Translate(load(t, tt.spec), Options{})
			require.NoError(t, err)
			testutil.AssertGolden(t, tt.name, []byte(text))
		})
	}
}

func TestTranslate_MultiResultUseSites(t *testing.T) {
	text, err := Translate(load(t, multiResultGraph()), Options{})
	require.NoError(t, err)

	assert.Contains(t, text, "  %0:2 = \"tosa.identityn\"")
	assert.Contains(t, text, "(%0#0, %0#1)")
	assert.Contains(t, text, "return %1, %0#1 :")
}

func TestTranslate_Namespace(t *testing.T) {
	text, err := Translate(load(t, testutil.AddGraph()), Options{Namespace: "tosa_test"})
	require.NoError(t, err)
	assert.Contains(t, text, `"tosa_test.add"(%arg0, %arg1)`)
}

func TestTranslate_TrailingNewline(t *testing.T) {
	text, err := Translate(load(t, testutil.AddGraph()), Options{})
	require.NoError(t, err)
	assert.Regexp(t, `}\n$`, text)
	assert.NotRegexp(t, `\n\n$`, text)
}

func TestTranslate_EmptyBlock(t *testing.T) {
	text, err := Translate(load(t, testutil.Main(testutil.BlockSpec{})), Options{})
	require.NoError(t, err)
	assert.Equal(t, "func @main() -> () {\n  return\n}\n", text)
}

func TestTranslate_UnsupportedQuantization(t *testing.T) {
	spec := testutil.Main(testutil.BlockSpec{
		Inputs:  []string{"x"},
		Outputs: []string{"y"},
		Tensors: []testutil.TensorSpec{
			testutil.Tensor("x", ir.ElementInt8, 4),
			testutil.Tensor("y", ir.ElementInt8, 4),
		},
		Operators: []testutil.OperatorSpec{
			testutil.Placeholder("x"),
			{Op: ir.OpNegate, Inputs: []string{"x"}, Outputs: []string{"y"}, QuantInfoType: 2, QuantInfo: true},
		},
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "test.tosa")
	require.NoError(t, os.WriteFile(path, spec.Encode(), 0o644))

	text, err := TranslateFile(path, Options{})
	require.Error(t, err)
	assert.Empty(t, text)
	assert.True(t, ir.IsUnsupportedFeature(err))
	assert.Equal(t, ErrCodeUnsupportedFeature, Code(err))

	var te *ir.TranslateError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "main", te.Block)
	assert.Equal(t, 1, te.Operator)
}

func TestTranslate_Failures(t *testing.T) {
	tests := []struct {
		name  string
		block testutil.BlockSpec
		is    func(error) bool
		code  string
	}{
		{
			name: "attribute",
			block: testutil.BlockSpec{
				Inputs:  []string{"x"},
				Tensors: []testutil.TensorSpec{testutil.Tensor("x", ir.ElementFloat32, 2), testutil.Tensor("y", ir.ElementFloat32, 2)},
				Operators: []testutil.OperatorSpec{
					{Op: ir.OpClamp, Inputs: []string{"x"}, Outputs: []string{"y"}, AttributeType: 5, Attribute: true},
				},
			},
			is:   ir.IsUnsupportedFeature,
			code: ErrCodeUnsupportedFeature,
		},
		{
			name: "unknown sentinel",
			block: testutil.BlockSpec{
				Inputs:    []string{"x"},
				Tensors:   []testutil.TensorSpec{testutil.Tensor("x", ir.ElementFloat32, 2), testutil.Tensor("y", ir.ElementFloat32, 2)},
				Operators: []testutil.OperatorSpec{testutil.Op(ir.OpUnknown, []string{"x"}, "y")},
			},
			is:   ir.IsUnknownOperatorKind,
			code: ErrCodeUnknownOperatorKind,
		},
		{
			name: "tag outside table",
			block: testutil.BlockSpec{
				Inputs:    []string{"x"},
				Tensors:   []testutil.TensorSpec{testutil.Tensor("x", ir.ElementFloat32, 2), testutil.Tensor("y", ir.ElementFloat32, 2)},
				Operators: []testutil.OperatorSpec{testutil.Op(ir.OpKind(500), []string{"x"}, "y")},
			},
			is:   ir.IsUnknownOperatorKind,
			code: ErrCodeUnknownOperatorKind,
		},
		{
			name: "use before definition",
			block: testutil.BlockSpec{
				Tensors:   []testutil.TensorSpec{testutil.Tensor("x", ir.ElementFloat32, 2), testutil.Tensor("y", ir.ElementFloat32, 2)},
				Operators: []testutil.OperatorSpec{testutil.Op(ir.OpAbs, []string{"x"}, "y")},
			},
			is:   ir.IsUnboundValue,
			code: ErrCodeUnboundValue,
		},
		{
			name: "undeclared output",
			block: testutil.BlockSpec{
				Inputs:    []string{"x"},
				Tensors:   []testutil.TensorSpec{testutil.Tensor("x", ir.ElementFloat32, 2)},
				Operators: []testutil.OperatorSpec{testutil.Op(ir.OpAbs, []string{"x"}, "y")},
			},
			is:   ir.IsUnboundValue,
			code: ErrCodeUnboundValue,
		},
		{
			name: "unsupported element kind",
			block: testutil.BlockSpec{
				Tensors: []testutil.TensorSpec{testutil.Tensor("x", ir.ElementKind(77), 2)},
			},
			is:   ir.IsUnsupportedType,
			code: ErrCodeUnsupportedType,
		},
		{
			name: "redefinition",
			block: testutil.BlockSpec{
				Inputs:    []string{"x"},
				Tensors:   []testutil.TensorSpec{testutil.Tensor("x", ir.ElementFloat32, 2)},
				Operators: []testutil.OperatorSpec{testutil.Op(ir.OpAbs, []string{"x"}, "x")},
			},
			is:   ir.IsMalformedGraph,
			code: ErrCodeMalformedGraph,
		},
		{
			name: "undefined block output",
			block: testutil.BlockSpec{
				Outputs: []string{"y"},
				Tensors: []testutil.TensorSpec{testutil.Tensor("y", ir.ElementFloat32, 2)},
			},
			is:   ir.IsUnboundValue,
			code: ErrCodeUnboundValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Translate(load(t, testutil.Main(tt.block)), Options{})
			require.Error(t, err)
			assert.Empty(t, text)
			assert.True(t, tt.is(err), "got %v", err)
			assert.Equal(t, tt.code, Code(err))
		})
	}
}

func TestLowerOperator_PlaceholderAllocatesNothing(t *testing.T) {
	regs := ir.NewRegisterTable()
	l := NewLowerer("", regs, NewTypeTable())

	line, err := l.LowerOperator(graph.NewOperator(ir.OpPlaceholder, nil, []string{"a"}, graph.Payload{}, graph.Payload{}))
	require.NoError(t, err)
	assert.Equal(t, "  // placeholder() -> a", line)
	assert.False(t, regs.Bound("a"))
}

func TestLowerOperator_PlaceholderWithInputsIsGeneric(t *testing.T) {
	regs := ir.NewRegisterTable()
	types := NewTypeTable()
	g := load(t, testutil.Main(testutil.BlockSpec{
		Tensors: []testutil.TensorSpec{testutil.Tensor("a", ir.ElementInt8, 1), testutil.Tensor("b", ir.ElementInt8, 1)},
	}))
	require.NoError(t, types.Refresh(g.Main()))
	_, err := regs.ReserveArgument("a")
	require.NoError(t, err)

	line, err := NewLowerer("", regs, types).LowerOperator(
		graph.NewOperator(ir.OpPlaceholder, []string{"a"}, []string{"b"}, graph.Payload{}, graph.Payload{}))
	require.NoError(t, err)
	assert.Equal(t, `  %0 = "tosa.placeholder"(%arg0) : (tensor<1xi8>) -> (tensor<1xi8>)`, line)
}

func TestTypeTable_RefreshReplaces(t *testing.T) {
	types := NewTypeTable()
	first := load(t, testutil.Main(testutil.BlockSpec{
		Tensors: []testutil.TensorSpec{testutil.Tensor("a", ir.ElementInt8, 1)},
	}))
	second := load(t, testutil.Main(testutil.BlockSpec{
		Tensors: []testutil.TensorSpec{testutil.Tensor("b", ir.ElementInt16, 2, 2)},
	}))

	require.NoError(t, types.Refresh(first.Main()))
	require.NoError(t, types.Refresh(second.Main()))
	assert.Equal(t, 1, types.Len())

	typ, err := types.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, "tensor<2x2xi16>", typ)

	_, err = types.Lookup("a")
	assert.True(t, ir.IsUnboundValue(err))
}

var (
	headerRet = regexp.MustCompile(`(?m)^func @main\(.*\) -> \((.*)\) \{$`)
	returnRet = regexp.MustCompile(`(?m)^  return (%\d+) : (.*)$`)
)

// identityChain is main(x) -> tN with t1 = identity(x), t2 = identity(t1), ...
func identityChain(n int, kind ir.ElementKind, shape []int32) testutil.GraphSpec {
	blk := testutil.BlockSpec{
		Inputs:    []string{"x"},
		Tensors:   []testutil.TensorSpec{testutil.Tensor("x", kind, shape...)},
		Operators: []testutil.OperatorSpec{testutil.Placeholder("x")},
	}
	prev := "x"
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("t%d", i)
		blk.Tensors = append(blk.Tensors, testutil.Tensor(name, kind, shape...))
		blk.Operators = append(blk.Operators, testutil.Op(ir.OpIdentity, []string{prev}, name))
		prev = name
	}
	blk.Outputs = []string{prev}
	return testutil.Main(blk)
}

func TestTranslate_HeaderMatchesTerminator(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	kinds := ir.ElementKinds()
	properties.Property("declared output type equals returned type", prop.ForAll(
		func(n, k int, dims []int32) bool {
			g, err := graph.Load(identityChain(n, kinds[k], dims).Encode())
			if err != nil {
				return false
			}
			text, err := Translate(g, Options{})
			if err != nil {
				return false
			}
			h := headerRet.FindStringSubmatch(text)
			r := returnRet.FindStringSubmatch(text)
			if h == nil || r == nil {
				return false
			}
			return h[1] == r[2] && r[1] == fmt.Sprintf("%%%d", n-1)
		},
		gen.IntRange(1, 8),
		gen.IntRange(0, len(kinds)-1),
		gen.SliceOfN(3, gen.Int32Range(0, 6)),
	))

	properties.TestingRun(t)
}
