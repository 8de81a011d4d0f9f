package harness

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/tosa2mlir/internal/array"
	"github.com/roach88/tosa2mlir/internal/ir"
)

// Defaults for Generator fields.
const (
	DefaultEntry  = "main"
	DefaultDriver = "test_main"
)

// CheckPrefix is the FileCheck line preceding each printed result.
const CheckPrefix = "// CHECK: Unranked Memref base@ = "

// printElements are the element types with a print_memref declaration.
var printElements = []string{"f32", "f64", "i8", "i16", "i32", "i64"}

// Generator renders test files. The zero value is not usable: Mode must be
// set. Generator holds no state between calls.
type Generator struct {
	Mode Mode

	// Entry is the translated function the driver calls. Default "main".
	Entry string

	// Driver names the generated driver function. Default "test_main".
	Driver string

	// DriverAttributes are rendered as "attributes { a, b }" on the driver
	// in every mode.
	DriverAttributes []string
}

func (g Generator) entry() string {
	if g.Entry == "" {
		return DefaultEntry
	}
	return g.Entry
}

func (g Generator) driver() string {
	if g.Driver == "" {
		return DefaultDriver
	}
	return g.Driver
}

// Preamble returns the mode-specific text preceding the IR.
func (g Generator) Preamble() string {
	if g.Mode != ModeLowLevel {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("// RUN: mlir-opt %s --tosa-to-linalg-on-tensors -convert-elementwise-to-linalg -std-bufferize -tensor-constant-bufferize -linalg-bufferize -tensor-bufferize -func-bufferize -convert-linalg-to-loops -convert-linalg-to-llvm -convert-std-to-llvm | \\\n")
	fmt.Fprintf(&sb, "// RUN: mlir-cpu-runner -e %s -entry-point-result=void -shared-libs=%%mlir_integration_test_dir/libmlir_runner_utils%%shlibext | \\\n", g.driver())
	sb.WriteString("// RUN: FileCheck %s\n\n")
	for _, elem := range printElements {
		fmt.Fprintf(&sb, "func private @print_memref_%s(%%ptr : tensor<*x%s>)\n", elem, elem)
	}
	return sb.String()
}

// Generate renders a complete test file for the translated IR text.
//
// inputs feed the entry function in order; results are the expected
// outputs in order. Any array whose kind has no MLIR type fails with
// ir.ErrUnsupportedType before anything is rendered, as does a low-level
// result whose element type cannot be printed.
func (g Generator) Generate(irText string, inputs, results []array.Array) (string, error) {
	if g.Mode != ModeLowLevel && g.Mode != ModeSymbolicAssertion {
		return "", fmt.Errorf("generate test: %s is not a valid mode", g.Mode)
	}

	inTypes, err := types(inputs)
	if err != nil {
		return "", err
	}
	resTypes, err := types(results)
	if err != nil {
		return "", err
	}
	if g.Mode == ModeLowLevel {
		if err := printable(results); err != nil {
			return "", err
		}
	}

	d := &driver{gen: g, regs: ir.NewRegisterTable()}
	body, err := d.render(inputs, inTypes, results, resTypes)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if pre := g.Preamble(); pre != "" {
		sb.WriteString(pre)
		sb.WriteByte('\n')
	}
	sb.WriteString(irText)
	if !strings.HasSuffix(irText, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	sb.WriteString(body)
	return sb.String(), nil
}

func types(arrays []array.Array) ([]string, error) {
	out := make([]string, len(arrays))
	for i, a := range arrays {
		typ, err := a.Type()
		var te *ir.TranslateError
		if errors.As(err, &te) {
			return nil, te.ForTensor(a.Name)
		}
		if err != nil {
			return nil, err
		}
		out[i] = typ
	}
	return out, nil
}

// printable fails for the first result whose element type has no
// print_memref declaration in the low-level preamble.
func printable(results []array.Array) error {
	for _, r := range results {
		elem, err := r.Kind.Token()
		if err != nil {
			return err
		}
		if !slices.Contains(printElements, elem) {
			return ir.NewUnsupportedType(r.Kind).ForTensor(r.Name)
		}
	}
	return nil
}

// driver renders one driver function.
type driver struct {
	gen   Generator
	regs  *ir.RegisterTable
	lines []string
}

func (d *driver) emit(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func (d *driver) render(inputs []array.Array, inTypes []string, results []array.Array, resTypes []string) (string, error) {
	header := "func @" + d.gen.driver() + "()"
	if len(d.gen.DriverAttributes) > 0 {
		header += " attributes { " + strings.Join(d.gen.DriverAttributes, ", ") + " }"
	}
	d.emit("%s {", header)

	args := make([]string, len(inputs))
	for i, in := range inputs {
		reg, err := d.regs.AllocateValue([]string{"input:" + in.Name})
		if err != nil {
			return "", err
		}
		args[i] = reg
		d.emit("  %s = constant dense<%s> : %s", reg, Literal(in), inTypes[i])
	}
	d.emit("")

	call := fmt.Sprintf("call @%s(%s) : (%s) -> (%s)",
		d.gen.entry(), strings.Join(args, ", "), strings.Join(inTypes, ", "), strings.Join(resTypes, ", "))
	if len(results) == 0 {
		d.emit("  %s", call)
	} else {
		names := make([]string, len(results))
		for i, r := range results {
			names[i] = "result:" + r.Name
		}
		def, err := d.regs.AllocateValue(names)
		if err != nil {
			return "", err
		}
		d.emit("  %s = %s", def, call)
	}

	for i, r := range results {
		reg, err := d.regs.Lookup("result:" + r.Name)
		if err != nil {
			return "", err
		}
		d.emit("")
		if d.gen.Mode == ModeLowLevel {
			err = d.print(r, reg, resTypes[i])
		} else {
			d.assert(r, reg, resTypes[i])
		}
		if err != nil {
			return "", err
		}
	}

	d.emit("  return")
	d.emit("}")
	return strings.Join(d.lines, "\n") + "\n", nil
}

// print flattens, casts and prints one result.
func (d *driver) print(r array.Array, reg, typ string) error {
	elem, err := r.Kind.Token()
	if err != nil {
		return err
	}
	flat, err := ir.FlatTensorType(r.Kind, r.Shape)
	if err != nil {
		return err
	}
	unranked, err := ir.UnrankedTensorType(r.Kind)
	if err != nil {
		return err
	}

	d.emit("%s", CheckPrefix)
	src := reg
	if r.Shape.Rank() != 1 {
		dims := make([]string, r.Shape.Rank())
		for i := range dims {
			dims[i] = fmt.Sprintf("d%d", i)
		}
		m := strings.Join(dims, ", ")
		if src, err = d.regs.AllocateValue([]string{"flat:" + r.Name}); err != nil {
			return err
		}
		d.emit("  %s = linalg.tensor_reshape %s [affine_map<(%s) -> (%s)>] : %s into %s", src, reg, m, m, typ, flat)
	}
	cast, err := d.regs.AllocateValue([]string{"cast:" + r.Name})
	if err != nil {
		return err
	}
	d.emit("  %s = tensor.cast %s : %s to %s", cast, src, flat, unranked)
	d.emit("  call @print_memref_%s(%s) : (%s) -> ()", elem, cast, unranked)
	return nil
}

// assert compares one result against its expected constant.
func (d *driver) assert(r array.Array, reg, typ string) {
	check := "check.expect_eq_const"
	if r.Kind.IsFloat() {
		check = "check.expect_almost_eq_const"
	}
	d.emit("  %s(%s, dense<%s> : %s) : %s", check, reg, Literal(r), typ, typ)
}
