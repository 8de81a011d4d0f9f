package ir

import "fmt"

// OpKind is the operator tag of a TOSA operator.
// Values match the Op enumeration of the TOSA schema.
type OpKind uint32

// Operator kinds. OpUnknown is the schema's reserved zero value and has no
// name in the operator table.
const (
	OpUnknown OpKind = iota
	OpArgMax
	OpAvgPool2D
	OpConv2D
	OpConv3D
	OpDepthwiseConv2D
	OpFullyConnected
	OpMatMul
	OpMaxPool2D
	OpTransposeConv2D
	OpClamp
	OpReluN
	OpSigmoid
	OpTanh
	OpAdd
	OpArithmeticRightShift
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpDiv
	OpLogicalAnd
	OpLogicalLeftShift
	OpLogicalRightShift
	OpLogicalOr
	OpLogicalXor
	OpMaximum
	OpMinimum
	OpMul
	OpPow
	OpSub
	OpTable
	OpAbs
	OpBitwiseNot
	OpCeil
	OpClz
	OpExp
	OpFloor
	OpLog
	OpLogicalNot
	OpNegate
	OpReciprocal
	OpRsqrt
	OpSelect
	OpEqual
	OpGreater
	OpGreaterEqual
	OpReduceAll
	OpReduceAny
	OpReduceMax
	OpReduceMin
	OpReduceProduct
	OpReduceSum
	OpConcat
	OpPad
	OpReshape
	OpReverse
	OpSlice
	OpTile
	OpTranspose
	OpGather
	OpScatter
	OpResize
	OpCast
	OpRescale
	OpConst
	OpPlaceholder
	OpIdentity
	OpIdentityN
	OpCustom
	OpCondIf
	OpWhileLoop

	numOpKinds
)

// opNames is the operator table: the lowercased schema name of every kind.
// Keyed entries make a missing or duplicated kind a visible change here.
var opNames = [numOpKinds]string{
	OpArgMax:               "argmax",
	OpAvgPool2D:            "avg_pool2d",
	OpConv2D:               "conv2d",
	OpConv3D:               "conv3d",
	OpDepthwiseConv2D:      "depthwise_conv2d",
	OpFullyConnected:       "fully_connected",
	OpMatMul:               "matmul",
	OpMaxPool2D:            "max_pool2d",
	OpTransposeConv2D:      "transpose_conv2d",
	OpClamp:                "clamp",
	OpReluN:                "relun",
	OpSigmoid:              "sigmoid",
	OpTanh:                 "tanh",
	OpAdd:                  "add",
	OpArithmeticRightShift: "arithmetic_right_shift",
	OpBitwiseAnd:           "bitwise_and",
	OpBitwiseOr:            "bitwise_or",
	OpBitwiseXor:           "bitwise_xor",
	OpDiv:                  "div",
	OpLogicalAnd:           "logical_and",
	OpLogicalLeftShift:     "logical_left_shift",
	OpLogicalRightShift:    "logical_right_shift",
	OpLogicalOr:            "logical_or",
	OpLogicalXor:           "logical_xor",
	OpMaximum:              "maximum",
	OpMinimum:              "minimum",
	OpMul:                  "mul",
	OpPow:                  "pow",
	OpSub:                  "sub",
	OpTable:                "table",
	OpAbs:                  "abs",
	OpBitwiseNot:           "bitwise_not",
	OpCeil:                 "ceil",
	OpClz:                  "clz",
	OpExp:                  "exp",
	OpFloor:                "floor",
	OpLog:                  "log",
	OpLogicalNot:           "logical_not",
	OpNegate:               "negate",
	OpReciprocal:           "reciprocal",
	OpRsqrt:                "rsqrt",
	OpSelect:               "select",
	OpEqual:                "equal",
	OpGreater:              "greater",
	OpGreaterEqual:         "greater_equal",
	OpReduceAll:            "reduce_all",
	OpReduceAny:            "reduce_any",
	OpReduceMax:            "reduce_max",
	OpReduceMin:            "reduce_min",
	OpReduceProduct:        "reduce_product",
	OpReduceSum:            "reduce_sum",
	OpConcat:               "concat",
	OpPad:                  "pad",
	OpReshape:              "reshape",
	OpReverse:              "reverse",
	OpSlice:                "slice",
	OpTile:                 "tile",
	OpTranspose:            "transpose",
	OpGather:               "gather",
	OpScatter:              "scatter",
	OpResize:               "resize",
	OpCast:                 "cast",
	OpRescale:              "rescale",
	OpConst:                "const",
	OpPlaceholder:          "placeholder",
	OpIdentity:             "identity",
	OpIdentityN:            "identityn",
	OpCustom:               "custom",
	OpCondIf:               "cond_if",
	OpWhileLoop:            "while_loop",
}

// Name returns the lowercased operator name of the kind.
// This is the single detection point for unrecognized operators: the
// reserved OpUnknown tag and tags past the end of the table both fail with
// ErrUnknownOperatorKind.
func (k OpKind) Name() (string, error) {
	if k >= numOpKinds || opNames[k] == "" {
		return "", NewUnknownOperatorKind(k)
	}
	return opNames[k], nil
}

// String returns the operator name, or a numeric form for unknown tags.
func (k OpKind) String() string {
	if name, err := k.Name(); err == nil {
		return name
	}
	return fmt.Sprintf("op(%d)", uint32(k))
}

// OpKinds returns every named operator kind in table order.
func OpKinds() []OpKind {
	kinds := make([]OpKind, 0, numOpKinds-1)
	for k := OpKind(0); k < numOpKinds; k++ {
		if opNames[k] != "" {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
