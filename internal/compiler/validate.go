package compiler

import (
	"fmt"

	"github.com/roach88/tosa2mlir/internal/graph"
)

// Translation diagnostic codes (E200-E299)
const (
	ErrCodeMalformedGraph      = "E201" // buffer does not decode, or a tensor is defined twice
	ErrCodeUnboundValue        = "E202" // tensor used before definition or never declared
	ErrCodeUnsupportedType     = "E203" // element kind outside the enumeration
	ErrCodeUnsupportedFeature  = "E204" // attribute or quantization payload
	ErrCodeUnknownOperatorKind = "E205" // operator tag absent from the table
)

// ValidationError is one problem found in a block.
type ValidationError struct {
	Block    string `json:"block"`
	Operator int    `json:"operator"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	Code     string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Operator >= 0 {
		return fmt.Sprintf("[%s] %s op %d: %s: %s", e.Code, e.Block, e.Operator, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s: %s", e.Code, e.Block, e.Field, e.Message)
}

// Validate checks every block of g for the problems translation would fail
// on. Unlike EmitFunction it does not stop at the first one.
func Validate(g *graph.Graph) []ValidationError {
	var errs []ValidationError
	for _, b := range g.Blocks() {
		errs = append(errs, validateBlock(b)...)
	}
	return errs
}

func validateBlock(b graph.Block) []ValidationError {
	var errs []ValidationError
	report := func(op int, field, code, format string, args ...any) {
		errs = append(errs, ValidationError{
			Block:    b.Name(),
			Operator: op,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Code:     code,
		})
	}

	declared := make(map[string]bool, b.TensorsLength())
	for i, t := range b.Tensors() {
		declared[t.Name] = true
		if _, err := t.Kind.Token(); err != nil {
			report(-1, fmt.Sprintf("tensors[%d].type", i), ErrCodeUnsupportedType,
				"tensor %q has element kind %d", t.Name, uint32(t.Kind))
		}
	}

	defined := make(map[string]bool)
	for i, in := range b.Inputs() {
		if !declared[in] {
			report(-1, fmt.Sprintf("inputs[%d]", i), ErrCodeUnboundValue, "input %q has no tensor declaration", in)
		}
		if defined[in] {
			report(-1, fmt.Sprintf("inputs[%d]", i), ErrCodeMalformedGraph, "input %q listed twice", in)
		}
		defined[in] = true
	}

	for i, op := range b.Operators() {
		name, err := op.Kind().Name()
		if err != nil {
			report(i, "op", ErrCodeUnknownOperatorKind, "operator tag %d is not in the table", uint32(op.Kind()))
			name = op.Kind().String()
		}
		if op.IsPlaceholder() {
			continue
		}
		if !op.Attribute().Empty() {
			report(i, "attribute", ErrCodeUnsupportedFeature, "%s carries attribute type %d", name, op.Attribute().Type)
		}
		if !op.QuantInfo().Empty() {
			report(i, "quant_info", ErrCodeUnsupportedFeature, "%s carries quantization info type %d", name, op.QuantInfo().Type)
		}
		for j, in := range op.Inputs() {
			if !defined[in] {
				report(i, fmt.Sprintf("inputs[%d]", j), ErrCodeUnboundValue, "%q used before definition", in)
			}
			if !declared[in] {
				report(i, fmt.Sprintf("inputs[%d]", j), ErrCodeUnboundValue, "%q has no tensor declaration", in)
			}
		}
		if op.OutputsLength() == 0 {
			report(i, "outputs", ErrCodeMalformedGraph, "%s defines no results", name)
		}
		for j, out := range op.Outputs() {
			if defined[out] {
				report(i, fmt.Sprintf("outputs[%d]", j), ErrCodeMalformedGraph, "%q defined twice", out)
			}
			if !declared[out] {
				report(i, fmt.Sprintf("outputs[%d]", j), ErrCodeUnboundValue, "%q has no tensor declaration", out)
			}
			defined[out] = true
		}
	}

	for i, out := range b.Outputs() {
		if !defined[out] {
			report(-1, fmt.Sprintf("outputs[%d]", i), ErrCodeUnboundValue, "output %q is never defined", out)
		}
		if !declared[out] {
			report(-1, fmt.Sprintf("outputs[%d]", i), ErrCodeUnboundValue, "output %q has no tensor declaration", out)
		}
	}
	return errs
}
