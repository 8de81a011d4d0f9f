package ir

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every translation failure wraps exactly one of these, so
// callers can match with errors.Is regardless of the context attached.
var (
	// ErrMalformedGraph indicates the buffer does not decode per the schema
	// or violates a structural invariant (missing main, redefined tensor).
	ErrMalformedGraph = errors.New("malformed graph")

	// ErrUnboundValue indicates a tensor was used before it was defined.
	ErrUnboundValue = errors.New("unbound value")

	// ErrUnsupportedType indicates an element kind outside the enumeration.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedFeature indicates an attribute or quantization payload
	// that has no textual rendering.
	ErrUnsupportedFeature = errors.New("unsupported feature")

	// ErrUnknownOperatorKind indicates an operator tag absent from the table.
	ErrUnknownOperatorKind = errors.New("unknown operator kind")
)

// TranslateError is a translation failure with the location it was detected at.
//
// All translation errors are deterministic functions of the input: they are
// never retried and abort translation of the containing graph.
type TranslateError struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Message is a human-readable description.
	Message string

	// Block names the block being translated, if known.
	Block string

	// Operator is the operator index within Block, or -1.
	Operator int

	// Tensor names the tensor involved, if any.
	Tensor string

	// Err is an optional underlying cause.
	Err error
}

// Error implements the error interface.
func (e *TranslateError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	var loc []string
	if e.Block != "" {
		loc = append(loc, "block="+e.Block)
	}
	if e.Operator >= 0 {
		loc = append(loc, fmt.Sprintf("op=%d", e.Operator))
	}
	if e.Tensor != "" {
		loc = append(loc, fmt.Sprintf("tensor=%q", e.Tensor))
	}
	if len(loc) > 0 {
		b.WriteString(" (" + strings.Join(loc, ", ") + ")")
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *TranslateError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// At returns a copy of the error located at operator idx of block.
// Location already present on the error is kept.
func (e *TranslateError) At(block string, idx int) *TranslateError {
	c := *e
	if c.Block == "" {
		c.Block = block
	}
	if c.Operator < 0 {
		c.Operator = idx
	}
	return &c
}

// ForTensor returns a copy of the error naming tensor, unless one is set.
func (e *TranslateError) ForTensor(name string) *TranslateError {
	c := *e
	if c.Tensor == "" {
		c.Tensor = name
	}
	return &c
}

// Locate attaches a block and operator location to err if it is a
// TranslateError; other errors are returned unchanged.
func Locate(err error, block string, idx int) error {
	var te *TranslateError
	if errors.As(err, &te) {
		return te.At(block, idx)
	}
	return err
}

func newError(kind error, tensor, message string) *TranslateError {
	return &TranslateError{Kind: kind, Message: message, Tensor: tensor, Operator: -1}
}

// NewMalformedGraph creates an ErrMalformedGraph error.
func NewMalformedGraph(message string, cause error) *TranslateError {
	e := newError(ErrMalformedGraph, "", message)
	e.Err = cause
	return e
}

// NewUnboundValue creates an ErrUnboundValue error for tensor name.
func NewUnboundValue(name string) *TranslateError {
	return newError(ErrUnboundValue, name, "used before definition")
}

// NewUnsupportedType creates an ErrUnsupportedType error for kind.
func NewUnsupportedType(kind ElementKind) *TranslateError {
	return newError(ErrUnsupportedType, "", fmt.Sprintf("element kind %d", uint32(kind)))
}

// NewUnsupportedFeature creates an ErrUnsupportedFeature error.
func NewUnsupportedFeature(message string) *TranslateError {
	return newError(ErrUnsupportedFeature, "", message)
}

// NewUnknownOperatorKind creates an ErrUnknownOperatorKind error for kind.
func NewUnknownOperatorKind(kind OpKind) *TranslateError {
	return newError(ErrUnknownOperatorKind, "", fmt.Sprintf("operator tag %d", uint32(kind)))
}

// IsMalformedGraph returns true if err wraps ErrMalformedGraph.
func IsMalformedGraph(err error) bool { return errors.Is(err, ErrMalformedGraph) }

// IsUnboundValue returns true if err wraps ErrUnboundValue.
func IsUnboundValue(err error) bool { return errors.Is(err, ErrUnboundValue) }

// IsUnsupportedType returns true if err wraps ErrUnsupportedType.
func IsUnsupportedType(err error) bool { return errors.Is(err, ErrUnsupportedType) }

// IsUnsupportedFeature returns true if err wraps ErrUnsupportedFeature.
func IsUnsupportedFeature(err error) bool { return errors.Is(err, ErrUnsupportedFeature) }

// IsUnknownOperatorKind returns true if err wraps ErrUnknownOperatorKind.
func IsUnknownOperatorKind(err error) bool { return errors.Is(err, ErrUnknownOperatorKind) }
