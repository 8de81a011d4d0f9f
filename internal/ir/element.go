package ir

// ElementKind is the element type of a tensor declaration.
// Values match the DType enumeration of the TOSA schema.
type ElementKind uint32

// Supported element kinds.
const (
	ElementUnknown ElementKind = iota
	ElementBool
	ElementUint8
	ElementInt4
	ElementInt8
	ElementInt16
	ElementInt32
	ElementInt48
	ElementFloat32
)

// ElementKinds returns every supported element kind in declaration order.
func ElementKinds() []ElementKind {
	return []ElementKind{
		ElementBool,
		ElementUint8,
		ElementInt4,
		ElementInt8,
		ElementInt16,
		ElementInt32,
		ElementInt48,
		ElementFloat32,
	}
}

// Token returns the MLIR element type token for the kind.
// Kinds outside the enumeration fail with ErrUnsupportedType.
func (k ElementKind) Token() (string, error) {
	switch k {
	case ElementBool:
		return "i1", nil
	case ElementUint8:
		return "ui8", nil
	case ElementInt4:
		return "i4", nil
	case ElementInt8:
		return "i8", nil
	case ElementInt16:
		return "i16", nil
	case ElementInt32:
		return "i32", nil
	case ElementInt48:
		return "i48", nil
	case ElementFloat32:
		return "f32", nil
	default:
		return "", NewUnsupportedType(k)
	}
}

// IsFloat reports whether the kind is a floating-point kind.
func (k ElementKind) IsFloat() bool {
	return k == ElementFloat32
}

// String returns the schema name of the kind.
func (k ElementKind) String() string {
	switch k {
	case ElementBool:
		return "BOOL"
	case ElementUint8:
		return "UINT8"
	case ElementInt4:
		return "INT4"
	case ElementInt8:
		return "INT8"
	case ElementInt16:
		return "INT16"
	case ElementInt32:
		return "INT32"
	case ElementInt48:
		return "INT48"
	case ElementFloat32:
		return "FLOAT"
	default:
		return "UNKNOWN"
	}
}
