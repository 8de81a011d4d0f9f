package ir

// Version constants for the translator and the schema it reads.
const (
	// SchemaVersion is the TOSA flatbuffer schema version the decoder targets.
	SchemaVersion = "0.22.0"

	// ToolVersion is the tosa2mlir version.
	ToolVersion = "0.1.0"
)
