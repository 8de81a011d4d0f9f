package tosafb

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

func TosaGraphStart(builder *flatbuffers.Builder) {
	builder.StartObject(2)
}
func TosaGraphAddVersion(builder *flatbuffers.Builder, version flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, version, 0)
}
func TosaGraphAddBlocks(builder *flatbuffers.Builder, blocks flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, blocks, 0)
}
func TosaGraphEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// FinishTosaGraphBuffer finishes builder with root and the TOSA identifier.
func FinishTosaGraphBuffer(builder *flatbuffers.Builder, root flatbuffers.UOffsetT) {
	builder.FinishWithFileIdentifier(root, []byte(FileIdentifier))
}

func VersionStart(builder *flatbuffers.Builder) {
	builder.StartObject(4)
}
func VersionAddMajor(builder *flatbuffers.Builder, major int32) {
	builder.PrependInt32Slot(0, major, 0)
}
func VersionAddMinor(builder *flatbuffers.Builder, minor int32) {
	builder.PrependInt32Slot(1, minor, 22)
}
func VersionAddPatch(builder *flatbuffers.Builder, patch int32) {
	builder.PrependInt32Slot(2, patch, 0)
}
func VersionAddExperimental(builder *flatbuffers.Builder, experimental bool) {
	builder.PrependBoolSlot(3, experimental, false)
}
func VersionEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

func TosaBasicBlockStart(builder *flatbuffers.Builder) {
	builder.StartObject(5)
}
func TosaBasicBlockAddName(builder *flatbuffers.Builder, name flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, name, 0)
}
func TosaBasicBlockAddOperators(builder *flatbuffers.Builder, operators flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, operators, 0)
}
func TosaBasicBlockAddTensors(builder *flatbuffers.Builder, tensors flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(2, tensors, 0)
}
func TosaBasicBlockAddInputs(builder *flatbuffers.Builder, inputs flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(3, inputs, 0)
}
func TosaBasicBlockAddOutputs(builder *flatbuffers.Builder, outputs flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(4, outputs, 0)
}
func TosaBasicBlockEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

func TosaOperatorStart(builder *flatbuffers.Builder) {
	builder.StartObject(7)
}
func TosaOperatorAddOp(builder *flatbuffers.Builder, op uint32) {
	builder.PrependUint32Slot(0, op, 0)
}
func TosaOperatorAddAttributeType(builder *flatbuffers.Builder, attributeType AttributeType) {
	builder.PrependByteSlot(1, byte(attributeType), 0)
}
func TosaOperatorAddAttribute(builder *flatbuffers.Builder, attribute flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(2, attribute, 0)
}
func TosaOperatorAddInputs(builder *flatbuffers.Builder, inputs flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(3, inputs, 0)
}
func TosaOperatorAddOutputs(builder *flatbuffers.Builder, outputs flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(4, outputs, 0)
}
func TosaOperatorAddQuantInfoType(builder *flatbuffers.Builder, quantInfoType QuantInfoType) {
	builder.PrependByteSlot(5, byte(quantInfoType), 0)
}
func TosaOperatorAddQuantInfo(builder *flatbuffers.Builder, quantInfo flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(6, quantInfo, 0)
}
func TosaOperatorEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

func TosaTensorStart(builder *flatbuffers.Builder) {
	builder.StartObject(4)
}
func TosaTensorAddName(builder *flatbuffers.Builder, name flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, name, 0)
}
func TosaTensorAddShape(builder *flatbuffers.Builder, shape flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, shape, 0)
}
func TosaTensorAddType(builder *flatbuffers.Builder, dtype uint32) {
	builder.PrependUint32Slot(2, dtype, 0)
}
func TosaTensorAddNpyFilename(builder *flatbuffers.Builder, npyFilename flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(3, npyFilename, 0)
}
func TosaTensorEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// CreateStringVector creates a vector of strings. Strings must be created
// before the vector is started, so this helper does both.
func CreateStringVector(builder *flatbuffers.Builder, values []string) flatbuffers.UOffsetT {
	offsets := make([]flatbuffers.UOffsetT, len(values))
	for i, v := range values {
		offsets[i] = builder.CreateString(v)
	}
	return CreateOffsetVector(builder, offsets)
}

// CreateOffsetVector creates a vector of table or string offsets.
func CreateOffsetVector(builder *flatbuffers.Builder, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	builder.StartVector(4, len(offsets), 4)
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	return builder.EndVector(len(offsets))
}

// CreateInt32Vector creates a vector of int32 values.
func CreateInt32Vector(builder *flatbuffers.Builder, values []int32) flatbuffers.UOffsetT {
	builder.StartVector(4, len(values), 4)
	for i := len(values) - 1; i >= 0; i-- {
		builder.PrependInt32(values[i])
	}
	return builder.EndVector(len(values))
}

// CreateEmptyTable creates a table with no fields, usable as an opaque
// union member.
func CreateEmptyTable(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	builder.StartObject(0)
	return builder.EndObject()
}
