// Package tosafb provides flatbuffer accessors and builders for the TOSA
// serialization schema (tosa.fbs).
//
// Accessors follow the layout flatc emits for Go: each table wraps a
// flatbuffers.Table and reads fields through its vtable. They perform no
// bounds checking beyond what the flatbuffers runtime does, which panics on
// truncated input; callers decoding untrusted buffers recover from that.
package tosafb

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// FileIdentifier is the four-byte identifier of TOSA buffers.
const FileIdentifier = "TOSA"

// Union tags. Zero means the union is absent.
type (
	AttributeType byte
	QuantInfoType byte
)

const (
	AttributeNONE AttributeType = 0
	QuantInfoNONE QuantInfoType = 0
)

// TosaGraph is the root table.
type TosaGraph struct {
	_tab flatbuffers.Table
}

// GetRootAsTosaGraph returns the root table of buf.
func GetRootAsTosaGraph(buf []byte, offset flatbuffers.UOffsetT) *TosaGraph {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &TosaGraph{}
	x.Init(buf, n+offset)
	return x
}

// TosaGraphBufferHasIdentifier reports whether buf carries the TOSA identifier.
func TosaGraphBufferHasIdentifier(buf []byte) bool {
	return flatbuffers.BufferHasIdentifier(buf, FileIdentifier)
}

func (rcv *TosaGraph) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *TosaGraph) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *TosaGraph) Version(obj *Version) *Version {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		x := rcv._tab.Indirect(o + rcv._tab.Pos)
		if obj == nil {
			obj = new(Version)
		}
		obj.Init(rcv._tab.Bytes, x)
		return obj
	}
	return nil
}

func (rcv *TosaGraph) Blocks(obj *TosaBasicBlock, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		x := rcv._tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = rcv._tab.Indirect(x)
		obj.Init(rcv._tab.Bytes, x)
		return true
	}
	return false
}

func (rcv *TosaGraph) BlocksLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

// Version is the schema version table.
type Version struct {
	_tab flatbuffers.Table
}

func (rcv *Version) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *Version) Major() int32 {
	return rcv._tab.GetInt32Slot(4, 0)
}

func (rcv *Version) Minor() int32 {
	return rcv._tab.GetInt32Slot(6, 22)
}

func (rcv *Version) Patch() int32 {
	return rcv._tab.GetInt32Slot(8, 0)
}

func (rcv *Version) Experimental() bool {
	return rcv._tab.GetBoolSlot(10, false)
}

// TosaBasicBlock is a named block of operators.
type TosaBasicBlock struct {
	_tab flatbuffers.Table
}

func (rcv *TosaBasicBlock) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *TosaBasicBlock) Name() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func (rcv *TosaBasicBlock) Operators(obj *TosaOperator, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		x := rcv._tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = rcv._tab.Indirect(x)
		obj.Init(rcv._tab.Bytes, x)
		return true
	}
	return false
}

func (rcv *TosaBasicBlock) OperatorsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *TosaBasicBlock) Tensors(obj *TosaTensor, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		x := rcv._tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = rcv._tab.Indirect(x)
		obj.Init(rcv._tab.Bytes, x)
		return true
	}
	return false
}

func (rcv *TosaBasicBlock) TensorsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *TosaBasicBlock) Inputs(j int) []byte {
	return stringAt(&rcv._tab, 10, j)
}

func (rcv *TosaBasicBlock) InputsLength() int {
	return vectorLen(&rcv._tab, 10)
}

func (rcv *TosaBasicBlock) Outputs(j int) []byte {
	return stringAt(&rcv._tab, 12, j)
}

func (rcv *TosaBasicBlock) OutputsLength() int {
	return vectorLen(&rcv._tab, 12)
}

// TosaOperator is one operator of a block.
type TosaOperator struct {
	_tab flatbuffers.Table
}

func (rcv *TosaOperator) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

// Op returns the raw Op enumeration value.
func (rcv *TosaOperator) Op() uint32 {
	return rcv._tab.GetUint32Slot(4, 0)
}

func (rcv *TosaOperator) AttributeType() AttributeType {
	return AttributeType(rcv._tab.GetByteSlot(6, 0))
}

// Attribute points obj at the attribute union member, if present.
func (rcv *TosaOperator) Attribute(obj *flatbuffers.Table) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		rcv._tab.Union(obj, o)
		return true
	}
	return false
}

func (rcv *TosaOperator) Inputs(j int) []byte {
	return stringAt(&rcv._tab, 10, j)
}

func (rcv *TosaOperator) InputsLength() int {
	return vectorLen(&rcv._tab, 10)
}

func (rcv *TosaOperator) Outputs(j int) []byte {
	return stringAt(&rcv._tab, 12, j)
}

func (rcv *TosaOperator) OutputsLength() int {
	return vectorLen(&rcv._tab, 12)
}

func (rcv *TosaOperator) QuantInfoType() QuantInfoType {
	return QuantInfoType(rcv._tab.GetByteSlot(14, 0))
}

// QuantInfo points obj at the quantization union member, if present.
func (rcv *TosaOperator) QuantInfo(obj *flatbuffers.Table) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(16))
	if o != 0 {
		rcv._tab.Union(obj, o)
		return true
	}
	return false
}

// TosaTensor is a tensor declaration.
type TosaTensor struct {
	_tab flatbuffers.Table
}

func (rcv *TosaTensor) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *TosaTensor) Name() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func (rcv *TosaTensor) Shape(j int) int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetInt32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (rcv *TosaTensor) ShapeLength() int {
	return vectorLen(&rcv._tab, 6)
}

// Type returns the raw DType enumeration value.
func (rcv *TosaTensor) Type() uint32 {
	return rcv._tab.GetUint32Slot(8, 0)
}

func (rcv *TosaTensor) NpyFilename() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(10))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func stringAt(tab *flatbuffers.Table, slot flatbuffers.VOffsetT, j int) []byte {
	o := flatbuffers.UOffsetT(tab.Offset(slot))
	if o != 0 {
		a := tab.Vector(o)
		return tab.ByteVector(a + flatbuffers.UOffsetT(j*4))
	}
	return nil
}

func vectorLen(tab *flatbuffers.Table, slot flatbuffers.VOffsetT) int {
	o := flatbuffers.UOffsetT(tab.Offset(slot))
	if o != 0 {
		return tab.VectorLen(o)
	}
	return 0
}
