package wasm

import (
	"bytes"
	"fmt"
)

// InitExpr is a constant initializer expression as used by active data
// segments, globals and element segments. Exactly one immediate field is
// meaningful, selected by Opcode.
type InitExpr struct {
	Opcode byte
	I32    int32  // OpI32Const
	I64    int64  // OpI64Const
	Global uint32 // OpGlobalGet
}

// GlobalGet returns an init expression reading the given global.
func GlobalGet(index uint32) InitExpr {
	return InitExpr{Opcode: OpGlobalGet, Global: index}
}

// I32Const returns an init expression loading a 32-bit constant.
func I32Const(v int32) InitExpr {
	return InitExpr{Opcode: OpI32Const, I32: v}
}

// I64Const returns an init expression loading a 64-bit constant.
func I64Const(v int64) InitExpr {
	return InitExpr{Opcode: OpI64Const, I64: v}
}

// WriteInitExpr writes the binary encoding of the expression, including
// the terminating end opcode.
func WriteInitExpr(w *bytes.Buffer, e InitExpr) {
	w.WriteByte(e.Opcode)
	switch e.Opcode {
	case OpGlobalGet:
		WriteLEB128u(w, e.Global)
	case OpI32Const:
		WriteLEB128s(w, e.I32)
	case OpI64Const:
		WriteLEB128s64(w, e.I64)
	default:
		panic(fmt.Sprintf("wasm: unsupported init expr opcode 0x%02x", e.Opcode))
	}
	w.WriteByte(OpEnd)
}

// Encode returns the binary encoding of the expression, including the
// terminating end opcode.
func (e InitExpr) Encode() []byte {
	var buf bytes.Buffer
	WriteInitExpr(&buf, e)
	return buf.Bytes()
}
