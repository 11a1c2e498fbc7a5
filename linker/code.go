package linker

import (
	"bytes"

	"go.uber.org/zap"

	linkerrors "github.com/wippyai/wasm-linker/errors"
	"github.com/wippyai/wasm-linker/wasm"
)

// CodeSection concatenates function bodies behind a function-count
// sub-header.
type CodeSection struct {
	section
	functions []FunctionChunk
	subHeader []byte
}

// NewCodeSection creates a code section over the retained functions, in
// declaration order.
func NewCodeSection(functions []FunctionChunk) *CodeSection {
	return &CodeSection{
		section:   section{id: wasm.SectionCode},
		functions: functions,
	}
}

// Finalize writes the function-count sub-header, then assigns each
// function its body-relative offset and accumulates its computed size.
func (s *CodeSection) Finalize(Config) {
	var buf bytes.Buffer
	wasm.WriteLEB128u(&buf, uint32(len(s.functions)))
	s.subHeader = buf.Bytes()
	bodySize := uint32(len(s.subHeader))

	for _, fn := range s.functions {
		fn.SetOffset(bodySize)
		fn.CalculateSize()
		// Every retained function has a non-empty body at this point.
		if fn.Size() == 0 {
			fatalf(linkerrors.PhaseFinalize,
				"function %s has zero size after finalize", fn.Name())
		}
		bodySize += fn.Size()
	}

	s.createHeader(bodySize)
}

// WriteTo renders the section in the exact order Finalize used: header,
// count sub-header, then each function body.
func (s *CodeSection) WriteTo(buf []byte) {
	Logger().Debug("writing",
		zap.String("section", s.String()),
		zap.Uint32("size", s.Size()),
		zap.Int("functions", len(s.functions)))

	buf = buf[s.offset:]
	copy(buf, s.header)
	body := buf[len(s.header):]
	copy(body, s.subHeader)

	for _, fn := range s.functions {
		fn.WriteTo(body[fn.Offset() : fn.Offset()+fn.Size()])
	}
}

// NumRelocations sums relocation counts over the retained functions.
func (s *CodeSection) NumRelocations() uint32 {
	var count uint32
	for _, fn := range s.functions {
		count += fn.NumRelocations()
	}
	return count
}

// WriteRelocations concatenates each function's relocation records in
// declaration order.
func (s *CodeSection) WriteRelocations(w *bytes.Buffer) {
	for _, fn := range s.functions {
		fn.WriteRelocations(w)
	}
}
