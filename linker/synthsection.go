package linker

import (
	"bytes"

	"github.com/wippyai/wasm-linker/wasm"
)

// SyntheticSection is an output section whose body is generated by the
// linker itself rather than gathered from input chunks: type tables,
// import lists, memory declarations and the like. The caller writes the
// body into Body before finalize runs.
type SyntheticSection struct {
	section
	nameData []byte
	body     bytes.Buffer
}

// NewSyntheticSection creates a synthetic section of the given type.
func NewSyntheticSection(id byte) *SyntheticSection {
	return &SyntheticSection{section: section{id: id}}
}

// NewSyntheticCustomSection creates a named synthetic custom section.
func NewSyntheticCustomSection(name string) *SyntheticSection {
	return &SyntheticSection{section: section{id: wasm.SectionCustom, name: name}}
}

// Body exposes the body buffer for the caller to fill before Finalize.
func (s *SyntheticSection) Body() *bytes.Buffer {
	return &s.body
}

// Finalize renders the name field for custom synthetic sections and the
// two-field header.
func (s *SyntheticSection) Finalize(Config) {
	if s.id == wasm.SectionCustom {
		var buf bytes.Buffer
		wasm.WriteLEB128u(&buf, uint32(len(s.name)))
		buf.WriteString(s.name)
		s.nameData = buf.Bytes()
	}
	s.createHeader(uint32(len(s.nameData) + s.body.Len()))
}

// WriteTo renders the header, the name field if any, then the generated
// body.
func (s *SyntheticSection) WriteTo(buf []byte) {
	buf = buf[s.offset:]
	copy(buf, s.header)
	buf = buf[len(s.header):]
	copy(buf, s.nameData)
	copy(buf[len(s.nameData):], s.body.Bytes())
}

// IsNeeded reports false for a synthetic section with an empty body.
func (s *SyntheticSection) IsNeeded() bool {
	return s.body.Len() > 0
}

// NumRelocations returns 0: generated bodies carry no relocations.
func (s *SyntheticSection) NumRelocations() uint32 { return 0 }

func (s *SyntheticSection) WriteRelocations(*bytes.Buffer) {}
