package linker

import (
	"bytes"

	"go.uber.org/zap"

	linkerrors "github.com/wippyai/wasm-linker/errors"
	"github.com/wippyai/wasm-linker/wasm"
)

// OutputSection is one typed, length-prefixed section of the output
// module. Implementations share a strict two-phase protocol: Finalize
// computes every size and offset, then WriteTo renders bytes into an
// externally owned buffer at the externally assigned file offset.
//
// Finalize must run for every section (so cumulative sizes are known)
// before any file offset is assigned and before any WriteTo call.
// Distinct sections write disjoint byte ranges, so WriteTo calls may run
// concurrently.
type OutputSection interface {
	// ID returns the section's binary type tag.
	ID() byte

	// Name returns the custom-section name, or "" for typed sections.
	Name() string

	// String returns a human-readable identity, e.g. "FUNCTION(.text)".
	String() string

	// Finalize computes body size, header bytes and every chunk's
	// body-relative offset. Called exactly once.
	Finalize(cfg Config)

	// Size returns header length + body size. Valid only after Finalize.
	Size() uint32

	// SetFileOffset assigns the absolute file offset. Assigned exactly
	// once, from cumulative sizes of preceding sections.
	SetFileOffset(off uint32)

	// FileOffset returns the offset assigned by SetFileOffset.
	FileOffset() uint32

	// WriteTo renders the section into buf, which is the whole output
	// file; the section only touches [FileOffset, FileOffset+Size).
	WriteTo(buf []byte)

	// NumRelocations returns the total relocation record count across
	// the section's finalized chunk sequence.
	NumRelocations() uint32

	// WriteRelocations appends the section's relocation records to w in
	// the deterministic chunk order defined by Finalize.
	WriteRelocations(w *bytes.Buffer)

	// IsNeeded reports whether the section has emittable content. A
	// section reporting false is excluded from the output entirely.
	IsNeeded() bool
}

// sectionName maps a section ID to its display name. An ID outside the
// enumeration means output assembly was handed a section the binary
// format cannot express, which is a linker defect.
func sectionName(id byte) string {
	name, ok := wasm.SectionName(id)
	if !ok {
		fatalf(linkerrors.PhaseFinalize, "invalid section type 0x%02x", id)
	}
	return name
}

// section carries the state shared by every output section kind.
type section struct {
	id       byte
	name     string // custom sections only
	header   []byte
	bodySize uint32
	offset   uint32
}

func (s *section) ID() byte {
	return s.id
}

func (s *section) Name() string {
	return s.name
}

// String returns e.g. "CODE" for typed sections and "CUSTOM(.debug_str)"
// for named ones.
func (s *section) String() string {
	if s.name != "" {
		return sectionName(s.id) + "(" + s.name + ")"
	}
	return sectionName(s.id)
}

// Size returns header length + body size. Meaningless before the
// concrete section's Finalize has set the body size and rendered the
// header.
func (s *section) Size() uint32 {
	return uint32(len(s.header)) + s.bodySize
}

func (s *section) SetFileOffset(off uint32) {
	s.offset = off
}

func (s *section) FileOffset() uint32 {
	return s.offset
}

func (s *section) IsNeeded() bool {
	return true
}

// createHeader renders the two-field section header. It must be called
// exactly once, after the body size is fully known: the header's own
// length depends on the LEB128 width of bodySize.
func (s *section) createHeader(bodySize uint32) {
	name := s.String() // validates the section type

	var buf bytes.Buffer
	wasm.WriteLEB128u(&buf, uint32(s.id))
	wasm.WriteLEB128u(&buf, bodySize)
	s.header = buf.Bytes()
	s.bodySize = bodySize

	Logger().Debug("createHeader",
		zap.String("section", name),
		zap.Uint32("body", bodySize),
		zap.Int("header", len(s.header)))
}
