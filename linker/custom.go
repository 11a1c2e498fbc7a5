package linker

import (
	"bytes"

	"go.uber.org/zap"

	linkerrors "github.com/wippyai/wasm-linker/errors"
	"github.com/wippyai/wasm-linker/wasm"
)

// CustomSection carries an arbitrary named payload: the section name as a
// length-prefixed string, then its chunks' bytes concatenated in order.
// Mergeable chunks are coalesced into one synthetic chunk before layout.
type CustomSection struct {
	section
	chunks      []Chunk
	nameData    []byte
	payloadSize uint32
}

// NewCustomSection creates a custom section over the chunks, in input
// order.
func NewCustomSection(name string, chunks []Chunk) *CustomSection {
	return &CustomSection{
		section: section{id: wasm.SectionCustom, name: name},
		chunks:  chunks,
	}
}

// mergeChunks folds all mergeable chunks into a single MergedChunk,
// inserted where the first of them stood. Non-mergeable chunks keep their
// relative order. A sequence without mergeable chunks is left untouched.
func (s *CustomSection) mergeChunks() {
	var merged *MergedChunk
	var out []Chunk

	for _, c := range s.chunks {
		mc, ok := c.(MergeableChunk)
		if !ok {
			out = append(out, c)
			continue
		}
		if merged == nil {
			merged = NewMergedChunk(s.name)
			out = append(out, merged)
		}
		merged.AddChunk(mc)
	}

	if merged == nil {
		return
	}
	merged.FinalizeContents()
	s.chunks = out
}

// Finalize runs the merge pass, renders the name field, then assigns
// each remaining chunk its payload-relative offset.
func (s *CustomSection) Finalize(Config) {
	s.mergeChunks()

	var buf bytes.Buffer
	wasm.WriteLEB128u(&buf, uint32(len(s.name)))
	buf.WriteString(s.name)
	s.nameData = buf.Bytes()

	for _, c := range s.chunks {
		if c.Discarded() {
			fatalf(linkerrors.PhaseFinalize,
				"discarded chunk %s in custom section %s", c.Name(), s.name)
		}
		c.SetOffset(s.payloadSize)
		s.payloadSize += c.Size()
	}

	s.createHeader(s.payloadSize + uint32(len(s.nameData)))
}

// WriteTo renders the section header, the name field, then each chunk at
// its payload-relative offset.
func (s *CustomSection) WriteTo(buf []byte) {
	Logger().Debug("writing",
		zap.String("section", s.String()),
		zap.Uint32("size", s.Size()),
		zap.Int("chunks", len(s.chunks)))

	buf = buf[s.offset:]
	copy(buf, s.header)
	buf = buf[len(s.header):]
	copy(buf, s.nameData)
	payload := buf[len(s.nameData):]

	for _, c := range s.chunks {
		c.WriteTo(payload[c.Offset() : c.Offset()+c.Size()])
	}
}

// NumRelocations sums relocation counts over the finalized chunk
// sequence.
func (s *CustomSection) NumRelocations() uint32 {
	var count uint32
	for _, c := range s.chunks {
		count += c.NumRelocations()
	}
	return count
}

// WriteRelocations concatenates each chunk's relocation records in
// finalized sequence order.
func (s *CustomSection) WriteRelocations(w *bytes.Buffer) {
	for _, c := range s.chunks {
		c.WriteRelocations(w)
	}
}
