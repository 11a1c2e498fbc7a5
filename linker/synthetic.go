package linker

import "bytes"

// RawChunk is a synthetic chunk backed by a pre-rendered byte slice.
// Upstream phases use it for content the linker itself generates; tests
// use it as the simplest possible Chunk.
type RawChunk struct {
	name      string
	data      []byte
	relocs    [][]byte
	off       uint32
	discarded bool
}

// NewRawChunk creates a chunk that renders the given bytes verbatim.
func NewRawChunk(name string, data []byte) *RawChunk {
	return &RawChunk{name: name, data: data}
}

// AddRelocation attaches one pre-rendered relocation record.
func (c *RawChunk) AddRelocation(record []byte) {
	c.relocs = append(c.relocs, record)
}

// Discard marks the chunk as dropped by an upstream pass.
func (c *RawChunk) Discard() {
	c.discarded = true
}

func (c *RawChunk) Name() string         { return c.name }
func (c *RawChunk) Size() uint32         { return uint32(len(c.data)) }
func (c *RawChunk) WriteTo(buf []byte)   { copy(buf, c.data) }
func (c *RawChunk) SetOffset(off uint32) { c.off = off }
func (c *RawChunk) Offset() uint32       { return c.off }
func (c *RawChunk) Discarded() bool      { return c.discarded }

func (c *RawChunk) NumRelocations() uint32 {
	return uint32(len(c.relocs))
}

func (c *RawChunk) WriteRelocations(w *bytes.Buffer) {
	for _, rec := range c.relocs {
		w.Write(rec)
	}
}

// StringsChunk is a mergeable chunk holding string-like pieces. Standing
// alone it renders as the concatenation of its pieces; inside a custom
// section it is folded into a MergedChunk instead.
type StringsChunk struct {
	RawChunk
	pieces [][]byte
}

// NewStringsChunk creates a mergeable chunk from the given pieces.
func NewStringsChunk(name string, pieces [][]byte) *StringsChunk {
	return &StringsChunk{
		RawChunk: RawChunk{name: name, data: bytes.Join(pieces, nil)},
		pieces:   pieces,
	}
}

// Pieces returns the string-like fragments eligible for merging.
func (c *StringsChunk) Pieces() [][]byte {
	return c.pieces
}
