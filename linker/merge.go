package linker

import "bytes"

// MergedChunk is the synthetic chunk a custom section substitutes for its
// mergeable members: their string-like pieces, deduplicated, concatenated
// in first-seen order.
type MergedChunk struct {
	name   string
	chunks []MergeableChunk
	data   []byte
	off    uint32
}

// NewMergedChunk creates an empty merged chunk named after its owning
// section.
func NewMergedChunk(name string) *MergedChunk {
	return &MergedChunk{name: name}
}

// AddChunk adopts a mergeable chunk. Its pieces take part in
// deduplication when FinalizeContents runs.
func (m *MergedChunk) AddChunk(c MergeableChunk) {
	m.chunks = append(m.chunks, c)
}

// FinalizeContents computes the merged payload. Pieces are kept in the
// order first encountered, which keeps the output deterministic for a
// fixed input sequence.
func (m *MergedChunk) FinalizeContents() {
	seen := make(map[string]struct{})
	var buf bytes.Buffer
	for _, c := range m.chunks {
		for _, piece := range c.Pieces() {
			if _, ok := seen[string(piece)]; ok {
				continue
			}
			seen[string(piece)] = struct{}{}
			buf.Write(piece)
		}
	}
	m.data = buf.Bytes()
}

func (m *MergedChunk) Name() string         { return m.name }
func (m *MergedChunk) Size() uint32         { return uint32(len(m.data)) }
func (m *MergedChunk) WriteTo(buf []byte)   { copy(buf, m.data) }
func (m *MergedChunk) SetOffset(off uint32) { m.off = off }
func (m *MergedChunk) Offset() uint32       { return m.off }
func (m *MergedChunk) Discarded() bool      { return false }

// NumRelocations returns 0: merged string data carries no relocations.
func (m *MergedChunk) NumRelocations() uint32 { return 0 }

func (m *MergedChunk) WriteRelocations(*bytes.Buffer) {}
