package linker

import "bytes"

// Chunk is an input fragment consumed by output sections: a function
// body, a data payload, or an arbitrary blob. Chunks arrive already
// rendered and already sized by upstream passes; sections only decide
// where their bytes land.
//
// Chunks are allocated once upstream and referenced, never copied.
// A chunk belongs to exactly one section after that section's finalize
// pass, which also assigns its offset relative to the section body.
type Chunk interface {
	// Name identifies the chunk for diagnostics.
	Name() string

	// Size returns the rendered byte size.
	Size() uint32

	// WriteTo writes exactly Size() bytes at buf[0:].
	WriteTo(buf []byte)

	// SetOffset records the chunk's offset relative to the start of its
	// section's body. Assigned exactly once, during finalize.
	SetOffset(off uint32)

	// Offset returns the offset assigned by SetOffset.
	Offset() uint32

	// NumRelocations returns the number of relocation records the chunk
	// will emit.
	NumRelocations() uint32

	// WriteRelocations appends the chunk's relocation records to w.
	WriteRelocations(w *bytes.Buffer)

	// Discarded reports whether an upstream pass dropped the chunk. A
	// discarded chunk must never reach a finalized section.
	Discarded() bool
}

// FunctionChunk is a chunk whose rendered size depends on final layout
// and must be computed during the code section's finalize pass.
type FunctionChunk interface {
	Chunk

	// CalculateSize computes the rendered size; Size is only valid
	// afterwards.
	CalculateSize()
}

// MergeableChunk is a chunk made of string-like pieces that may be
// deduplicated with pieces of other mergeable chunks in the same custom
// section.
type MergeableChunk interface {
	Chunk

	// Pieces returns the string-like fragments eligible for merging, in
	// chunk order.
	Pieces() [][]byte
}
