package linker

import (
	"bytes"

	"go.uber.org/zap"

	linkerrors "github.com/wippyai/wasm-linker/errors"
	"github.com/wippyai/wasm-linker/wasm"
)

// OutputSegment groups data chunks that share one memory-initialization
// header: a base virtual address, passive/active classification, and an
// optional explicit memory index. BSS segments reserve address space
// without payload bytes and are never emitted.
type OutputSegment struct {
	Name      string
	StartVA   uint64
	InitFlags uint32
	BSS       bool
	Size      uint32
	Chunks    []Chunk

	header        []byte
	sectionOffset uint32
}

// NewOutputSegment creates an empty segment with the given placement
// metadata.
func NewOutputSegment(name string, startVA uint64, initFlags uint32) *OutputSegment {
	return &OutputSegment{Name: name, StartVA: startVA, InitFlags: initFlags}
}

// Add appends a member chunk. Members are laid out contiguously in
// append order; the chunk's offset holds its position within the segment
// payload until the data section's finalize rebases it.
func (s *OutputSegment) Add(c Chunk) {
	c.SetOffset(s.Size)
	s.Chunks = append(s.Chunks, c)
	s.Size += c.Size()
}

// IsPassive reports whether the segment is initialized only on an
// explicit memory.init rather than at instantiation.
func (s *OutputSegment) IsPassive() bool {
	return s.InitFlags&wasm.DataSegmentPassive != 0
}

// DataSection concatenates per-segment headers and payloads behind a
// segment-count sub-header. BSS segments are skipped entirely.
type DataSection struct {
	section
	segments  []*OutputSegment
	subHeader []byte
}

// NewDataSection creates a data section over the segments, in layout
// order.
func NewDataSection(segments []*OutputSegment) *DataSection {
	return &DataSection{
		section:  section{id: wasm.SectionData},
		segments: segments,
	}
}

// initExpr builds the placement expression for an active segment. Under
// position-independent addressing the base address is resolved at load
// time through the imported memory-base global and the segment's own
// StartVA is ignored.
func initExpr(cfg Config, seg *OutputSegment) wasm.InitExpr {
	switch {
	case cfg.Pic:
		return wasm.GlobalGet(cfg.MemoryBase)
	case cfg.Is64:
		return wasm.I64Const(int64(seg.StartVA))
	default:
		return wasm.I32Const(int32(seg.StartVA))
	}
}

// Finalize writes the segment-count sub-header (non-BSS segments only),
// renders each emitted segment's header, and assigns section-relative
// offsets to segments and their member chunks.
func (s *DataSection) Finalize(cfg Config) {
	var segmentCount uint32
	var activeCount int
	for _, seg := range s.segments {
		if !seg.BSS {
			segmentCount++
		}
		// BSS segments count too: an active BSS segment still claims a
		// placement in the relocatable region.
		if !seg.IsPassive() {
			activeCount++
		}
	}
	// A PIC module has a single relocatable region based at the imported
	// memory base; a second active segment would need its own base.
	if cfg.Pic && activeCount > 1 {
		fatalf(linkerrors.PhaseFinalize,
			"%d active data segments with position-independent addressing", activeCount)
	}

	var buf bytes.Buffer
	wasm.WriteLEB128u(&buf, segmentCount)
	s.subHeader = buf.Bytes()
	bodySize := uint32(len(s.subHeader))

	for _, seg := range s.segments {
		if seg.BSS {
			continue
		}
		var hdr bytes.Buffer
		wasm.WriteLEB128u(&hdr, seg.InitFlags)
		if seg.InitFlags&wasm.DataSegmentHasMemIndex != 0 {
			// Single implicit memory.
			wasm.WriteLEB128u(&hdr, 0)
		}
		if !seg.IsPassive() {
			wasm.WriteInitExpr(&hdr, initExpr(cfg, seg))
		}
		wasm.WriteLEB128u(&hdr, seg.Size)
		seg.header = hdr.Bytes()

		seg.sectionOffset = bodySize
		bodySize += uint32(len(seg.header)) + seg.Size

		Logger().Debug("data segment",
			zap.String("name", seg.Name),
			zap.Uint32("size", seg.Size),
			zap.Uint64("startVA", seg.StartVA))

		// Rebase member offsets from segment-relative to body-relative.
		for _, c := range seg.Chunks {
			c.SetOffset(seg.sectionOffset + uint32(len(seg.header)) + c.Offset())
		}
	}

	s.createHeader(bodySize)
}

// WriteTo renders the section header, the count sub-header, then each
// emitted segment's header and member payloads at their recorded
// offsets.
func (s *DataSection) WriteTo(buf []byte) {
	Logger().Debug("writing",
		zap.String("section", s.String()),
		zap.Uint32("size", s.Size()))

	buf = buf[s.offset:]
	copy(buf, s.header)
	body := buf[len(s.header):]
	copy(body, s.subHeader)

	for _, seg := range s.segments {
		if seg.BSS {
			continue
		}
		copy(body[seg.sectionOffset:], seg.header)
		for _, c := range seg.Chunks {
			c.WriteTo(body[c.Offset() : c.Offset()+c.Size()])
		}
	}
}

// IsNeeded reports false when every segment is BSS: an all-uninitialized
// data section is elided from the output.
func (s *DataSection) IsNeeded() bool {
	for _, seg := range s.segments {
		if !seg.BSS {
			return true
		}
	}
	return false
}

// NumRelocations sums relocation counts over member chunks of emitted
// segments.
func (s *DataSection) NumRelocations() uint32 {
	var count uint32
	for _, seg := range s.segments {
		if seg.BSS {
			continue
		}
		for _, c := range seg.Chunks {
			count += c.NumRelocations()
		}
	}
	return count
}

// WriteRelocations concatenates relocation records in segment order, then
// chunk order within each segment.
func (s *DataSection) WriteRelocations(w *bytes.Buffer) {
	for _, seg := range s.segments {
		if seg.BSS {
			continue
		}
		for _, c := range seg.Chunks {
			c.WriteRelocations(w)
		}
	}
}
