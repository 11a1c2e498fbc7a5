package linker

import (
	"github.com/wippyai/wasm-linker/wasm"
)

// RelocSection serializes another section's relocation stream as a
// "reloc.<NAME>" custom section, the form relocatable output uses so a
// later consumer can re-derive patched addresses against the same
// offsets. Its body is the target's section index, the record count,
// then the records in the target's deterministic chunk order.
type RelocSection struct {
	SyntheticSection
	target      OutputSection
	targetIndex uint32
}

// NewRelocSection creates a relocation section for target, which must be
// finalized before this section is. targetIndex is the target's position
// in the output section stream.
func NewRelocSection(target OutputSection, targetIndex uint32) *RelocSection {
	name := "reloc." + sectionName(target.ID())
	if target.Name() != "" {
		name = "reloc." + target.Name()
	}
	return &RelocSection{
		SyntheticSection: *NewSyntheticCustomSection(name),
		target:           target,
		targetIndex:      targetIndex,
	}
}

// Finalize generates the relocation body from the target's finalized
// chunk sequence, then sizes the section.
func (s *RelocSection) Finalize(cfg Config) {
	body := s.Body()
	wasm.WriteLEB128u(body, s.targetIndex)
	wasm.WriteLEB128u(body, s.target.NumRelocations())
	s.target.WriteRelocations(body)
	s.SyntheticSection.Finalize(cfg)
}

// IsNeeded reports false when the target has no relocations.
func (s *RelocSection) IsNeeded() bool {
	return s.target.NumRelocations() > 0
}
