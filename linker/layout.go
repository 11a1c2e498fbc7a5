package linker

import (
	"encoding/binary"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-linker/wasm"
)

// moduleHeaderSize is the fixed magic + version preamble length.
const moduleHeaderSize = 8

// Layout assigns absolute file offsets from cumulative sizes, starting at
// base. Sections reporting !IsNeeded() are skipped entirely: no offset,
// no bytes. Every section must already be finalized. Returns the total
// file size.
func Layout(base uint32, sections []OutputSection) uint32 {
	off := base
	for _, sec := range sections {
		if !sec.IsNeeded() {
			Logger().Debug("section skipped", zap.String("section", sec.String()))
			continue
		}
		sec.SetFileOffset(off)
		off += sec.Size()
	}
	return off
}

// Assemble runs the full output pipeline over the given section stream:
// finalize every section, lay them out after the module preamble, then
// render into one pre-sized buffer. Sections write disjoint byte ranges,
// so rendering runs concurrently without locking.
//
// The section order is the output order; the caller is responsible for
// it satisfying the binary format's section ordering rules.
func Assemble(cfg Config, sections []OutputSection) []byte {
	for _, sec := range sections {
		sec.Finalize(cfg)
	}

	total := Layout(moduleHeaderSize, sections)
	buf := make([]byte, total)
	binary.LittleEndian.PutUint32(buf[0:4], wasm.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], wasm.Version)

	var wg sync.WaitGroup
	for _, sec := range sections {
		if !sec.IsNeeded() {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			sec.WriteTo(buf)
		}()
	}
	wg.Wait()

	Logger().Debug("module assembled",
		zap.Uint32("size", total),
		zap.Int("sections", len(sections)))
	return buf
}
