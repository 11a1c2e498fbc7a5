// Package linker assembles resolved, address-assigned input chunks into
// the typed, length-prefixed sections of a WebAssembly module binary,
// together with per-section relocation streams.
//
// The pipeline is strictly two-phase. Finalize computes every byte size
// and body-relative offset using LEB128 widths before anything is
// written; only once all sections are finalized can absolute file offsets
// be assigned from cumulative sizes, and only then may WriteTo render
// bytes. After finalize nothing is mutated, so distinct sections can be
// written concurrently into one shared buffer: each touches only its own
// [offset, offset+size) range.
//
//	sections := []linker.OutputSection{
//	    linker.NewCodeSection(funcs),
//	    linker.NewDataSection(segments),
//	    linker.NewCustomSection(".debug_str", chunks),
//	}
//	module := linker.Assemble(linker.DefaultConfig(), sections)
//
// Input chunks are owned by upstream phases and consumed through the
// Chunk interfaces; sections never copy them, only reference them and
// assign their offsets.
//
// Invariant violations (an unknown section type, a zero-size function
// after finalize, more than one active data segment under
// position-independent addressing, a discarded chunk reaching layout)
// indicate a defective upstream pass, not bad user input. They abort the
// link with a panic carrying an errors.KindInternal error rather than
// returning an error value.
package linker
