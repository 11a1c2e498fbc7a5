// Package wasm provides WebAssembly binary format primitives used by the
// output-section assembly pipeline.
//
// It covers the pieces a linker back end needs rather than a full module
// codec: section IDs and the constants of the data-segment encoding,
// LEB128 read/write/size helpers, constant initializer expressions, and a
// lightweight section-table scanner for inspecting finished binaries.
//
// # LEB128
//
// All integer fields of the binary format are LEB128 encoded. The size
// helpers exist because section layout must know the exact byte length of
// every field before anything is written:
//
//	n := wasm.SizeLEB128u(bodySize) // without allocating
//	b := wasm.EncodeLEB128u(bodySize)
//
// # Init expressions
//
// Active data segments carry a constant expression giving their placement
// address:
//
//	expr := wasm.I32Const(1024)
//	bytes := expr.Encode() // 0x41 0x80 0x08 0x0B
//
// # Section scanning
//
// ScanSections reads only the section table of a module binary:
//
//	infos, err := wasm.ScanSections(data)
//	for _, info := range infos {
//	    fmt.Println(info, info.Size)
//	}
package wasm
