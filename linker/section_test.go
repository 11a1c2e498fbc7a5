package linker_test

import (
	"bytes"
	"testing"

	"github.com/wippyai/wasm-linker/linker"
	"github.com/wippyai/wasm-linker/wasm"
)

func TestSectionHeader(t *testing.T) {
	// Body of 200 bytes forces a two-byte LEB128 size field.
	sec := linker.NewSyntheticSection(wasm.SectionType)
	sec.Body().Write(make([]byte, 200))
	sec.Finalize(linker.DefaultConfig())

	wantHeader := append(wasm.EncodeLEB128u(uint32(wasm.SectionType)), wasm.EncodeLEB128u(200)...)
	if got, want := sec.Size(), uint32(len(wantHeader)+200); got != want {
		t.Errorf("Size: got %d, want %d", got, want)
	}

	buf := make([]byte, sec.Size())
	sec.WriteTo(buf)
	if !bytes.Equal(buf[:len(wantHeader)], wantHeader) {
		t.Errorf("header: got %v, want %v", buf[:len(wantHeader)], wantHeader)
	}
}

func TestSectionHeaderSmallBody(t *testing.T) {
	sec := linker.NewSyntheticSection(wasm.SectionMemory)
	sec.Body().Write([]byte{0x01, 0x00, 0x01})
	sec.Finalize(linker.DefaultConfig())

	// One-byte id + one-byte size.
	if got := sec.Size(); got != 2+3 {
		t.Errorf("Size: got %d, want 5", got)
	}
}

func TestSectionString(t *testing.T) {
	code := linker.NewCodeSection(nil)
	if got := code.String(); got != "CODE" {
		t.Errorf("String: got %q, want CODE", got)
	}

	custom := linker.NewCustomSection(".debug_str", nil)
	if got := custom.String(); got != "CUSTOM(.debug_str)" {
		t.Errorf("String: got %q, want CUSTOM(.debug_str)", got)
	}
}

func TestSectionUnknownKindFatal(t *testing.T) {
	sec := linker.NewSyntheticSection(0x40)
	sec.Body().WriteByte(0x00)
	expectInternal(t, func() {
		sec.Finalize(linker.DefaultConfig())
	})
}

func TestSyntheticCustomSectionName(t *testing.T) {
	sec := linker.NewSyntheticCustomSection("producers")
	sec.Body().Write([]byte{0x00})
	sec.Finalize(linker.DefaultConfig())

	buf := make([]byte, sec.Size())
	sec.WriteTo(buf)

	// header: id 0, body size = name field (1+9) + 1 payload byte
	want := []byte{0x00, 0x0B, 0x09}
	want = append(want, []byte("producers")...)
	want = append(want, 0x00)
	if !bytes.Equal(buf, want) {
		t.Errorf("bytes: got %v, want %v", buf, want)
	}
}

func TestSyntheticSectionNotNeededWhenEmpty(t *testing.T) {
	sec := linker.NewSyntheticSection(wasm.SectionGlobal)
	sec.Finalize(linker.DefaultConfig())
	if sec.IsNeeded() {
		t.Error("empty synthetic section should not be needed")
	}
}
