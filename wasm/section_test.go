package wasm_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wippyai/wasm-linker/wasm"
)

// buildModule assembles a minimal binary by hand: magic, version, then
// raw section blocks.
func buildModule(sections ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00})
	for _, s := range sections {
		buf.Write(s)
	}
	return buf.Bytes()
}

func rawSection(id byte, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte(id)
	wasm.WriteLEB128u(&buf, uint32(len(body)))
	buf.Write(body)
	return buf.Bytes()
}

func TestScanSectionsEmpty(t *testing.T) {
	infos, err := wasm.ScanSections(buildModule())
	if err != nil {
		t.Fatalf("ScanSections: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected no sections, got %d", len(infos))
	}
}

func TestScanSectionsTyped(t *testing.T) {
	typeBody := []byte{0x01, 0x60, 0x00, 0x00}
	codeBody := []byte{0x01, 0x02, 0x00, 0x0B}
	data := buildModule(
		rawSection(wasm.SectionType, typeBody),
		rawSection(wasm.SectionCode, codeBody),
	)

	infos, err := wasm.ScanSections(data)
	if err != nil {
		t.Fatalf("ScanSections: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(infos))
	}

	if infos[0].ID != wasm.SectionType || infos[0].Size != uint32(len(typeBody)) {
		t.Errorf("section 0: got %v size %d", infos[0], infos[0].Size)
	}
	if infos[0].Offset != 8 {
		t.Errorf("section 0 offset: got %d, want 8", infos[0].Offset)
	}
	if infos[1].ID != wasm.SectionCode {
		t.Errorf("section 1: got %v, want CODE", infos[1])
	}
	if infos[1].String() != "CODE" {
		t.Errorf("section 1 String: got %q", infos[1].String())
	}
}

func TestScanSectionsCustomName(t *testing.T) {
	var body bytes.Buffer
	wasm.WriteLEB128u(&body, uint32(len(".debug_str")))
	body.WriteString(".debug_str")
	body.Write([]byte{0xAA, 0xBB})

	infos, err := wasm.ScanSections(buildModule(rawSection(wasm.SectionCustom, body.Bytes())))
	if err != nil {
		t.Fatalf("ScanSections: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 section, got %d", len(infos))
	}
	if infos[0].Name != ".debug_str" {
		t.Errorf("name: got %q, want .debug_str", infos[0].Name)
	}
	if infos[0].String() != "CUSTOM(.debug_str)" {
		t.Errorf("String: got %q", infos[0].String())
	}
}

func TestScanSectionsBadMagic(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x00, 0x00, 0x00}
	_, err := wasm.ScanSections(data)
	if !errors.Is(err, wasm.ErrInvalidMagic) {
		t.Errorf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestScanSectionsBadVersion(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73, 0x6D, 0x02, 0x00, 0x00, 0x00}
	_, err := wasm.ScanSections(data)
	if !errors.Is(err, wasm.ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestScanSectionsUnknownID(t *testing.T) {
	_, err := wasm.ScanSections(buildModule(rawSection(0x20, nil)))
	if err == nil {
		t.Fatal("expected error for unknown section id")
	}
}

func TestScanSectionsTruncated(t *testing.T) {
	// Header promises 10 body bytes but only 2 follow.
	data := buildModule([]byte{byte(wasm.SectionCode), 0x0A, 0x01, 0x02})
	_, err := wasm.ScanSections(data)
	if err == nil {
		t.Fatal("expected error for truncated section")
	}
}

func TestSectionName(t *testing.T) {
	tests := []struct {
		id   byte
		want string
	}{
		{wasm.SectionCustom, "CUSTOM"},
		{wasm.SectionType, "TYPE"},
		{wasm.SectionCode, "CODE"},
		{wasm.SectionData, "DATA"},
		{wasm.SectionDataCount, "DATACOUNT"},
		{wasm.SectionTag, "TAG"},
	}
	for _, tt := range tests {
		got, ok := wasm.SectionName(tt.id)
		if !ok || got != tt.want {
			t.Errorf("SectionName(%d) = %q, %v; want %q", tt.id, got, ok, tt.want)
		}
	}

	if _, ok := wasm.SectionName(0x7F); ok {
		t.Error("SectionName(0x7F) should not be ok")
	}
}
