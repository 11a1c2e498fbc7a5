package wasm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/wippyai/wasm-linker/wasm/internal/binary"
)

// Scanning errors returned by ScanSections.
var (
	ErrInvalidMagic   = errors.New("invalid wasm magic number")
	ErrInvalidVersion = errors.New("invalid wasm version")
)

var sectionNames = map[byte]string{
	SectionCustom:    "CUSTOM",
	SectionType:      "TYPE",
	SectionImport:    "IMPORT",
	SectionFunction:  "FUNCTION",
	SectionTable:     "TABLE",
	SectionMemory:    "MEMORY",
	SectionGlobal:    "GLOBAL",
	SectionExport:    "EXPORT",
	SectionStart:     "START",
	SectionElement:   "ELEM",
	SectionCode:      "CODE",
	SectionData:      "DATA",
	SectionDataCount: "DATACOUNT",
	SectionTag:       "TAG",
}

// SectionName returns the conventional upper-case name for a section ID.
// ok is false for IDs outside the known enumeration.
func SectionName(id byte) (name string, ok bool) {
	name, ok = sectionNames[id]
	return name, ok
}

// SectionInfo describes one section found while scanning a module binary.
type SectionInfo struct {
	ID     byte
	Name   string // set for custom sections only
	Offset int    // file offset of the section ID byte
	Size   uint32 // body size as recorded in the section header
}

// String returns a human-readable identity such as "CODE" or
// "CUSTOM(.debug_str)".
func (s SectionInfo) String() string {
	name, ok := SectionName(s.ID)
	if !ok {
		name = fmt.Sprintf("UNKNOWN(0x%02x)", s.ID)
	}
	if s.Name != "" {
		return name + "(" + s.Name + ")"
	}
	return name
}

// ScanSections reads the section table of a module binary without
// decoding section contents. Custom section names are extracted; all
// other bodies are skipped.
func ScanSections(data []byte) ([]SectionInfo, error) {
	r := binary.NewReader(bytes.NewReader(data))

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}

	version, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if version != Version {
		return nil, ErrInvalidVersion
	}

	var sections []SectionInfo
	for {
		start := r.Position()
		id, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sections, nil
			}
			return nil, r.WrapError("section id", err)
		}
		if _, ok := SectionName(id); !ok {
			return nil, fmt.Errorf("unknown section id 0x%02x at offset %d", id, start)
		}

		size, err := r.ReadU32()
		if err != nil {
			return nil, r.WrapError("section size", err)
		}

		info := SectionInfo{ID: id, Offset: start, Size: size}
		bodyStart := r.Position()
		if id == SectionCustom {
			name, err := r.ReadName()
			if err != nil {
				return nil, r.WrapError("custom section name", err)
			}
			info.Name = name
		}

		skip := int(size) - (r.Position() - bodyStart)
		if skip < 0 {
			return nil, fmt.Errorf("custom section name overruns section at offset %d", start)
		}
		if err := r.Skip(skip); err != nil {
			return nil, r.WrapError("section body", err)
		}
		sections = append(sections, info)
	}
}
