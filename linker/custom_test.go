package linker_test

import (
	"bytes"
	"testing"

	"github.com/wippyai/wasm-linker/linker"
)

func TestCustomSectionLayout(t *testing.T) {
	chunks := []linker.Chunk{
		linker.NewRawChunk("a", []byte{0x01, 0x02}),
		linker.NewRawChunk("b", []byte{0x03}),
	}
	sec := linker.NewCustomSection("meta", chunks)
	sec.Finalize(linker.DefaultConfig())

	buf := make([]byte, sec.Size())
	sec.WriteTo(buf)

	want := []byte{
		0x00, 0x08, // section id, body size
		0x04, 'm', 'e', 't', 'a', // name field
		0x01, 0x02, // chunk a
		0x03, // chunk b
	}
	if !bytes.Equal(buf, want) {
		t.Errorf("bytes: got %v, want %v", buf, want)
	}

	// Offsets are payload-relative: a at 0, b right after.
	if chunks[0].Offset() != 0 || chunks[1].Offset() != 2 {
		t.Errorf("offsets: got %d, %d; want 0, 2", chunks[0].Offset(), chunks[1].Offset())
	}
}

func TestCustomSectionMergeOrdering(t *testing.T) {
	mergeableA := linker.NewStringsChunk("a", [][]byte{
		[]byte("foo\x00"), []byte("bar\x00"),
	})
	nonMergeableX := linker.NewRawChunk("x", []byte{0xFF, 0xFE})
	mergeableB := linker.NewStringsChunk("b", [][]byte{
		[]byte("bar\x00"), []byte("baz\x00"),
	})

	sec := linker.NewCustomSection(".debug_str", []linker.Chunk{
		mergeableA, nonMergeableX, mergeableB,
	})
	sec.Finalize(linker.DefaultConfig())

	// The merged chunk takes the position of the first mergeable chunk;
	// x follows it. Content is the deduplicated concatenation: the
	// second "bar\0" is dropped.
	merged := []byte("foo\x00bar\x00baz\x00")
	if nonMergeableX.Offset() != uint32(len(merged)) {
		t.Errorf("x offset: got %d, want %d", nonMergeableX.Offset(), len(merged))
	}

	buf := make([]byte, sec.Size())
	sec.WriteTo(buf)

	nameField := append([]byte{0x0A}, []byte(".debug_str")...)
	want := []byte{0x00, byte(len(nameField) + len(merged) + 2)}
	want = append(want, nameField...)
	want = append(want, merged...)
	want = append(want, 0xFF, 0xFE)
	if !bytes.Equal(buf, want) {
		t.Errorf("bytes:\n got %v\nwant %v", buf, want)
	}
}

func TestCustomSectionNoMergeablesUntouched(t *testing.T) {
	a := linker.NewRawChunk("a", []byte{0x01})
	b := linker.NewRawChunk("b", []byte{0x02})
	sec := linker.NewCustomSection("plain", []linker.Chunk{a, b})
	sec.Finalize(linker.DefaultConfig())

	if a.Offset() != 0 || b.Offset() != 1 {
		t.Errorf("offsets changed: a=%d b=%d", a.Offset(), b.Offset())
	}
}

func TestCustomSectionDiscardedChunkFatal(t *testing.T) {
	dropped := linker.NewRawChunk("dropped", []byte{0x01})
	dropped.Discard()

	sec := linker.NewCustomSection("meta", []linker.Chunk{dropped})
	expectInternal(t, func() {
		sec.Finalize(linker.DefaultConfig())
	})
}

func TestCustomSectionRelocations(t *testing.T) {
	a := linker.NewRawChunk("a", []byte{0x01})
	a.AddRelocation([]byte{0x10, 0x00})
	a.AddRelocation([]byte{0x11, 0x01})
	b := linker.NewRawChunk("b", []byte{0x02})
	c := linker.NewRawChunk("c", []byte{0x03})
	c.AddRelocation([]byte{0x20, 0x02})
	c.AddRelocation([]byte{0x21, 0x03})
	c.AddRelocation([]byte{0x22, 0x04})

	sec := linker.NewCustomSection("meta", []linker.Chunk{a, b, c})
	sec.Finalize(linker.DefaultConfig())

	if got := sec.NumRelocations(); got != 5 {
		t.Errorf("NumRelocations: got %d, want 5", got)
	}

	var buf bytes.Buffer
	sec.WriteRelocations(&buf)
	want := []byte{0x10, 0x00, 0x11, 0x01, 0x20, 0x02, 0x21, 0x03, 0x22, 0x04}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("relocation stream: got %v, want %v", buf.Bytes(), want)
	}
}

func TestMergedChunkDedup(t *testing.T) {
	m := linker.NewMergedChunk(".debug_str")
	m.AddChunk(linker.NewStringsChunk("a", [][]byte{[]byte("x"), []byte("y")}))
	m.AddChunk(linker.NewStringsChunk("b", [][]byte{[]byte("y"), []byte("x"), []byte("z")}))
	m.FinalizeContents()

	if m.Size() != 3 {
		t.Errorf("Size: got %d, want 3", m.Size())
	}
	buf := make([]byte, m.Size())
	m.WriteTo(buf)
	if string(buf) != "xyz" {
		t.Errorf("content: got %q, want xyz", buf)
	}
}
