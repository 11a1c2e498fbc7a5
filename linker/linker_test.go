package linker_test

import (
	"errors"
	"testing"

	linkerrors "github.com/wippyai/wasm-linker/errors"
	"github.com/wippyai/wasm-linker/linker"
)

// testFunc adapts RawChunk to the FunctionChunk contract; its rendered
// size is fixed at construction.
type testFunc struct {
	*linker.RawChunk
}

func newTestFunc(name string, data []byte) testFunc {
	return testFunc{linker.NewRawChunk(name, data)}
}

func (testFunc) CalculateSize() {}

// expectInternal asserts that fn panics with a kind=internal error.
func expectInternal(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected internal consistency panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, &linkerrors.Error{Kind: linkerrors.KindInternal}) {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()
	fn()
}
