package linker

import (
	"go.uber.org/zap"

	linkerrors "github.com/wippyai/wasm-linker/errors"
)

// fatalf reports an internal-consistency violation: the fragment set
// handed to output assembly contradicts itself, which means an upstream
// pass is broken. There is no recovery path; the link is aborted by
// panicking with a *errors.Error of kind internal.
func fatalf(phase linkerrors.Phase, format string, args ...any) {
	err := linkerrors.Internal(phase, format, args...)
	Logger().Error("internal consistency violation", zap.Error(err))
	panic(err)
}
