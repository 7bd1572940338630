//go:build !darwin && !linux

package accel

import (
	"context"
	"fmt"
	"runtime"
)

// LibraryLoader is unavailable on this platform; the dispatcher stays portable.
func LibraryLoader(path string) Loader {
	return func(context.Context) (Module, error) {
		return nil, fmt.Errorf("%w: native library loading not supported on %s", ErrDisabled, runtime.GOOS)
	}
}
