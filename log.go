package cstr

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger installs the logger used for export bookkeeping. The default
// discards everything.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

func log() *zerolog.Logger { return logger.Load() }
