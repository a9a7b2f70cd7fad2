//go:build !cgo
// +build !cgo

package clipboard

import (
	"github.com/juju/errors"
)

var InitErr = errors.New("cellterm was built with CGO_ENABLED=0")

// WriteText is a wrapper around clipboard.Write with FmtText; it exists so
// that we can avoid compiling it without cgo and still have the binaries
// working (without clipboard support).
func WriteText(value []byte) {
	// no-op
}
