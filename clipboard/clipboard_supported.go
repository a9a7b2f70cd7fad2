//go:build (darwin || linux || windows) && cgo
// +build darwin linux windows
// +build cgo

package clipboard

import (
	"golang.design/x/clipboard"
)

// InitErr is nil if the system clipboard can be used.
var InitErr = clipboard.Init()

// WriteText puts value to the system clipboard as text. It does nothing if
// the clipboard failed to initialize.
func WriteText(value []byte) {
	if InitErr != nil {
		return
	}

	clipboard.Write(clipboard.FmtText, value)
}
