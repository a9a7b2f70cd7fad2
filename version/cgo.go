//go:build cgo
// +build cgo

package version

const cgoEnabled = true
