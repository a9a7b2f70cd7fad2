package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/dimonomid/cellterm/clipboard"
)

// These are being replaced with the actual values using ldflags, e.g.
// -ldflags "-X github.com/dimonomid/cellterm/version.version=v0.1.0".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Version returns the bare version string.
func Version() string {
	return version
}

// VersionFullDescr returns the full version description of the binary
// called appName, printed at --version.
func VersionFullDescr(appName string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s (cellterm %s)\n", appName, version))
	sb.WriteString(fmt.Sprintf("Commit: %s\n", commit))
	sb.WriteString(fmt.Sprintf("Build time: %s\n", date))
	sb.WriteString(fmt.Sprintf("Built by: %s\n", builtBy))
	sb.WriteString(fmt.Sprintf("GOOS: %s\n", runtime.GOOS))
	if cgoEnabled {
		sb.WriteString("CGO: enabled\n")
	} else {
		sb.WriteString("CGO: disabled\n")
	}
	if clipboard.InitErr == nil {
		sb.WriteString("Clipboard support: yes\n")
	} else {
		sb.WriteString(fmt.Sprintf("Clipboard support: no (%s)\n", oneLine(clipboard.InitErr.Error())))
	}

	return sb.String()
}

// oneLine collapses all whitespace in msg, including newlines, to single
// spaces.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
