package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFullDescr(t *testing.T) {
	descr := VersionFullDescr("snake")

	// The clipboard line depends on the host, but always takes one line.
	lines := strings.Split(strings.TrimSpace(descr), "\n")
	if assert.Len(t, lines, 7) {
		assert.Equal(t, "snake (cellterm dev)", lines[0])
		assert.True(t, strings.HasPrefix(lines[5], "CGO: "), lines[5])
		assert.True(t, strings.HasPrefix(lines[6], "Clipboard support: "), lines[6])
	}

	assert.Equal(t, "dev", Version())
}

func TestOneLine(t *testing.T) {
	type testCase struct {
		msg  string
		want string
	}

	testCases := []testCase{
		testCase{msg: "", want: ""},
		testCase{msg: "no display", want: "no display"},
		testCase{msg: "clipboard: cannot use when CGO_ENABLED=0\n\nInstall:\n\n\tapt install xvfb\n", want: "clipboard: cannot use when CGO_ENABLED=0 Install: apt install xvfb"},
	}

	for i, tc := range testCases {
		assert.Equal(t, tc.want, oneLine(tc.msg), "testCase #%d", i)
	}
}
