package screen

import (
	"bufio"
)

// Pre-built escape fragments, written as is during Print.
var (
	csi = []byte("\x1b[")

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Move home and erase the whole display; written once by New.
	csiHomeClear = []byte("\x1b[1;1H\x1b[2J")

	// Cursor down one line.
	csiDown1 = []byte("\x1b[1B")

	csiReset = []byte("\x1b[0m")
)

// writeInt writes a non-negative integer without allocating; negative values
// are written as 0.
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}

	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorUp writes ESC[<n>A.
func writeCursorUp(w *bufio.Writer, n int) {
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('A')
}

// writeCursorBack writes ESC[<n>D.
func writeCursorBack(w *bufio.Writer, n int) {
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('D')
}
