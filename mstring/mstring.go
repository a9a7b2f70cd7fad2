// Package mstring implements String, an owned, mutable byte string.
//
// All mutating operations are rebuild-based: they never resize the buffer in
// place, but allocate a new buffer sized for the post-edit length, fill it,
// and move it into the receiver with Set. Invalid arguments never modify the
// string; the returned error tells why, but callers are free to ignore it.
package mstring

import (
	"bytes"

	"github.com/juju/errors"
)

// String owns a buffer of Len()+1 bytes, the last one always being 0. The
// zero String is empty.
type String struct {
	// buf is nil for the empty string; otherwise len(buf) == length+1 and
	// buf[length] == 0.
	buf []byte
}

// Make creates a String with a copy of src.
func Make(src string) String {
	s := MakeEmpty(len(src))
	copy(s.buf, src)
	return s
}

// MakeRange creates a String with a copy of src[start:end]. If the range is
// invalid, an empty String is returned along with the error.
func MakeRange(src string, start, end int) (String, error) {
	if start < 0 || end < start || end > len(src) {
		return String{}, errors.NotValidf("range [%d, %d) of a %d-byte string", start, end, len(src))
	}

	return Make(src[start:end]), nil
}

// MakeEmpty creates a String of n zero bytes.
func MakeEmpty(n int) String {
	if n < 0 {
		n = 0
	}

	return String{buf: make([]byte, n+1)}
}

// Len returns the number of addressable bytes.
func (s *String) Len() int {
	if s.buf == nil {
		return 0
	}

	return len(s.buf) - 1
}

// Bytes returns the contents without the trailing zero. The slice aliases the
// buffer until the next mutation.
func (s *String) Bytes() []byte {
	if s.buf == nil {
		return nil
	}

	return s.buf[:len(s.buf)-1]
}

// CString returns the whole buffer including the trailing zero.
func (s *String) CString() []byte {
	if s.buf == nil {
		return []byte{0}
	}

	return s.buf
}

func (s *String) String() string {
	return string(s.Bytes())
}

// Clone returns an independently owned copy of s.
func (s *String) Clone() String {
	return Make(s.String())
}

// Destroy releases the buffer; the string becomes empty and can be reused.
func (s *String) Destroy() {
	s.buf = nil
}

// Set destroys dst and moves src into it. src is left empty.
func Set(dst, src *String) {
	if dst == src {
		return
	}

	dst.Destroy()
	dst.buf = src.buf
	src.buf = nil
}

// SetAt overwrites the byte at index i.
func (s *String) SetAt(i int, c byte) error {
	if i < 0 || i >= s.Len() {
		return errors.NotValidf("index %d of a %d-byte string", i, s.Len())
	}

	s.buf[i] = c
	return nil
}

// Contains returns the index of the first occurrence of find, or -1.
func (s *String) Contains(find string) int {
	return bytes.Index(s.Bytes(), []byte(find))
}

// ContainsByte returns the index of the first occurrence of c, or -1.
func (s *String) ContainsByte(c byte) int {
	return bytes.IndexByte(s.Bytes(), c)
}

// Append appends text to the string.
func (s *String) Append(text string) {
	if text == "" {
		return
	}

	n := MakeEmpty(s.Len() + len(text))
	copy(n.buf, s.Bytes())
	copy(n.buf[s.Len():], text)

	Set(s, &n)
}

// Replace replaces the first occurrence of find with replacement. An empty
// replacement makes it the same as Remove.
func (s *String) Replace(find, replacement string) error {
	if replacement == "" {
		return errors.Trace(s.Remove(find))
	}

	idx := s.Contains(find)
	if idx == -1 {
		return errors.NotFoundf("substring %q", find)
	}

	s.splice(idx, idx+len(find), replacement)
	return nil
}

// ReplaceIndex replaces the bytes in the inclusive window [start, end] with
// replacement. Both ends must address existing bytes, and start must not be
// after end.
func (s *String) ReplaceIndex(start, end int, replacement string) error {
	if err := s.checkWindow(start, end); err != nil {
		return errors.Trace(err)
	}

	s.splice(start, end+1, replacement)
	return nil
}

// Remove removes the first occurrence of find.
func (s *String) Remove(find string) error {
	if find == "" {
		return nil
	}

	idx := s.Contains(find)
	if idx == -1 {
		return errors.NotFoundf("substring %q", find)
	}

	s.splice(idx, idx+len(find), "")
	return nil
}

// RemoveRange removes the bytes in the inclusive window [start, end].
func (s *String) RemoveRange(start, end int) error {
	if err := s.checkWindow(start, end); err != nil {
		return errors.Trace(err)
	}

	s.splice(start, end+1, "")
	return nil
}

func (s *String) checkWindow(start, end int) error {
	if start < 0 || end < 0 || start > end || end > s.Len()-1 {
		return errors.NotValidf("window [%d, %d] of a %d-byte string", start, end, s.Len())
	}

	return nil
}

// splice rebuilds the string with the half-open range [from, to) replaced by
// replacement.
func (s *String) splice(from, to int, replacement string) {
	old := s.Bytes()

	n := MakeEmpty(len(old) - (to - from) + len(replacement))
	copy(n.buf, old[:from])
	copy(n.buf[from:], replacement)
	copy(n.buf[from+len(replacement):], old[to:])

	Set(s, &n)
}

// Split splits the string at the first occurrence of delim, which is not
// included in either part. If there is no delim, ok is false.
func (s *String) Split(delim byte) (left, right String, ok bool) {
	idx := s.ContainsByte(delim)
	if idx == -1 {
		return String{}, String{}, false
	}

	return s.SplitAt(idx)
}

// SplitAt splits the string around the byte at index, which is not included
// in either part. index may be equal to Len(), in which case right is empty.
func (s *String) SplitAt(index int) (left, right String, ok bool) {
	if index < 0 || index > s.Len() {
		return String{}, String{}, false
	}

	b := s.Bytes()
	left = Make(string(b[:index]))
	if index < len(b) {
		right = Make(string(b[index+1:]))
	} else {
		right = MakeEmpty(0)
	}

	return left, right, true
}
