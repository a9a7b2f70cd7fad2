package mstring

// After returns true if a sorts strictly after b, ignoring ASCII case. Only
// the first min(a.Len(), b.Len()) bytes are compared, so if one string is a
// prefix of the other, After returns false.
func After(a, b *String) bool {
	ab, bb := a.Bytes(), b.Bytes()

	n := len(ab)
	if len(bb) < n {
		n = len(bb)
	}

	for i := 0; i < n; i++ {
		ca, cb := toLower(ab[i]), toLower(bb[i])
		if ca == cb {
			continue
		}

		return ca > cb
	}

	return false
}

// Equal returns true if a and b hold the same bytes.
func Equal(a, b *String) bool {
	return a.String() == b.String()
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}

	return c
}
