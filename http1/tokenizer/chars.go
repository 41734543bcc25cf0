package tokenizer

// tchar as defined by RFC 9110, 5.6.2
var tokenChars = func() (lut [256]bool) {
	for c := '0'; c <= '9'; c++ {
		lut[c] = true
	}

	for c := 'a'; c <= 'z'; c++ {
		lut[c] = true
		lut[c-'a'+'A'] = true
	}

	for _, c := range "!#$%&'*+-.^_`|~" {
		lut[c] = true
	}

	return lut
}()

func isToken(b []byte) bool {
	for _, c := range b {
		if !tokenChars[c] {
			return false
		}
	}

	return len(b) > 0
}

// isProhibitedChar reports whether the byte may not appear in a request target as-is.
func isProhibitedChar(c byte) bool {
	return c <= 0x20 || c > 0x7e
}

// isFieldValueChar permits HTAB, visible ASCII and obs-text.
func isFieldValueChar(c byte) bool {
	return c == '\t' || (c >= 0x20 && c != 0x7f)
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}

	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}

	return b
}

func stripCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}

	return b
}
