package gemd

const upperhex = "0123456789ABCDEF"

// linkEscape percent-encodes a path for use in a gemtext link line. The
// escaped set covers control bytes, non-ASCII bytes, and the punctuation
// that breaks either URL or gemtext parsing: space, colon, '?', '#',
// brackets, '@' and the sub-delims. '/' is never escaped so that links
// into subdirectories stay readable.
func linkEscape(s string) string {
	hexCount := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}

	out := make([]byte, 0, len(s)+2*hexCount)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			out = append(out, '%', upperhex[c>>4], upperhex[c&0xf])
		} else {
			out = append(out, c)
		}
	}
	return string(out)
}

func shouldEscape(c byte) bool {
	if c < 0x20 || c >= 0x7f {
		return true
	}
	switch c {
	case ' ', ':', '?', '#', '[', ']', '@',
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}
