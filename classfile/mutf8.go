package classfile

import "unicode/utf8"

// decodeModifiedUtf8 decodes the class file flavour of UTF-8: NUL is encoded
// as C0 80 and supplementary characters as two three-byte surrogates.
// Malformed sequences decode to U+FFFD, one per offending byte.
func decodeModifiedUtf8(b []byte) string {
	runes := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			runes = append(runes, rune(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b) && b[i+1]&0xC0 == 0x80:
			runes = append(runes, rune(c&0x1F)<<6|rune(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b) && b[i+1]&0xC0 == 0x80 && b[i+2]&0xC0 == 0x80:
			r := threeByte(b[i:])
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(b) &&
				b[i+3]&0xF0 == 0xE0 && b[i+4]&0xC0 == 0x80 && b[i+5]&0xC0 == 0x80 {
				if low := threeByte(b[i+3:]); low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+(r-0xD800)<<10+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, utf8.RuneError)
			i++
		}
	}
	return string(runes)
}

func threeByte(b []byte) rune {
	return rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
}
