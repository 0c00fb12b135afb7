package lexer

import (
	"strconv"
	"strings"
)

// DecodeEscapes decodes backslash escape sequences in a string literal
// body. Unknown escapes keep the backslash, matching Python. Raw
// literals must not be passed through this function.
func DecodeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}
		decoded, size := decodeOneEscape(s[i:])
		b.WriteString(decoded)
		i += size
	}
	return b.String()
}

// decodeOneEscape decodes a single escape sequence at the start of s
// (which must begin with a backslash) and returns the decoded text and
// the number of input bytes consumed.
func decodeOneEscape(s string) (string, int) {
	if len(s) < 2 {
		return s, len(s)
	}
	switch c := s[1]; c {
	case 'n':
		return "\n", 2
	case 't':
		return "\t", 2
	case 'r':
		return "\r", 2
	case 'a':
		return "\a", 2
	case 'b':
		return "\b", 2
	case 'f':
		return "\f", 2
	case 'v':
		return "\v", 2
	case '0', '1', '2', '3', '4', '5', '6', '7':
		n := 1
		for n < 4 && n < len(s) && s[n] >= '0' && s[n] <= '7' {
			n++
		}
		v, _ := strconv.ParseUint(s[1:n], 8, 32)
		return string(rune(v)), n
	case '\\':
		return "\\", 2
	case '\'':
		return "'", 2
	case '"':
		return "\"", 2
	case '\n':
		// Escaped newline inside a literal joins lines.
		return "", 2
	case 'x':
		if len(s) >= 4 {
			if v, err := strconv.ParseUint(s[2:4], 16, 8); err == nil {
				return string(rune(v)), 4
			}
		}
	case 'u':
		if len(s) >= 6 {
			if v, err := strconv.ParseUint(s[2:6], 16, 32); err == nil {
				return string(rune(v)), 6
			}
		}
	case 'U':
		if len(s) >= 10 {
			if v, err := strconv.ParseUint(s[2:10], 16, 32); err == nil {
				return string(rune(v)), 10
			}
		}
	}
	// Unknown escape: keep the backslash and the following character.
	return s[:2], 2
}
