package ipc

import (
	"errors"
	"strings"
)

const (
	delimiter  = '|'
	escapeChar = '\\'

	// fieldCount is the number of fields in a delimited record.
	fieldCount = 4
)

var errDanglingEscape = errors.New("trailing escape character")

// Escape prefixes every '\' and '|' in s with '\'.
func Escape(s string) string {
	if !strings.ContainsAny(s, `\|`) {
		return s
	}
	return string(appendEscaped(make([]byte, 0, 2*len(s)), s))
}

// appendEscaped appends the escaped form of s to b.
func appendEscaped(b []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == delimiter || c == escapeChar {
			b = append(b, escapeChar)
		}
		b = append(b, s[i])
	}
	return b
}

// Unescape reverses Escape. Scanning left to right, a '\' makes the next
// byte literal; an unescaped '|' is a terminator and is dropped.
func Unescape(s string) string {
	if !strings.ContainsAny(s, `\|`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == escapeChar:
			escaped = true
		case c == delimiter:
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// splitFields counts unescaped delimiters across all of s and, only when
// there are exactly fieldCount-1 of them, returns the raw tokens between
// them. Tokens are still escaped. Both delimiter and escape are ASCII, so
// scanning bytes never splits a multi-byte rune.
func splitFields(s string) ([fieldCount]string, error) {
	var (
		tokens  [fieldCount]string
		cuts    [fieldCount - 1]int
		count   int
		escaped bool
	)

	for i := 0; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == escapeChar:
			escaped = true
		case s[i] == delimiter:
			if count < len(cuts) {
				cuts[count] = i
			}
			count++
		}
	}

	if count != fieldCount-1 {
		return tokens, newDecodeError(ErrStructure, "", indexNone, s, nil)
	}
	if escaped {
		return tokens, newDecodeError(ErrStructure, fieldKind, indexKind, s, errDanglingEscape)
	}

	start := 0
	for i, cut := range cuts {
		tokens[i] = s[start:cut]
		start = cut + 1
	}
	tokens[fieldCount-1] = s[start:]
	return tokens, nil
}
