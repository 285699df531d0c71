package mud

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Text limits.
const (
	MaxNameBytes = 32
	MaxChatWidth = 200 // display cells
)

func nameChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("-_ .,:!()#", r)
}

// SanitizeName drops every character outside [a-zA-Z0-9-_ .,:!()#] and caps
// the result at MaxNameBytes.
func SanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !nameChar(r) {
			continue
		}
		if b.Len() == MaxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// SanitizeShout strips control characters and truncates to MaxChatWidth
// display cells.
func SanitizeShout(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return runewidth.Truncate(s, MaxChatWidth, "~")
}
