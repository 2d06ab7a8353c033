package shared

import (
	"strings"
	"unicode/utf8"
)

func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "violates unique constraint")
}

func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	words := strings.Fields(name)
	normalized := make([]string, 0, len(words))
	for _, word := range words {
		// The first letter may be a multi-byte rune (Á, Ñ, É...), so it
		// has to be decoded, not indexed.
		first, size := utf8.DecodeRuneInString(word)
		normalized = append(normalized, strings.ToUpper(string(first))+strings.ToLower(word[size:]))
	}
	return strings.Join(normalized, " ")
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
