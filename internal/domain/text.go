package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// TitleCase upper-cases the first letter of every word.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// DisplayName turns a snake_case key into a human label ("politica_fiscal" -> "Politica Fiscal").
func DisplayName(key string) string {
	return TitleCase(strings.ReplaceAll(key, "_", " "))
}

// Truncate keeps the first limit characters of s and appends Ellipsis
// only when something was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return Prefix(s, limit) + Ellipsis
}

// Prefix returns at most the first limit characters of s.
func Prefix(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

// Length counts characters, not bytes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
