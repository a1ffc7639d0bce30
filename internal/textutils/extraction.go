// Package textutils provides text matching and extraction helpers shared by the
// extractors and the rule engine.
package textutils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// clauseReferencePatterns recognise lease section markers, most specific first.
var clauseReferencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(section\s+\d+(?:\.\d+)*(?:\s*\([a-z0-9]+\))?)`),
	regexp.MustCompile(`(?i)\b(article\s+(?:\d+(?:\.\d+)*|[ivxlc]+)\b(?:\s*\([a-z0-9]+\))?)`),
	regexp.MustCompile(`(§\s*\d+(?:\.\d+)*(?:\s*\([a-z0-9]+\))?)`),
	regexp.MustCompile(`(?i)\b(paragraph\s+\d+(?:\.\d+)*(?:\s*\([a-z0-9]+\))?)`),
	regexp.MustCompile(`(?i)\b(clause\s+\d+(?:\.\d+)*(?:\s*\([a-z0-9]+\))?)`),
}

// ExtractClauseReference returns the first section/article/paragraph/clause marker found
// in text, e.g. "Section 4.2" or "Paragraph 12(b)". Returns "" when there is none.
func ExtractClauseReference(text string) string {
	best := ""
	bestPos := -1
	for _, re := range clauseReferencePatterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if bestPos == -1 || loc[2] < bestPos {
			bestPos = loc[2]
			best = text[loc[2]:loc[3]]
		}
	}
	return NormalizeSpace(best)
}

// HasClauseReference reports whether text contains a section marker.
func HasClauseReference(text string) bool {
	return ExtractClauseReference(text) != ""
}

// ContainsAny reports whether s contains any of the given substrings, case-insensitively.
// The substrings are expected in lower case.
func ContainsAny(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// ContainsFold reports whether substr appears in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SignificantWords returns the lower-cased whitespace-separated words of s that are
// longer than minLen characters, in order of appearance.
func SignificantWords(s string, minLen int) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if utf8.RuneCountInString(w) > minLen {
			words = append(words, w)
		}
	}
	return words
}

// NormalizeSpace collapses runs of whitespace into single spaces and trims the ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// TruncateWithMarker cuts s to n runes and appends marker when anything was removed.
func TruncateWithMarker(s string, n int, marker string) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return Truncate(s, n) + marker
}

// TruncateEllipsis shortens s for table cells, ending with "..." when cut.
func TruncateEllipsis(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return Truncate(s, n)
	}
	return Truncate(s, n-3) + "..."
}

// SplitList splits a comma or semicolon separated list into trimmed, non-empty entries.
func SplitList(s string) []string {
	s = strings.ReplaceAll(s, ";", ",")
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.Trim(NormalizeSpace(part), " .:")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
