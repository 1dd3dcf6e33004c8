package domain

import (
	"path/filepath"
	"strings"
)

const maxKeywords = 20

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '-', '_', '.', ',', ';', ':', '!', '?', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ExtractKeywords derives search keywords from a filename: the extension is
// dropped, the rest is lower-cased and split on separators, tokens of length
// <= 2 or purely numeric are discarded, and the result is de-duplicated and
// capped at 20 entries.
func ExtractKeywords(filename string) []string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	tokens := strings.FieldsFunc(strings.ToLower(base), isSeparator)

	seen := make(map[string]struct{}, len(tokens))
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) <= 2 || isNumeric(tok) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
