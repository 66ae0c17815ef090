package errors

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// ClauseLabels lists the header suffixes the grammar recognizes after ':'.
var ClauseLabels = []string{
	":NEEDS[", ":HAS[", ":FOR[", ":BEFORE[", ":AFTER[", ":LAST[", ":FIRST", ":FINAL",
}

// SuggestClause suggests the intended clause label when text (starting at
// ':') looks like a misspelled one. It returns "" when nothing is close.
func SuggestClause(text string) string {
	word := clauseWord(text)
	if word == "" {
		return ""
	}

	bestMatch := ""
	minDistance := 3
	for _, label := range ClauseLabels {
		name := strings.Trim(label, ":[")
		dist := levenshtein.Distance(strings.ToUpper(word), name, nil)
		if dist < minDistance {
			minDistance = dist
			bestMatch = label
		}
	}

	if bestMatch == "" {
		return ""
	}
	if strings.EqualFold(strings.Trim(bestMatch, ":["), word) {
		if strings.HasSuffix(bestMatch, "[") {
			return fmt.Sprintf("'%s' takes a bracketed argument, e.g. '%sName]'", strings.TrimSuffix(bestMatch, "["), bestMatch)
		}
		return ""
	}
	return fmt.Sprintf("Did you mean '%s'?", bestMatch)
}

// SuggestClosing suggests the delimiter the parser was waiting for.
func SuggestClosing(expected []string) string {
	for _, want := range expected {
		switch want {
		case `"]"`:
			return "Close the bracket with ']'"
		case `"}"`:
			return "Close the node body with '}'"
		case `"{"`:
			return "Open the node body with '{' or add an assignment operator such as '='"
		}
	}
	return ""
}

// clauseWord returns the letters following a leading ':' in text.
func clauseWord(text string) string {
	if !strings.HasPrefix(text, ":") {
		return ""
	}
	end := 1
	for end < len(text) && end < 16 && unicode.IsLetter(rune(text[end])) {
		end++
	}
	return text[1:end]
}
