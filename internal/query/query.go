// Package query builds Twitter API v2 search query strings from
// configured keyword lists.
package query

import (
	"strings"
	"unicode"
)

// Logic selects how keywords are combined in the final query.
type Logic string

const (
	LogicAND Logic = "AND"
	LogicOR  Logic = "OR"
)

// specialChars force a keyword to be wrapped in double quotes so the
// provider matches it as an exact phrase.
const specialChars = `#@$:()[]{}"'`

// ParseLogic maps a configured logic value to a Logic. An empty or
// unrecognized value maps to OR; ok is false only for unrecognized
// values so the caller can log a warning.
func ParseLogic(s string) (Logic, bool) {
	switch Logic(strings.ToUpper(strings.TrimSpace(s))) {
	case LogicAND:
		return LogicAND, true
	case LogicOR, Logic(""):
		return LogicOR, true
	default:
		return LogicOR, false
	}
}

// Build formats keywords into a recent-search query. Keywords
// containing whitespace or special characters are quoted. AND joins
// with a single space (the provider's implicit AND), OR joins with a
// literal " OR ". An empty keyword list yields an empty query.
func Build(keywords []string, logic Logic) string {
	if len(keywords) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if needsQuoting(k) {
			formatted = append(formatted, `"`+k+`"`)
		} else {
			formatted = append(formatted, k)
		}
	}

	if logic == LogicAND {
		return strings.Join(formatted, " ")
	}
	return strings.Join(formatted, " OR ")
}

func needsQuoting(keyword string) bool {
	if strings.ContainsAny(keyword, specialChars) {
		return true
	}
	return strings.ContainsFunc(keyword, unicode.IsSpace)
}
