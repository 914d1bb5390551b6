package common

import (
	"strings"
	"unicode"
)

// SplitByPredicate splits input at every rune for which predicate returns true.
// Unless excludeDelimiter is set, the delimiter rune opens the next word.
func SplitByPredicate(input string, predicate func(r rune) bool, excludeDelimiter bool) []string {
	var result []string
	var current strings.Builder

	for _, r := range input {
		if !predicate(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			result = append(result, current.String())
			current.Reset()
		}
		if !excludeDelimiter {
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}

	return result
}

// SplitCamel splits a camelCase identifier into its words.
func SplitCamel(s string) []string {
	return SplitByPredicate(s, unicode.IsUpper, false)
}

// HumanizeKey turns a field key such as "percentDnaShared" into "percent Dna Shared".
func HumanizeKey(key string) string {
	return strings.Join(SplitCamel(key), " ")
}

var domIDReplacer = strings.NewReplacer(
	" ", "-",
	"(", "lBracket",
	")", "rBracket",
	"<", "lArrow",
	">", "rArrow",
	".", "dot",
)

// ToDOMID rewrites a node identifier into a string usable as an element id.
func ToDOMID(id string) string {
	return domIDReplacer.Replace(id)
}
