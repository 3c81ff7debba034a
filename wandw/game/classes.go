package game

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Classes is the closed set of selectable classes.
var Classes = []string{"Fighter", "Rogue", "Ranger", "Cleric", "Wizard", "Bard", "Barbarian"}

// NormalizeClass titlecases the input and checks it against the class set.
func NormalizeClass(input string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	input = strings.ToUpper(input[:1]) + input[1:]
	for _, class := range Classes {
		if class == input {
			return class, true
		}
	}
	return "", false
}

// SuggestClass returns the closest class name to a misspelled input, or ""
// when nothing plausible matches.
func SuggestClass(input string) string {
	matches := fuzzy.Find(strings.TrimSpace(input), Classes)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
