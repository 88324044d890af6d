package importers

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	lowerWords = map[string]bool{
		"of": true, "the": true, "a": true, "in": true, "to": true,
		"items": true, "category": true, "journeys": true,
	}
	romanNumeral = regexp.MustCompile(`^(x{0,3})(ix|iv|v?i{0,3})$`)
)

// FormatItemName normalizes a sheet name to the casing used by item files:
// "*MONSTER FIZZ ORIGINAL*" becomes "Monster Fizz Original".
func FormatItemName(raw string) string {
	s := strings.ToLower(strings.Trim(strings.TrimSpace(raw), "*"))
	parts := strings.Split(s, " ")
	for i, p := range parts {
		switch {
		case p == "":
		case romanNumeral.MatchString(p):
			parts[i] = strings.ToUpper(p)
		case i > 0 && lowerWords[p]:
		default:
			r, n := utf8.DecodeRuneInString(p)
			parts[i] = string(unicode.ToUpper(r)) + p[n:]
		}
	}
	return strings.Join(parts, " ")
}

func skipName(name string) bool {
	return name == "" || strings.Contains(name, "?")
}
