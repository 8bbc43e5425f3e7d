// Package infrastructure loads raw facility rows from an external source
// into the domain's RawFacility shape, parsing JSON- and
// python-literal-encoded list columns tolerantly and coercing numerics.
package infrastructure

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var pyListItem = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)

// ParseList tolerantly parses a JSON-encoded or python-literal-encoded list
// column. Absent markers (null/None/[]/"") yield nil.
func ParseList(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" || s == "None" || s == "[]" {
		return nil
	}

	var jsonList []string
	if err := json.Unmarshal([]byte(s), &jsonList); err == nil {
		return cleanList(jsonList)
	}

	// Fall back to python-literal list syntax: ['a', "b", c]
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := s[1 : len(s)-1]
		matches := pyListItem.FindAllStringSubmatch(inner, -1)
		if len(matches) > 0 {
			var items []string
			for _, m := range matches {
				if m[1] != "" {
					items = append(items, m[1])
				} else {
					items = append(items, m[2])
				}
			}
			return cleanList(items)
		}
		// unquoted bare identifiers, comma separated
		if strings.TrimSpace(inner) != "" {
			parts := strings.Split(inner, ",")
			return cleanList(parts)
		}
		return nil
	}

	return cleanList([]string{s})
}

func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" || trimmed == "null" || trimmed == "None" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// ParseInt coerces a numeric string; coercion failure yields (0, false).
func ParseInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" || s == "None" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// ParseFloat coerces a numeric string; coercion failure yields (0, false).
func ParseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" || s == "None" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CamelToReadable turns a camelCase lexeme into a readable label, e.g.
// "cardiacSurgery" -> "Cardiac Surgery".
func CamelToReadable(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && isLower(runes[i-1]) && isUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	spaced := b.String()
	spaced = strings.ReplaceAll(spaced, "And", "and")
	return titleCase(strings.ToLower(spaced))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
