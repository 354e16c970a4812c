// Package naming converts operation ids and paths into identifiers and file
// names for the emitted test sources.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// title upper-cases the first letter of w and leaves the rest untouched.
// Casers carry state, so each call gets its own.
func title(w string) string {
	return cases.Title(language.English, cases.NoLower).String(w)
}

// Words splits s at separators and case boundaries.
// Example: "getUserByID" -> ["get", "User", "By", "ID"]
func Words(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ToSnakeCase converts s to snake_case.
// Example: "getUserById" -> "get_user_by_id", "list-items v2" -> "list_items_v2"
func ToSnakeCase(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// ToCamelCase converts s to camelCase.
// Example: "get_user_by_id" -> "getUserById"
func ToCamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(title(w))
	}
	return b.String()
}

// SanitizePathForFilename flattens a URL path template into a file name stem.
// Example: "/users/{id}/posts" -> "users_id_posts"
func SanitizePathForFilename(path string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "{", "", "}", "", ":", "")
	return strings.Trim(r.Replace(path), "_")
}

// Registry hands out names that are unique within one scope, such as the
// functions of one generated file. A name already taken gets the first free
// numeric suffix, starting at _2. A nil Registry returns names unchanged.
type Registry struct {
	used map[string]bool
}

func (r *Registry) Claim(name string) string {
	if r == nil {
		return name
	}
	if r.used == nil {
		r.used = map[string]bool{}
	}
	candidate := name
	for n := 2; r.used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", name, n)
	}
	r.used[candidate] = true
	return candidate
}
