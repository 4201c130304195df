package core

import (
	"net/url"
	"regexp"
)

// placeholderPattern matches {{name}}. The lazy group keeps a name from
// spanning a closing "}}".
var placeholderPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Substitute replaces every {{name}} token whose name is in values. Tokens
// with no value are left as they are. The text is scanned once, so a value
// that itself looks like a token is emitted verbatim.
func Substitute(text string, values map[string]string) string {
	if len(values) == 0 {
		return text
	}

	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := token[2 : len(token)-2]
		if v, ok := values[name]; ok {
			return v
		}
		return token
	})
}

// ExtractPlaceholders returns the distinct placeholder names in text, in the
// order they first appear.
func ExtractPlaceholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))

	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}

// ValuesFromQuery flattens query parameters into a substitution set. The
// first value of a repeated key wins.
func ValuesFromQuery(q url.Values) map[string]string {
	values := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			values[k] = vs[0]
		}
	}
	return values
}
