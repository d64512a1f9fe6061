// Package storefilter builds expressions in the record store's filter
// language: =, !=, ~ (contains), >, <, && and ||, with double-quoted string
// literals. Building filters here instead of concatenating by hand keeps the
// escaping rules in one tested place.
package storefilter

import (
	"fmt"
	"strconv"
	"strings"
)

// Quote escapes backslash and double quote, then wraps in double quotes.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func literal(v any) string {
	switch x := v.(type) {
	case string:
		return Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return Quote(fmt.Sprint(x))
	}
}

func Eq(field string, v any) string       { return field + " = " + literal(v) }
func Ne(field string, v any) string       { return field + " != " + literal(v) }
func Contains(field string, v any) string { return field + " ~ " + literal(v) }
func Gt(field string, v any) string       { return field + " > " + literal(v) }
func Lt(field string, v any) string       { return field + " < " + literal(v) }

// And joins non-empty parts with &&.
func And(parts ...string) string {
	return join(parts, " && ")
}

// Or joins non-empty parts with ||, parenthesized when more than one.
func Or(parts ...string) string {
	joined := join(parts, " || ")
	if strings.Contains(joined, " || ") {
		return "(" + joined + ")"
	}
	return joined
}

func join(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
