package templates

import (
	"strconv"
	"strings"
	"text/template"
)

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"join":     func(items []string, sep string) string { return strings.Join(items, sep) },
		"quote":    strconv.Quote,
		"quoteAll": QuoteAll,
	}
}

// QuoteAll quotes every item as a Go string literal.
func QuoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strconv.Quote(s)
	}
	return out
}
