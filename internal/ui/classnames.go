package ui

import "strings"

// CN merges class tokens into a single class attribute value.
// Strings (including pre-joined class lists) and []string are kept in order;
// false, nil, empty strings and any other value contribute nothing.
// It does not deduplicate or resolve conflicting utility classes.
func CN(tokens ...any) string {
	var classes []string

	for _, token := range tokens {
		switch t := token.(type) {
		case string:
			classes = append(classes, strings.Fields(t)...)
		case []string:
			for _, s := range t {
				classes = append(classes, strings.Fields(s)...)
			}
		}
	}
	return strings.Join(classes, " ")
}

// If returns class when cond holds and an empty token otherwise.
func If(cond bool, class string) string {
	if cond {
		return class
	}
	return ""
}
