package main

import (
	"go/token"
	"strconv"
	"unicode"
)

// toTitle capitalizes the first letter of a string (replaces deprecated strings.Title)
func toTitle(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func isExportedName(s string) bool {
	return token.IsIdentifier(s) && token.IsExported(s)
}

// uniqueName returns base, or base followed by the smallest counter from 2
// that is not in used, and records the result in used.
func uniqueName(base string, used map[string]bool) string {
	name := base
	for n := 2; used[name]; n++ {
		name = base + strconv.Itoa(n)
	}
	used[name] = true
	return name
}
