package tuitest

import (
	"regexp"
	"strings"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from a rendered view.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// ContainsInOrder reports whether output contains every expected string,
// each one after the end of the previous match.
func ContainsInOrder(output string, expected ...string) bool {
	lastIndex := 0
	for _, exp := range expected {
		index := strings.Index(output[lastIndex:], exp)
		if index == -1 {
			return false
		}
		lastIndex += index + len(exp)
	}
	return true
}
