// Package shellquote formats command lines that can be pasted into a POSIX shell.
package shellquote

import "strings"

// special lists the bytes that make a shell word need quoting.
const special = " \t\n\\'\"`$&|;<>()[]{}*?!#~"

// Quote wraps s in single quotes. Embedded single quotes close the quoted
// run, emit an escaped quote, then reopen it.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded returns s unchanged when the shell would read it as a single
// literal word, and Quote(s) otherwise.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, special) {
		return Quote(s)
	}
	return s
}

// Join quotes each word as needed and joins them with spaces.
func Join(words ...string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = QuoteIfNeeded(w)
	}
	return strings.Join(quoted, " ")
}
