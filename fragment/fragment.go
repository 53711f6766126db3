/*
Package fragment holds the building blocks of the regular expressions
generated by package wordex.

Fragments are plain strings in Go regexp (RE2) syntax. None of them
introduces a capturing group, as they will be embedded into a larger
pattern where group numbering is owned by the compiler.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fragment

import (
	"regexp"
	"strings"
)

// Argument matches a single argument: either a run of non-blank, non-quote
// characters (backslash escapes allowed), or a double- or single-quoted string.
const Argument = `(?:(?:\\.|[^\\"'\s])+|"(?:\\.|[^\\"])*"|'(?:\\.|[^\\'])*')`

// ListArgument is Argument for elements of an argument list. Bare elements
// may not contain commas, as commas separate list elements.
const ListArgument = `(?:(?:\\.|[^\\"'\s,])+|"(?:\\.|[^\\"])*"|'(?:\\.|[^\\'])*')`

// FreeText matches an arbitrary string, as short as possible.
const FreeText = `(?:.*?)`

// Separator is the mandatory whitespace in front of words and captures.
const Separator = `\s+`

// StartOrSeparator is the separator in front of a token which may or may
// not be the first one of the input.
const StartOrSeparator = `(?:^|\s+)`

// ListSeparator separates the elements of an argument list.
const ListSeparator = `(?:,\s*|\s+)`

// OneOrMoreOf returns a fragment matching a list of at least one single,
// separated by commas and/or whitespace.
func OneOrMoreOf(single string) string {
	return "(?:" + single + "(?:" + ListSeparator + single + ")*?)"
}

// OneOf returns a fragment matching any of items, case-insensitive.
// Items are matched literally.
func OneOf(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = regexp.QuoteMeta(item)
	}
	return "(?i:" + strings.Join(quoted, "|") + ")"
}

// QuotedVariants returns a fragment accepting pattern either bare or enclosed
// in double or single quotes.
func QuotedVariants(pattern string) string {
	return `(?:` + pattern + `|"` + pattern + `"|'` + pattern + `')`
}

// Group wraps pattern into a capturing group.
func Group(pattern string) string {
	return "(" + pattern + ")"
}

// OptionalOpen and OptionalClose enclose a non-capturing group which is
// lazily optional, i.e. the regexp engine prefers skipping it.
const (
	OptionalOpen  = "(?:"
	OptionalClose = ")??"
)

// TrailingBlanks and the anchors frame a generated pattern.
const (
	Start          = "^"
	TrailingBlanks = `\s*`
	End            = "$"
)
