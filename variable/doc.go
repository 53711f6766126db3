/*
Package variable compiles the text segments of a wordex expression into
regular expression fragments.

A segment is a sequence of tokens separated by whitespace. A token is either
a variable, a keyword or punctuation:

    keyword           must appear verbatim, case-sensitive
    +name             free text, as short as possible
    :name             a single argument
    :name@Type        a single argument, restricted to a registered type map
    :name{a,b,c}      a single argument, one of a, b or c (case-insensitive)
    *name             a list of arguments, separated by commas and/or blanks
    *name@Type        a list of arguments of a type
    *name{a,b,c}      a list of arguments from a set of alternatives
    ;,!?...           anything else is punctuation and matched verbatim

Names may be followed by an annotation in angle brackets, e.g. `:n<count>@Integer`.
Annotations are kept with the capture but currently have no effect.

An argument is a run of non-blank characters without quotes, or a
single- or double-quoted string. Backslash escapes are allowed in either.

Every keyword and variable has to be preceded by whitespace in the input
(the compiler of package wordex drops this requirement for the very first
token of an expression). Punctuation may follow the preceding token directly.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package variable

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the core tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
