/*
Package wordex compiles command grammars into regular expressions and
extracts typed values from matching input.

Description

Textual commands, as typed into a chat or a command line, usually follow
a simple grammar: some keywords, some arguments, some optional parts.
Instead of writing a parser for every command, clients describe a command
by an expression

    give :who *items [to :place] [+reason]

and let wordex compile it into an anchored regular expression. Matching
input against the compiled pattern yields the named values:

    p := wordex.MustCompile("give :who *items [to :place]")
    m, _ := p.Match("give bob apple, pear to kitchen")
    m.Get("who")    // "bob"
    m.Get("items")  // []interface{}{"apple", "pear"}
    m.Get("place")  // "kitchen"

Expressions

An expression consists of keywords, variables and punctuation, with optional
parts enclosed in brackets (which may nest). Variables are introduced by a
sigil:

    +name           free text
    :name           a single argument
    *name           a list of arguments, separated by commas and/or blanks

Arguments may be restricted to a registered type (`:n@Integer`) or to a set
of alternatives (`:color{red,green,blue}`, case-insensitive). See package
variable for the details of the syntax and package typemap for the types.

Values

Arguments may be quoted with double or single quotes. Surrounding quotes
will be removed from captured values, and the escape sequences \", \' and
`\ ` (backslash blank) will be replaced by the escaped character. Other
backslash sequences are left untouched.

Values of typed variables are converted by their type map; the built-in
numeric types produce int64 and float64 values. A type map may reject a
value which its fragment matched. A rejected value makes the whole match
fail, just as if the input had not matched syntactically.

Nesting

Optional parts may nest up to MaxNesting levels. The regular expression
engine limits the nesting depth of patterns, and every optional part takes
two levels of it. Deeper expressions are rejected by Compile with
ErrTooDeep.

Concurrency

Compiled patterns are immutable and may be used concurrently. Type maps are
resolved at compile time; registering type maps should be done before
patterns referencing them are compiled.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package wordex

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wordex/structure"
	"github.com/npillmayer/wordex/typemap"
	"github.com/npillmayer/wordex/variable"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// Error classes, re-exported from the sub-packages for convenience.
//
// ErrUnbalanced, ErrTooDeep and ErrUnknownType are returned from Compile.
// ErrValidation is what validators use to reject values; Match will never
// return it.
var (
	ErrUnbalanced        = structure.ErrUnbalanced
	ErrUnknownType       = variable.ErrUnknownType
	ErrMissingSigil      = variable.ErrMissingSigil
	ErrEmptyAlternatives = variable.ErrEmptyAlternatives
	ErrValidation        = typemap.ErrValidation
)

// ErrTooDeep is returned by Compile for expressions with optional parts
// nested deeper than MaxNesting.
var ErrTooDeep = errors.New("optional parts nested too deeply")

// MaxNesting is the maximum nesting depth of optional parts. Together with
// the groups of variables it stays well below the nesting limit of package
// regexp.
const MaxNesting = 400
