package variable

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the kind of a token.
type Kind int8

// Kinds of tokens
const (
	Keyword      Kind = iota // literal word
	Punctuation              // literal non-word text
	FreeText                 // +name
	Argument                 // :name
	ArgumentList             // *name
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "Keyword"
	case Punctuation:
		return "Punctuation"
	case FreeText:
		return "FreeText"
	case Argument:
		return "Argument"
	case ArgumentList:
		return "ArgumentList"
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// IsCapture is true for tokens which will produce a capture.
func (k Kind) IsCapture() bool {
	return k >= FreeText
}

// ConstraintKind tells how the values of a variable are restricted.
type ConstraintKind int8

// Kinds of constraints
const (
	Unconstrained ConstraintKind = iota
	TypeRef                      // @Type
	LiteralSet                   // {a,b,c}
)

// Constraint restricts the values of an argument variable.
//
// A variable may carry both a type reference and a set of alternatives. The
// alternatives then decide what matches, and the type map converts the value.
type Constraint struct {
	Kind     ConstraintKind
	TypeName string   // set for TypeRef, may be set for LiteralSet
	Words    []string // for LiteralSet
}

func (c Constraint) String() string {
	var s string
	if c.TypeName != "" {
		s = "@" + c.TypeName
	}
	if c.Kind == LiteralSet {
		s += "{" + strings.Join(c.Words, ",") + "}"
	}
	return s
}

// Token is a unit of a segment.
type Token struct {
	Kind       Kind
	Name       string // variable name, keyword or punctuation text
	Annotation string // <...>, reserved
	Constraint Constraint
	Pos        int // byte offset within the segment
}

func (t Token) String() string {
	var sigil string
	switch t.Kind {
	case FreeText:
		sigil = "+"
	case Argument:
		sigil = ":"
	case ArgumentList:
		sigil = "*"
	}
	s := sigil + t.Name
	if t.Annotation != "" {
		s += "<" + t.Annotation + ">"
	}
	return s + t.Constraint.String()
}

// ErrUnknownType is the error class for references to unregistered type maps.
// ErrMissingSigil flags a constraint on a keyword, which usually means a
// forgotten ':', '*' or '+'.
// ErrEmptyAlternatives flags a set of alternatives without any words.
var (
	ErrUnknownType       = errors.New("unknown type")
	ErrMissingSigil      = errors.New("constraint without variable; forgot ':', '*' or '+' prefix?")
	ErrEmptyAlternatives = errors.New("empty set of alternatives")
)

// Error is the error type for invalid segments. It wraps one of the error
// classes of this package.
type Error struct {
	Segment string
	Pos     int
	Token   string
	Err     error
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrUnknownType) {
		return fmt.Sprintf("%v '%s' in %q", e.Err, e.Token, e.Segment)
	}
	return fmt.Sprintf("%v: '%s' at position %d in %q", e.Err, e.Token, e.Pos, e.Segment)
}

func (e *Error) Unwrap() error {
	return e.Err
}
