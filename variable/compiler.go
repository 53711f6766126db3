package variable

import (
	"regexp"
	"strings"

	"github.com/npillmayer/wordex/fragment"
	"github.com/npillmayer/wordex/typemap"
)

// Capture describes a value slot which a successful match will fill.
// Captures are ordered in the same way as the capturing groups of the
// generated pattern.
type Capture struct {
	Name       string
	Kind       Kind
	Element    *regexp.Regexp   // list captures only: matches a single element
	TypeMap    *typemap.TypeMap // may be nil
	Annotation string
}

// IsList is true for captures holding a list of values.
func (c Capture) IsList() bool {
	return c.Element != nil
}

func (c Capture) String() string {
	s := c.Kind.String() + "(" + c.Name
	if c.TypeMap != nil {
		s += "@" + c.TypeMap.Name
	}
	return s + ")"
}

// Lead tells the compiler what may precede the first token of a segment.
type Lead int8

// Leads of a segment
const (
	Inner        Lead = iota // other tokens precede the segment
	Leading                  // the segment starts the input
	MaybeLeading             // the segment starts the input if optional parts before it are missing
)

func (l Lead) separator() string {
	switch l {
	case Leading:
		return ""
	case MaybeLeading:
		return fragment.StartOrSeparator
	}
	return fragment.Separator
}

// Compiler translates segments into pattern fragments. Type references are
// resolved against Registry.
type Compiler struct {
	Registry *typemap.Registry
}

// NewCompiler creates a compiler for a type map registry. If reg is nil,
// the default registry is used.
func NewCompiler(reg *typemap.Registry) *Compiler {
	if reg == nil {
		reg = typemap.Default()
	}
	return &Compiler{Registry: reg}
}

// Compile lexes a segment, appends the resulting pattern fragment to out and
// returns the captures found, in order. lead controls the separator in front
// of the first token; all other tokens need whitespace in front of them
// (except punctuation). Compile returns Inner as the lead for whatever
// follows, unless the segment is empty.
func (c *Compiler) Compile(segment string, lead Lead, out *strings.Builder) ([]Capture, Lead, error) {
	tokens, err := Lex(segment)
	if err != nil {
		return nil, lead, err
	}
	var captures []Capture
	for _, tok := range tokens {
		capture, err := c.compileToken(segment, tok, lead.separator(), out)
		if err != nil {
			return nil, lead, err
		}
		if tok.Kind.IsCapture() {
			captures = append(captures, capture)
		}
		lead = Inner
	}
	return captures, lead, nil
}

func (c *Compiler) compileToken(segment string, tok Token, sep string, out *strings.Builder) (Capture, error) {
	capture := Capture{Name: tok.Name, Kind: tok.Kind, Annotation: tok.Annotation}
	switch tok.Kind {
	case Keyword:
		out.WriteString(sep)
		out.WriteString(regexp.QuoteMeta(tok.Name))
		return capture, nil
	case Punctuation:
		out.WriteString(regexp.QuoteMeta(tok.Name))
		return capture, nil
	case FreeText:
		out.WriteString(sep)
		out.WriteString(fragment.Group(fragment.FreeText))
		return capture, nil
	}
	// Argument or ArgumentList
	single := fragment.Argument
	if tok.Kind == ArgumentList {
		single = fragment.ListArgument
	}
	if name := tok.Constraint.TypeName; name != "" {
		tm, ok := c.Registry.Lookup(name)
		if !ok {
			tracer().Errorf("unknown type '%s' in %q", name, segment)
			return capture, &Error{Segment: segment, Pos: tok.Pos, Token: name, Err: ErrUnknownType}
		}
		capture.TypeMap = tm
		single = tm.Fragment
	}
	if tok.Constraint.Kind == LiteralSet {
		single = fragment.OneOf(tok.Constraint.Words)
	}
	out.WriteString(sep)
	if tok.Kind == Argument {
		out.WriteString(fragment.Group(single))
		return capture, nil
	}
	out.WriteString(fragment.Group(fragment.OneOrMoreOf(single)))
	elem, err := regexp.Compile(single)
	if err != nil {
		return capture, err
	}
	elem.Longest()
	capture.Element = elem
	return capture, nil
}
