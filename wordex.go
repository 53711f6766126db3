package wordex

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/npillmayer/wordex/fragment"
	"github.com/npillmayer/wordex/structure"
	"github.com/npillmayer/wordex/typemap"
	"github.com/npillmayer/wordex/variable"
)

// Pattern is a compiled expression. Patterns are immutable.
type Pattern struct {
	expr     string
	re       *regexp.Regexp
	captures []variable.Capture
}

// Option configures the compilation of an expression.
type Option func(cfg *config)

type config struct {
	registry *typemap.Registry
}

// WithRegistry lets type references resolve against reg instead of the
// default registry.
func WithRegistry(reg *typemap.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// Compile translates an expression into a pattern.
//
// Errors will match ErrUnbalanced for brackets without a partner,
// ErrTooDeep for optional parts nested deeper than MaxNesting, and
// ErrUnknownType for references to unregistered type maps.
func Compile(expr string, opts ...Option) (*Pattern, error) {
	cfg := &config{registry: typemap.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	tree, err := structure.Parse(expr)
	if err != nil {
		return nil, err
	}
	if depth := tree.Depth(); depth > MaxNesting {
		return nil, fmt.Errorf("%w: expression has %d levels, at most %d allowed",
			ErrTooDeep, depth, MaxNesting)
	}
	compiler := variable.NewCompiler(cfg.registry)
	var b strings.Builder
	var captures []variable.Capture
	// The first token of the input need not be preceded by whitespace.
	// Tokens following optional parts at the start may or may not be first.
	lead := variable.Leading
	var leads []variable.Lead
	b.WriteString(fragment.Start)
	err = structure.Walk(tree, func(n *structure.Node, enter bool) error {
		switch n.Kind {
		case structure.Optional:
			if enter {
				leads = append(leads, lead)
				b.WriteString(fragment.OptionalOpen)
				return nil
			}
			b.WriteString(fragment.OptionalClose)
			before := leads[len(leads)-1]
			leads = leads[:len(leads)-1]
			if before != variable.Inner && lead != before {
				lead = variable.MaybeLeading
			}
		case structure.Segment:
			if enter {
				c, next, err := compiler.Compile(n.Text, lead, &b)
				if err != nil {
					return err
				}
				captures = append(captures, c...)
				lead = next
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.WriteString(fragment.TrailingBlanks)
	b.WriteString(fragment.End)
	source := b.String()
	re, err := regexp.Compile(source)
	if err != nil {
		CT().Errorf("expression %q produced invalid pattern %s", expr, source)
		return nil, fmt.Errorf("expression %q: %w", expr, err)
	}
	CT().Debugf("compiled %q to %s with %d captures", expr, source, len(captures))
	return &Pattern{expr: expr, re: re, captures: captures}, nil
}

// MustCompile is like Compile but panics if the expression cannot be compiled.
func MustCompile(expr string, opts ...Option) *Pattern {
	p, err := Compile(expr, opts...)
	if err != nil {
		panic(fmt.Sprintf("wordex: Compile(%q): %v", expr, err))
	}
	return p
}

// Match matches input against the pattern. If input does not match, or if a
// type map rejects a captured value, Match returns nil and no error.
// Any other error from a type map is returned as is.
func (p *Pattern) Match(input string) (*Match, error) {
	loc := p.re.FindStringSubmatchIndex(input)
	if loc == nil {
		return nil, nil
	}
	m, err := newMatch(p, input, loc)
	if err != nil {
		if typemap.IsValidationFailure(err) {
			CT().Debugf("%q: %v", p.expr, err)
			return nil, nil
		}
		CT().Errorf("%q: cannot convert values of %q: %v", p.expr, input, err)
		return nil, err
	}
	return m, nil
}

// MatchString reports whether input matches the pattern, including validation
// of the captured values.
func (p *Pattern) MatchString(input string) bool {
	m, err := p.Match(input)
	return err == nil && m != nil
}

// Expression returns the source expression of the pattern.
// Patterns are a typemap.Context for validators.
func (p *Pattern) Expression() string {
	return p.expr
}

// Regexp returns the source text of the generated regular expression.
func (p *Pattern) Regexp() string {
	return p.re.String()
}

// Captures returns the capture descriptions, in order.
func (p *Pattern) Captures() []variable.Capture {
	c := make([]variable.Capture, len(p.captures))
	copy(c, p.captures)
	return c
}

// NumCaptures returns the number of values a match will hold.
func (p *Pattern) NumCaptures() int {
	return len(p.captures)
}

// Equal is true if p and other have been compiled from the same expression.
func (p *Pattern) Equal(other *Pattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.expr == other.expr
}

// Hash returns a hash of the expression, consistent with Equal.
func (p *Pattern) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(p.expr))
	return h.Sum64()
}

func (p *Pattern) String() string {
	return fmt.Sprintf("wordex(%q)", p.expr)
}

var _ typemap.Context = (*Pattern)(nil)
