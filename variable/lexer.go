package variable

import (
	"strings"
)

// stateFn is a state of the lexer. It consumes input and returns the next
// state, or nil when lexing stops.
type stateFn func(*lexer) stateFn

// lexer splits a segment into tokens. Tokens are recognized by a chain of
// state functions, each one trying an optional part of a variable:
//
//     [+:*]? word <annotation>? @Type? {a,b,c}?
//
// Input which does not start a variable or keyword is punctuation and extends
// up to the next blank.
type lexer struct {
	input  string
	start  int   // start of the current token
	pos    int   // current position
	tok    Token // token under construction
	tokens []Token
	err    error
}

// Lex splits a segment into tokens.
func Lex(segment string) ([]Token, error) {
	lx := &lexer{input: segment}
	for state := lexBlank; state != nil; {
		state = state(lx)
	}
	if lx.err != nil {
		return nil, lx.err
	}
	return lx.tokens, nil
}

func (lx *lexer) atEnd() bool {
	return lx.pos >= len(lx.input)
}

func (lx *lexer) peek(offset int) byte {
	if lx.pos+offset >= len(lx.input) {
		return 0
	}
	return lx.input[lx.pos+offset]
}

// run advances the position while accept is true and reports the number of
// bytes consumed.
func (lx *lexer) run(accept func(byte) bool) int {
	n := 0
	for !lx.atEnd() && accept(lx.input[lx.pos]) {
		lx.pos++
		n++
	}
	return n
}

// fail stops lexing with an error.
func (lx *lexer) fail(err error) stateFn {
	lx.err = &Error{
		Segment: lx.input,
		Pos:     lx.start,
		Token:   lx.input[lx.start:lx.pos],
		Err:     err,
	}
	tracer().Errorf("lexer: %v", lx.err)
	return nil
}

func (lx *lexer) emit() stateFn {
	lx.tok.Pos = lx.start
	tracer().Debugf("lexer: token %s %v", lx.tok.Kind, lx.tok)
	lx.tokens = append(lx.tokens, lx.tok)
	lx.tok = Token{}
	return lexBlank
}

// --- States ----------------------------------------------------------------

func lexBlank(lx *lexer) stateFn {
	lx.run(isBlank)
	if lx.atEnd() {
		return nil
	}
	lx.start = lx.pos
	return lexSigil
}

func lexSigil(lx *lexer) stateFn {
	c := lx.peek(0)
	if isSigil(c) && isWord(lx.peek(1)) {
		switch c {
		case '+':
			lx.tok.Kind = FreeText
		case ':':
			lx.tok.Kind = Argument
		case '*':
			lx.tok.Kind = ArgumentList
		}
		lx.pos++
		return lexName
	}
	if isWord(c) {
		lx.tok.Kind = Keyword
		return lexName
	}
	return lexPunctuation
}

func lexName(lx *lexer) stateFn {
	from := lx.pos
	lx.run(isWord)
	lx.tok.Name = lx.input[from:lx.pos]
	return lexAnnotation
}

func lexAnnotation(lx *lexer) stateFn {
	if lx.peek(0) != '<' {
		return lexTypeRef
	}
	end := strings.IndexByte(lx.input[lx.pos+1:], '>')
	if end <= 0 { // no closing '>' or empty annotation
		return lexTypeRef
	}
	lx.tok.Annotation = lx.input[lx.pos+1 : lx.pos+1+end]
	lx.pos += end + 2
	return lexTypeRef
}

func lexTypeRef(lx *lexer) stateFn {
	if lx.peek(0) != '@' || !isTypeNameChar(lx.peek(1)) {
		return lexAlternatives
	}
	lx.pos++
	from := lx.pos
	lx.run(isTypeNameChar)
	lx.tok.Constraint = Constraint{Kind: TypeRef, TypeName: lx.input[from:lx.pos]}
	return lexAlternatives
}

func lexAlternatives(lx *lexer) stateFn {
	if lx.peek(0) != '{' {
		return lexVariable
	}
	n := 1
	for isAlternativesChar(lx.peek(n)) {
		n++
	}
	if n == 1 || lx.peek(n) != '}' {
		return lexVariable
	}
	list := lx.input[lx.pos+1 : lx.pos+n]
	lx.pos += n + 1
	var words []string
	for _, w := range strings.Split(list, ",") {
		if w != "" {
			words = append(words, w)
		}
	}
	lx.tok.Constraint.Kind = LiteralSet
	lx.tok.Constraint.Words = words
	return lexVariable
}

func lexVariable(lx *lexer) stateFn {
	switch lx.tok.Kind {
	case Keyword:
		if lx.tok.Constraint.Kind != Unconstrained {
			return lx.fail(ErrMissingSigil)
		}
	case Argument, ArgumentList:
		if lx.tok.Constraint.Kind == LiteralSet && len(lx.tok.Constraint.Words) == 0 {
			return lx.fail(ErrEmptyAlternatives)
		}
	case FreeText:
		lx.tok.Constraint = Constraint{}
	}
	return lx.emit()
}

func lexPunctuation(lx *lexer) stateFn {
	lx.run(isNonBlank)
	lx.tok.Kind = Punctuation
	lx.tok.Name = lx.input[lx.start:lx.pos]
	return lx.emit()
}

// --- Character classes -----------------------------------------------------

// isBlank is true for the characters of regexp class \s.
func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r'
}

func isNonBlank(c byte) bool {
	return !isBlank(c)
}

// isWord is true for the characters of regexp class \w.
func isWord(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isSigil(c byte) bool {
	return c == '+' || c == ':' || c == '*'
}

func isTypeNameChar(c byte) bool {
	return isWord(c) || c == '+' || c == '-'
}

func isAlternativesChar(c byte) bool {
	return isWord(c) || c == ','
}
