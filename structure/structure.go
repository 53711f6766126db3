/*
Package structure splits a wordex expression into its optional parts.

Optional parts of an expression are enclosed in square brackets and may be
nested to any depth:

    go [to :place [quickly]]

Parse produces a tree of nodes. The root is a Sequence, brackets become
Optional nodes, and the text runs in between become Segment nodes.
Whitespace around segments is insignificant and will be trimmed.

The parser does not recurse; it keeps an explicit stack of open groups,
thus pathological nesting will not exhaust the Go stack.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package structure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the core tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// NodeKind is the type of a node of a structure tree.
type NodeKind int8

// Kinds of nodes
const (
	Sequence NodeKind = iota // root of a tree
	Optional                 // a [...] group
	Segment                  // a run of text
)

func (k NodeKind) String() string {
	switch k {
	case Sequence:
		return "Sequence"
	case Optional:
		return "Optional"
	case Segment:
		return "Segment"
	}
	return fmt.Sprintf("NodeKind(%d)", int8(k))
}

// Node is a node of a structure tree. Segment nodes carry Text and have no
// children; the other kinds carry children in textual order.
type Node struct {
	Kind     NodeKind
	Text     string
	Children []*Node
}

func (n *Node) appendSegment(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	n.Children = append(n.Children, &Node{Kind: Segment, Text: text})
}

// String returns the node in expression syntax, with normalized whitespace.
func (n *Node) String() string {
	var b strings.Builder
	space := false
	_ = Walk(n, func(node *Node, enter bool) error {
		switch node.Kind {
		case Optional:
			if enter {
				if space {
					b.WriteByte(' ')
				}
				b.WriteByte('[')
				space = false
			} else {
				b.WriteByte(']')
				space = true
			}
		case Segment:
			if enter {
				if space {
					b.WriteByte(' ')
				}
				b.WriteString(node.Text)
				space = true
			}
		}
		return nil
	})
	return b.String()
}

// Walk traverses the tree below root depth-first, left to right. visit is
// called with enter == true when a node is reached, and with enter == false
// after all its children have been visited (segments included).
// Walk stops at the first error returned by visit.
func Walk(root *Node, visit func(n *Node, enter bool) error) error {
	type cursor struct {
		node *Node
		next int // next child to visit
	}
	if err := visit(root, true); err != nil {
		return err
	}
	stack := arraystack.New()
	stack.Push(&cursor{node: root})
	for !stack.Empty() {
		top, _ := stack.Peek()
		c := top.(*cursor)
		if c.next == len(c.node.Children) {
			stack.Pop()
			if err := visit(c.node, false); err != nil {
				return err
			}
			continue
		}
		child := c.node.Children[c.next]
		c.next++
		if err := visit(child, true); err != nil {
			return err
		}
		stack.Push(&cursor{node: child})
	}
	return nil
}

// ErrUnbalanced is the error class for expressions with unbalanced brackets.
var ErrUnbalanced = errors.New("unbalanced brackets")

// Error reports a bracket without a partner.
type Error struct {
	Expression string
	Pos        int  // byte offset of the offending bracket
	Bracket    byte // '[' or ']'
}

func (e *Error) Error() string {
	if e.Bracket == ']' {
		return fmt.Sprintf("invalid expression, orphan ']' at position %d: %q", e.Pos, e.Expression)
	}
	return fmt.Sprintf("invalid expression, orphan '[' at position %d: %q", e.Pos, e.Expression)
}

// Is lets Error match ErrUnbalanced.
func (e *Error) Is(target error) bool {
	return target == ErrUnbalanced
}

// frame is an open group on the parser stack.
type frame struct {
	node *Node
	pos  int // position of the opening bracket, -1 for the root
}

// Parse structures an expression into a tree of optional groups and text
// segments. It fails with an *Error if brackets are unbalanced.
func Parse(expr string) (*Node, error) {
	root := &Node{Kind: Sequence}
	stack := arraystack.New()
	stack.Push(frame{node: root, pos: -1})
	curr := root
	offset := 0 // start of pending text
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '[':
			curr.appendSegment(expr[offset:i])
			group := &Node{Kind: Optional}
			curr.Children = append(curr.Children, group)
			stack.Push(frame{node: group, pos: i})
			curr = group
			offset = i + 1
		case ']':
			if stack.Size() == 1 {
				tracer().Errorf("orphan ']' in expression %q", expr)
				return nil, &Error{Expression: expr, Pos: i, Bracket: ']'}
			}
			curr.appendSegment(expr[offset:i])
			stack.Pop()
			top, _ := stack.Peek()
			curr = top.(frame).node
			offset = i + 1
		}
	}
	if stack.Size() > 1 {
		top, _ := stack.Peek()
		tracer().Errorf("orphan '[' in expression %q", expr)
		return nil, &Error{Expression: expr, Pos: top.(frame).pos, Bracket: '['}
	}
	root.appendSegment(expr[offset:])
	tracer().Debugf("structure of %q = %s", expr, root)
	return root, nil
}

// Depth returns the maximum nesting depth of optional groups below n.
func (n *Node) Depth() int {
	depth, max := 0, 0
	_ = Walk(n, func(node *Node, enter bool) error {
		if node.Kind != Optional {
			return nil
		}
		if enter {
			depth++
			if depth > max {
				max = depth
			}
		} else {
			depth--
		}
		return nil
	})
	return max
}
