// Package ast defines the expression tree shared by the parser, the optimizer
// passes and the renderer.
//
// Trees are built through Cat, Or and Rep, which keep every node in canonical
// form: a Concat never holds another Concat, an Empty or fewer than two items;
// an Alt never holds another Alt, duplicate branches or fewer than two
// branches; a Repeat never wraps an Empty and never has max 0 or {1,1}.
// Nodes are never mutated after construction.
package ast

import (
	"github.com/KromDaniel/regexopt/internal/charset"
)

// Unbounded marks a Repeat without an upper bound.
const Unbounded = -1

// MaxCount is the largest finite repetition bound a tree may carry.
const MaxCount = 65535

// Node is one of *Literal, *Concat, *Alt, *Repeat or *Empty.
type Node interface {
	node()
}

// Literal matches one character drawn from Set.
type Literal struct {
	Set charset.Set
}

// Concat matches its items in order.
type Concat struct {
	Items []Node
}

// Alt matches any of its branches, tried in order.
type Alt struct {
	Branches []Node
}

// Repeat matches Child between Min and Max times. Max is Unbounded or >= Min.
// Lazy is always false when Min == Max.
type Repeat struct {
	Child    Node
	Min, Max int
	Lazy     bool
}

// Empty matches the empty string.
type Empty struct{}

func (*Literal) node() {}
func (*Concat) node()  {}
func (*Alt) node()     {}
func (*Repeat) node()  {}
func (*Empty) node()   {}

var empty = &Empty{}

// Eps returns the Empty node.
func Eps() Node {
	return empty
}

// Lit returns a Literal for s.
func Lit(s charset.Set) Node {
	return &Literal{Set: s}
}

// Char returns a Literal matching c.
func Char(c rune) Node {
	return &Literal{Set: charset.Char(c)}
}

// Str returns the concatenation of the characters of s.
func Str(s string) Node {
	var items []Node
	for _, c := range s {
		items = append(items, Char(c))
	}
	return Cat(items...)
}

// Cat concatenates items, splicing nested concatenations and dropping Empty.
func Cat(items ...Node) Node {
	out := make([]Node, 0, len(items))
	for _, it := range items {
		switch n := it.(type) {
		case *Concat:
			out = append(out, n.Items...)
		case *Empty, nil:
		default:
			out = append(out, n)
		}
	}
	switch len(out) {
	case 0:
		return empty
	case 1:
		return out[0]
	}
	return &Concat{Items: out}
}

// Or builds an alternation, splicing nested alternations and dropping
// duplicate branches (the first occurrence wins).
func Or(branches ...Node) Node {
	out := make([]Node, 0, len(branches))
	var add func(Node)
	add = func(n Node) {
		if alt, ok := n.(*Alt); ok {
			for _, b := range alt.Branches {
				add(b)
			}
			return
		}
		if n == nil {
			n = empty
		}
		for _, seen := range out {
			if Equal(seen, n) {
				return
			}
		}
		out = append(out, n)
	}
	for _, b := range branches {
		add(b)
	}
	switch len(out) {
	case 0:
		return empty
	case 1:
		return out[0]
	}
	return &Alt{Branches: out}
}

// Rep repeats child min..max times (max may be Unbounded).
func Rep(child Node, min, max int, lazy bool) Node {
	if _, ok := child.(*Empty); ok || max == 0 {
		return empty
	}
	if min == max {
		lazy = false
		if min == 1 {
			return child
		}
	}
	return &Repeat{Child: child, Min: min, Max: max, Lazy: lazy}
}

// Items returns the sequence view of n: the items of a Concat, nothing for
// Empty, and n itself otherwise.
func Items(n Node) []Node {
	switch n := n.(type) {
	case *Concat:
		return n.Items
	case *Empty:
		return nil
	}
	return []Node{n}
}

// Base returns the repeated atom of n and its multiplicity. Non-repeat nodes
// count once.
func Base(n Node) (child Node, min, max int, lazy bool) {
	if r, ok := n.(*Repeat); ok {
		return r.Child, r.Min, r.Max, r.Lazy
	}
	return n, 1, 1, false
}

// AddCounts sums two repeat bounds, propagating Unbounded.
func AddCounts(a, b int) int {
	if a == Unbounded || b == Unbounded {
		return Unbounded
	}
	return a + b
}

// MulCounts multiplies two repeat bounds, propagating Unbounded. A zero factor
// wins over Unbounded.
func MulCounts(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a == Unbounded || b == Unbounded {
		return Unbounded
	}
	return a * b
}

// Equal reports structural equality.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.Set.Equal(b.Set)
	case *Concat:
		b, ok := b.(*Concat)
		return ok && equalList(a.Items, b.Items)
	case *Alt:
		b, ok := b.(*Alt)
		return ok && equalList(a.Branches, b.Branches)
	case *Repeat:
		b, ok := b.(*Repeat)
		return ok && a.Min == b.Min && a.Max == b.Max && a.Lazy == b.Lazy && Equal(a.Child, b.Child)
	case *Empty:
		_, ok := b.(*Empty)
		return ok
	}
	return false
}

// EqualSeq reports element-wise structural equality of two sequences.
func EqualSeq(a, b []Node) bool {
	return equalList(a, b)
}

func equalList(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
