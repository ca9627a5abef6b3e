// Package render serializes an ast.Node back to regex text.
//
// The output only uses syntax understood by both Perl and Go's regexp
// package, and always parses back to an equivalent tree.
package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KromDaniel/regexopt/internal/ast"
)

// Render returns the regex text for n.
func Render(n ast.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// Len returns the length of Render(n) in characters.
func Len(n ast.Node) int {
	return utf8.RuneCountInString(Render(n))
}

// SeqLen returns the rendered length of items written one after another, as
// they would appear inside a concatenation.
func SeqLen(items []ast.Node) int {
	var b strings.Builder
	writeNode(&b, &ast.Concat{Items: items})
	return utf8.RuneCountInString(b.String())
}

func writeNode(b *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Literal:
		b.WriteString(Set(n.Set))
	case *ast.Concat:
		for _, it := range n.Items {
			if _, ok := it.(*ast.Alt); ok {
				writeGroup(b, it)
				continue
			}
			writeNode(b, it)
		}
	case *ast.Alt:
		for i, br := range n.Branches {
			if i > 0 {
				b.WriteByte('|')
			}
			writeNode(b, br)
		}
	case *ast.Repeat:
		writeRepeat(b, n)
	case *ast.Empty:
	}
}

func writeGroup(b *strings.Builder, n ast.Node) {
	b.WriteString("(?:")
	writeNode(b, n)
	b.WriteByte(')')
}

func writeRepeat(b *strings.Builder, r *ast.Repeat) {
	var atom string
	if lit, ok := r.Child.(*ast.Literal); ok {
		atom = Set(lit.Set)
	} else {
		var g strings.Builder
		writeGroup(&g, r.Child)
		atom = g.String()
	}

	q := quantifier(r.Min, r.Max)
	if r.Min == r.Max {
		// "xx" is shorter than "x{2}".
		if _, ok := r.Child.(*ast.Literal); ok && len(atom)*r.Min < len(atom)+len(q) {
			for i := 0; i < r.Min; i++ {
				b.WriteString(atom)
			}
			return
		}
	}
	b.WriteString(atom)
	b.WriteString(q)
	if r.Lazy && r.Min != r.Max {
		b.WriteByte('?')
	}
}

func quantifier(min, max int) string {
	switch {
	case min == 0 && max == ast.Unbounded:
		return "*"
	case min == 1 && max == ast.Unbounded:
		return "+"
	case min == 0 && max == 1:
		return "?"
	case max == ast.Unbounded:
		return "{" + strconv.Itoa(min) + ",}"
	case min == max:
		return "{" + strconv.Itoa(min) + "}"
	}
	return "{" + strconv.Itoa(min) + "," + strconv.Itoa(max) + "}"
}
