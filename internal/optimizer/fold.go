package optimizer

import (
	"github.com/KromDaniel/regexopt/internal/ast"
	"github.com/KromDaniel/regexopt/internal/charset"
)

// foldLiterals merges the single-character branches of an alternation into
// one Literal placed where the first of them stood: a|xy|[bc] becomes
// [a-c]|xy.
func foldLiterals(n ast.Node) ast.Node {
	alt, ok := n.(*ast.Alt)
	if !ok {
		return n
	}

	first, count := -1, 0
	var set charset.Set
	for i, br := range alt.Branches {
		if lit, ok := br.(*ast.Literal); ok {
			if first < 0 {
				first = i
			}
			set = set.Union(lit.Set)
			count++
		}
	}
	if count < 2 {
		return n
	}

	out := make([]ast.Node, 0, len(alt.Branches)-count+1)
	for i, br := range alt.Branches {
		if _, ok := br.(*ast.Literal); ok {
			if i == first {
				out = append(out, ast.Lit(set))
			}
			continue
		}
		out = append(out, br)
	}
	return ast.Or(out...)
}
