package optimizer

import (
	"github.com/KromDaniel/regexopt/internal/ast"
	"github.com/KromDaniel/regexopt/internal/render"
)

type affix struct {
	items   []ast.Node
	suffix  bool
	members []int // branch indexes carrying the affix
	score   int   // characters saved
}

func (a *affix) better(o *affix) bool {
	if a.score != o.score {
		return a.score > o.score
	}
	return a.suffix && !o.suffix
}

// factorAffixes pulls common leading or trailing atoms out of alternation
// branches: abcde|xycde becomes (?:ab|xy)cde. Branches without the affix
// stay in place next to the factored group. The search repeats until no two
// branches share an affix.
func factorAffixes(n ast.Node) ast.Node {
	for {
		alt, ok := n.(*ast.Alt)
		if !ok {
			return n
		}
		best := bestAffix(alt)
		if best == nil {
			return n
		}
		n = factor(alt, best)
	}
}

func bestAffix(alt *ast.Alt) *affix {
	seqs := make([][]ast.Node, len(alt.Branches))
	for i, br := range alt.Branches {
		seqs[i] = ast.Items(br)
	}

	var best *affix
	for i := range seqs {
		for j := i + 1; j < len(seqs); j++ {
			for _, suffix := range []bool{true, false} {
				common := commonAffix(seqs[i], seqs[j], suffix)
				if len(common) == 0 {
					continue
				}
				cand := &affix{items: common, suffix: suffix}
				for k, s := range seqs {
					if hasAffix(s, common, suffix) {
						cand.members = append(cand.members, k)
					}
				}
				cand.score = render.SeqLen(common) * (len(cand.members) - 1)
				if best == nil || cand.better(best) {
					best = cand
				}
			}
		}
	}
	return best
}

func factor(alt *ast.Alt, a *affix) ast.Node {
	var residues []ast.Node
	optional := false
	for _, k := range a.members {
		rest := strip(ast.Items(alt.Branches[k]), len(a.items), a.suffix)
		if len(rest) == 0 {
			optional = true
			continue
		}
		residues = append(residues, ast.Cat(rest...))
	}

	mid := ast.Or(residues...)
	if optional {
		mid = ast.Rep(mid, 0, 1, false)
	}
	group := ast.Cat(ast.Cat(a.items...), mid)
	if a.suffix {
		group = ast.Cat(mid, ast.Cat(a.items...))
	}

	out := make([]ast.Node, 0, len(alt.Branches)-len(a.members)+1)
	m := 0
	for i, br := range alt.Branches {
		if m < len(a.members) && a.members[m] == i {
			if m == 0 {
				out = append(out, group)
			}
			m++
			continue
		}
		out = append(out, br)
	}
	return ast.Or(out...)
}

// commonAffix returns the longest common suffix (or prefix) of x and y.
func commonAffix(x, y []ast.Node, suffix bool) []ast.Node {
	n := 0
	for n < len(x) && n < len(y) && ast.Equal(at(x, n, suffix), at(y, n, suffix)) {
		n++
	}
	if suffix {
		return x[len(x)-n:]
	}
	return x[:n]
}

func hasAffix(s, affix []ast.Node, suffix bool) bool {
	if len(s) < len(affix) {
		return false
	}
	if suffix {
		return ast.EqualSeq(s[len(s)-len(affix):], affix)
	}
	return ast.EqualSeq(s[:len(affix)], affix)
}

func strip(s []ast.Node, n int, suffix bool) []ast.Node {
	if suffix {
		return s[:len(s)-n]
	}
	return s[n:]
}

// at indexes s from the end when suffix is set.
func at(s []ast.Node, i int, suffix bool) ast.Node {
	if suffix {
		return s[len(s)-1-i]
	}
	return s[i]
}
