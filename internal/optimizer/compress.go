package optimizer

import (
	"github.com/KromDaniel/regexopt/internal/ast"
	"github.com/KromDaniel/regexopt/internal/render"
)

// compressBlocks rewrites a concatenation made of repeated blocks as a
// counted repeat when that renders strictly shorter: abcabcabcabc becomes
// (?:abc){4}. An exact tiling of the whole sequence is tried first, then runs
// of a repeated block anywhere in the sequence. Overlapping or nested
// repetition structure beyond that is not searched.
func compressBlocks(n ast.Node) ast.Node {
	c, ok := n.(*ast.Concat)
	if !ok {
		return n
	}
	return compressSeq(c.Items)
}

func compressSeq(items []ast.Node) ast.Node {
	if t, ok := tile(items); ok {
		return t
	}
	return ast.Cat(compressRuns(items)...)
}

// tile returns the shortest rendering of items as block{r}, trying every
// period that divides the sequence exactly.
func tile(items []ast.Node) (ast.Node, bool) {
	var best ast.Node
	bestLen := render.SeqLen(items)
	for p := 1; p <= len(items)/2; p++ {
		if len(items)%p != 0 || !periodic(items, p) {
			continue
		}
		r := len(items) / p
		cand := ast.Rep(compressSeq(items[:p]), r, r, false)
		if l := render.Len(cand); l < bestLen {
			best, bestLen = cand, l
		}
	}
	return best, best != nil
}

func periodic(items []ast.Node, p int) bool {
	for i := p; i < len(items); i++ {
		if !ast.Equal(items[i], items[i-p]) {
			return false
		}
	}
	return true
}

// compressRuns repeatedly replaces the run of a repeated block that saves
// the most characters, until no run saves any.
func compressRuns(items []ast.Node) []ast.Node {
	for {
		bestSave, start, end := 0, 0, 0
		var best ast.Node
		for i := range items {
			for p := 1; i+2*p <= len(items); p++ {
				r := 1
				for i+(r+1)*p <= len(items) && ast.EqualSeq(items[i:i+p], items[i+r*p:i+(r+1)*p]) {
					r++
				}
				if r < 2 {
					continue
				}
				rep := ast.Rep(ast.Cat(items[i:i+p]...), r, r, false)
				if save := render.SeqLen(items[i:i+r*p]) - render.Len(rep); save > bestSave {
					bestSave, start, end, best = save, i, i+r*p, rep
				}
			}
		}
		if best == nil {
			return items
		}
		out := make([]ast.Node, 0, len(items)-(end-start)+1)
		out = append(out, items[:start]...)
		out = append(out, best)
		items = append(out, items[end:]...)
	}
}
