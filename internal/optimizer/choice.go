package optimizer

import (
	"sort"

	"github.com/KromDaniel/regexopt/internal/ast"
)

// choice is one alternation branch seen as base{lo,hi}.
type choice struct {
	index  int
	lo, hi int
}

type choiceGroup struct {
	base    ast.Node
	lazy    bool
	choices []choice
}

// countChoices merges alternation branches that repeat the same atom over
// touching count intervals: x{4}|x{3}|x{2}|x becomes x{1,4}, a+|a{2,} becomes
// a+ and b| becomes b?. Counts that leave a gap are never merged, and an
// empty branch is only absorbed by a run that starts at 0 or 1.
func countChoices(n ast.Node) ast.Node {
	alt, ok := n.(*ast.Alt)
	if !ok {
		return n
	}

	emptyAt := -1
	var groups []*choiceGroup
	for i, br := range alt.Branches {
		if _, ok := br.(*ast.Empty); ok {
			emptyAt = i
			continue
		}
		base, lo, hi, lazy := ast.Base(br)
		if lo == hi {
			lazy = false
		}
		g := findGroup(groups, base, lazy)
		if g == nil {
			g = &choiceGroup{base: base, lazy: lazy}
			groups = append(groups, g)
		}
		g.choices = append(g.choices, choice{index: i, lo: lo, hi: hi})
	}
	// Greedy runs get the first chance at the empty branch.
	sort.SliceStable(groups, func(i, j int) bool {
		return !groups[i].lazy && groups[j].lazy
	})

	replaced := make(map[int]ast.Node)
	dropped := make(map[int]bool)
	for _, g := range groups {
		for _, run := range g.runs() {
			indexes := make([]int, 0, len(run)+1)
			for _, c := range run {
				indexes = append(indexes, c.index)
			}
			lo, hi := run[0].lo, runMax(run)
			if emptyAt >= 0 && lo <= 1 {
				indexes = append(indexes, emptyAt)
				lo = 0
				emptyAt = -1
			}
			if len(indexes) < 2 {
				continue
			}
			sort.Ints(indexes)
			replaced[indexes[0]] = ast.Rep(g.base, lo, hi, g.lazy)
			for _, i := range indexes[1:] {
				dropped[i] = true
			}
		}
	}
	if len(replaced) == 0 {
		return n
	}

	out := make([]ast.Node, 0, len(alt.Branches))
	for i, br := range alt.Branches {
		switch {
		case dropped[i]:
		case replaced[i] != nil:
			out = append(out, replaced[i])
		default:
			out = append(out, br)
		}
	}
	return ast.Or(out...)
}

func findGroup(groups []*choiceGroup, base ast.Node, lazy bool) *choiceGroup {
	for _, g := range groups {
		if g.lazy == lazy && ast.Equal(g.base, base) {
			return g
		}
	}
	return nil
}

// runs partitions the choices into maximal sets whose count intervals
// overlap or touch, ordered by lower bound.
func (g *choiceGroup) runs() [][]choice {
	sorted := append([]choice(nil), g.choices...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].lo < sorted[j].lo
	})

	var runs [][]choice
	for _, c := range sorted {
		if k := len(runs); k > 0 {
			if hi := runMax(runs[k-1]); hi == ast.Unbounded || c.lo <= hi+1 {
				runs[k-1] = append(runs[k-1], c)
				continue
			}
		}
		runs = append(runs, []choice{c})
	}
	return runs
}

func runMax(run []choice) int {
	m := 0
	for _, c := range run {
		if c.hi == ast.Unbounded {
			return ast.Unbounded
		}
		if c.hi > m {
			m = c.hi
		}
	}
	return m
}
