package optimizer

import "github.com/KromDaniel/regexopt/internal/ast"

// countRepeats merges adjacent repetitions of the same atom inside a
// concatenation (aaa* becomes a{2,}) and collapses a repeat of a repeat
// whose reachable counts form one interval ((a?){3} becomes a{0,3}).
func countRepeats(n ast.Node) ast.Node {
	switch n := n.(type) {
	case *ast.Concat:
		return mergeAdjacent(n)
	case *ast.Repeat:
		return collapseNested(n)
	}
	return n
}

func mergeAdjacent(c *ast.Concat) ast.Node {
	out := make([]ast.Node, 0, len(c.Items))
	for _, it := range c.Items {
		if k := len(out); k > 0 {
			if m, ok := mergeRepeats(out[k-1], it); ok {
				out[k-1] = m
				continue
			}
		}
		out = append(out, it)
	}
	if len(out) == len(c.Items) {
		return c
	}
	return ast.Cat(out...)
}

// mergeRepeats combines x followed by y when both repeat the same atom.
func mergeRepeats(x, y ast.Node) (ast.Node, bool) {
	dx, xmin, xmax, xlazy := ast.Base(x)
	dy, ymin, ymax, ylazy := ast.Base(y)
	if !ast.Equal(dx, dy) {
		return nil, false
	}
	lazy, ok := jointLaziness(xmin == xmax, xlazy, ymin == ymax, ylazy)
	if !ok {
		return nil, false
	}
	min, max := ast.AddCounts(xmin, ymin), ast.AddCounts(xmax, ymax)
	if min > ast.MaxCount || max > ast.MaxCount {
		return nil, false
	}
	return ast.Rep(dx, min, max, lazy), true
}

func collapseNested(r *ast.Repeat) ast.Node {
	inner, ok := r.Child.(*ast.Repeat)
	if !ok {
		return r
	}
	a, b, c, d := inner.Min, inner.Max, r.Min, r.Max
	if !contiguous(a, b, c, d) {
		return r
	}
	lazy, ok := jointLaziness(a == b, inner.Lazy, c == d, r.Lazy)
	if !ok {
		return r
	}
	min, max := ast.MulCounts(a, c), ast.MulCounts(b, d)
	if min > ast.MaxCount || max > ast.MaxCount {
		return r
	}
	return ast.Rep(inner.Child, min, max, lazy)
}

// contiguous reports whether the counts k*[a,b] for k in [c,d] leave no gap.
// Consecutive intervals touch when (k+1)*a <= k*b+1, and that is hardest to
// satisfy at the smallest k.
func contiguous(a, b, c, d int) bool {
	switch {
	case c == d:
		return true
	case c == 0:
		// {0} and [a,b] must touch.
		return a <= 1
	case b == ast.Unbounded:
		return true
	}
	return a-1 <= c*(b-a)
}

// jointLaziness decides the laziness of two combined repetitions. Exact
// counts have no backtracking order of their own; two ranged repetitions
// must agree.
func jointLaziness(xExact, xLazy, yExact, yLazy bool) (lazy, ok bool) {
	switch {
	case xExact && yExact:
		return false, true
	case xExact:
		return yLazy, true
	case yExact:
		return xLazy, true
	}
	return xLazy, xLazy == yLazy
}
