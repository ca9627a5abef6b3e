package optimizer

import "github.com/KromDaniel/regexopt/internal/ast"

// Rule rewrites one node whose children have already been rewritten. A rule
// that does not apply returns its argument.
type Rule func(ast.Node) ast.Node

// Apply rewrites n bottom-up: every child first, then the rebuilt node.
// Rebuilding goes through the ast constructors, so the result is always in
// canonical form.
func Apply(n ast.Node, rule Rule) ast.Node {
	switch n := n.(type) {
	case *ast.Concat:
		items := make([]ast.Node, len(n.Items))
		for i, it := range n.Items {
			items[i] = Apply(it, rule)
		}
		return rule(ast.Cat(items...))
	case *ast.Alt:
		branches := make([]ast.Node, len(n.Branches))
		for i, br := range n.Branches {
			branches[i] = Apply(br, rule)
		}
		return rule(ast.Or(branches...))
	case *ast.Repeat:
		return rule(ast.Rep(Apply(n.Child, rule), n.Min, n.Max, n.Lazy))
	}
	return rule(n)
}

// Flatten splices nested concatenations and alternations, collapses
// singletons and drops duplicate branches.
func Flatten(n ast.Node) ast.Node {
	return Apply(n, identity)
}

func identity(n ast.Node) ast.Node {
	return n
}
