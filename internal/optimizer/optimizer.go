// Package optimizer shrinks an expression tree by applying a fixed sequence
// of language-preserving rewrite passes until a full cycle changes nothing.
//
// Each cycle runs fold, count, factor, choice and compress in that order.
// Every pass is applied bottom-up at every subtree and is followed by a
// flatten step. Passes are pure functions and never fail.
package optimizer

import (
	"fmt"

	"github.com/KromDaniel/regexopt/internal/ast"
	"github.com/KromDaniel/regexopt/internal/render"
)

// DefaultMaxIterations bounds the number of cycles when Config leaves it unset.
const DefaultMaxIterations = 64

// Pass is a named rewrite applied at every subtree.
type Pass struct {
	Name string
	Rule Rule
}

// DefaultPasses returns the pass cycle in execution order.
func DefaultPasses() []Pass {
	return []Pass{
		{Name: "fold", Rule: foldLiterals},
		{Name: "count", Rule: countRepeats},
		{Name: "factor", Rule: factorAffixes},
		{Name: "choice", Rule: countChoices},
		{Name: "compress", Rule: compressBlocks},
	}
}

// Config controls an Optimizer.
type Config struct {
	// MaxIterations caps the number of cycles. Zero means DefaultMaxIterations.
	MaxIterations int
	// Passes overrides DefaultPasses.
	Passes []Pass
	// Trace records the tree after every pass that changed it.
	Trace  bool
	Logger *Logger
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxIterations < 0 {
		return fmt.Errorf("max iterations must not be negative, got %d", c.MaxIterations)
	}
	for i, p := range c.Passes {
		if p.Rule == nil {
			return fmt.Errorf("pass %d (%q) has no rule", i, p.Name)
		}
	}
	return nil
}

// Step is one recorded rewrite.
type Step struct {
	Cycle int
	Pass  string
	Tree  ast.Node
}

// Result is the outcome of Run.
type Result struct {
	Tree ast.Node
	// Iterations counts the cycles run, including the final unchanged one.
	Iterations int
	// Converged is false when the cycle cap stopped the run before a fixpoint.
	Converged bool
	Trace     []Step
}

// Optimizer runs the pass pipeline.
type Optimizer struct {
	maxIterations int
	passes        []Pass
	trace         bool
	logger        *Logger
}

// New creates an Optimizer. It panics if config is invalid; use
// Config.Validate first for untrusted input.
func New(config Config) *Optimizer {
	if err := config.Validate(); err != nil {
		panic(fmt.Sprintf("optimizer: %v", err))
	}
	o := &Optimizer{
		maxIterations: config.MaxIterations,
		passes:        config.Passes,
		trace:         config.Trace,
		logger:        config.Logger,
	}
	if o.maxIterations == 0 {
		o.maxIterations = DefaultMaxIterations
	}
	if o.passes == nil {
		o.passes = DefaultPasses()
	}
	if o.logger == nil {
		o.logger = NewLogger(false)
	}
	return o
}

// Run optimizes tree to a fixpoint or until the cycle cap is reached.
func (o *Optimizer) Run(tree ast.Node) Result {
	var res Result
	cur := Flatten(tree)

	o.logger.Section("Optimize")
	o.logger.Log("input: %s", render.Render(cur))
	for res.Iterations < o.maxIterations {
		res.Iterations++
		next := o.cycle(cur, res.Iterations, &res)
		if ast.Equal(next, cur) {
			res.Converged = true
			break
		}
		cur = next
	}
	if res.Converged {
		o.logger.Log("fixpoint after %d cycle(s): %s", res.Iterations, render.Render(cur))
	} else {
		o.logger.Log("warning: stopped after %d cycle(s) without reaching a fixpoint", res.Iterations)
	}

	res.Tree = cur
	return res
}

func (o *Optimizer) cycle(tree ast.Node, n int, res *Result) ast.Node {
	for _, p := range o.passes {
		next := Flatten(Apply(tree, p.Rule))
		if ast.Equal(next, tree) {
			continue
		}
		if o.logger.Enabled() {
			o.logger.Log("cycle %d %s: %s -> %s", n, p.Name, render.Render(tree), render.Render(next))
		}
		if o.trace {
			res.Trace = append(res.Trace, Step{Cycle: n, Pass: p.Name, Tree: next})
		}
		tree = next
	}
	return tree
}
