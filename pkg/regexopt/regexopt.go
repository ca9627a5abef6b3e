// Package regexopt rewrites Perl-compatible regular expressions into
// shorter expressions that match exactly the same strings.
//
// The supported subset covers literals, bracket classes with ranges,
// negation and POSIX names, the \d \w \s escapes and their negations,
// concatenation, alternation, greedy and lazy repetition, and grouping.
// Anchors, back-references, Unicode properties and (?...) forms other than
// (?: are rejected with an *UnsupportedError.
package regexopt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/KromDaniel/regexopt/internal/optimizer"
	"github.com/KromDaniel/regexopt/internal/parser"
	"github.com/KromDaniel/regexopt/internal/render"
)

// SyntaxError reports malformed input.
type SyntaxError = parser.SyntaxError

// UnsupportedError reports a construct outside the supported subset.
type UnsupportedError = parser.UnsupportedError

// DefaultMaxIterations is the cycle cap used when Options leaves it unset.
const DefaultMaxIterations = optimizer.DefaultMaxIterations

// Options configures optimization.
type Options struct {
	// MaxIterations caps the number of pass cycles (0 uses DefaultMaxIterations)
	MaxIterations int

	// Verbose logs every rewrite
	Verbose bool

	// LogOutput receives the verbose log (default os.Stderr)
	LogOutput io.Writer
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.MaxIterations < 0 {
		return fmt.Errorf("max iterations cannot be negative")
	}
	return nil
}

// Result is the outcome of optimizing one pattern.
type Result struct {
	Input  string
	Output string

	// Iterations is the number of pass cycles run.
	Iterations int

	// Converged is false when the cycle cap stopped optimization early. The
	// output is still equivalent to the input.
	Converged bool
}

// Optimize parses pattern and returns its optimized form.
func Optimize(pattern string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return optimize(pattern, opts, logOutput(opts))
}

func optimize(pattern string, opts Options, log io.Writer) (*Result, error) {
	tree, err := parser.Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}

	logger := optimizer.NewLogger(opts.Verbose)
	logger.SetOutput(log)
	res := optimizer.New(optimizer.Config{
		MaxIterations: opts.MaxIterations,
		Logger:        logger,
	}).Run(tree)

	return &Result{
		Input:      pattern,
		Output:     render.Render(res.Tree),
		Iterations: res.Iterations,
		Converged:  res.Converged,
	}, nil
}

// OptimizeAll optimizes patterns concurrently on at most workers goroutines
// (no limit when workers <= 0). Results keep the input order. The first
// failure cancels the remaining work and is returned. Verbose logs are
// written per pattern, in input order, once all patterns are done.
func OptimizeAll(ctx context.Context, patterns []string, opts Options, workers int) ([]*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	results := make([]*Result, len(patterns))
	logs := make([]bytes.Buffer, len(patterns))
	for i, pattern := range patterns {
		i, pattern := i, pattern
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := optimize(pattern, opts, &logs[i])
			if err != nil {
				return fmt.Errorf("pattern %d: %w", i+1, err)
			}
			results[i] = r
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	if opts.Verbose {
		out := logOutput(opts)
		for i := range logs {
			if _, werr := logs[i].WriteTo(out); werr != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func logOutput(opts Options) io.Writer {
	if opts.LogOutput != nil {
		return opts.LogOutput
	}
	return os.Stderr
}
