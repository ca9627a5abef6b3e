// Command regex-opt prints a shorter regular expression matching the same
// strings as its argument.
//
// Usage:
//
//	regex-opt [flags] <regexp>
//	regex-opt [flags] -e <regexp> -e <regexp> ...
//	regex-opt [flags] -f patterns.txt
//	regex-opt -i
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KromDaniel/regexopt/pkg/regexopt"
)

type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type cliOptions struct {
	verbose     bool
	maxIter     int
	patterns    arrayFlags
	file        string
	workers     int
	interactive bool
	goOut       string
	goName      string
	goPackage   string
	goTests     arrayFlags
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("regex-opt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o cliOptions
	fs.BoolVar(&o.verbose, "v", false, "Log every rewrite to stderr")
	fs.IntVar(&o.maxIter, "max-iter", regexopt.DefaultMaxIterations, "Maximum number of optimization cycles")
	fs.Var(&o.patterns, "e", "Pattern to optimize (repeatable)")
	fs.StringVar(&o.file, "f", "", "File with one pattern per line (- for stdin)")
	fs.IntVar(&o.workers, "j", 0, "Number of patterns optimized in parallel (0 = unlimited)")
	fs.BoolVar(&o.interactive, "i", false, "Start an interactive session")
	fs.StringVar(&o.goOut, "go-out", "", "Write a Go file declaring the optimized patterns")
	fs.StringVar(&o.goName, "go-name", "Pattern", "Variable name for -go-out")
	fs.StringVar(&o.goPackage, "go-package", "patterns", "Package name for -go-out")
	fs.Var(&o.goTests, "go-test", "Test input for the generated _test.go file (repeatable)")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	opts := regexopt.Options{
		MaxIterations: o.maxIter,
		Verbose:       o.verbose,
		LogOutput:     stderr,
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if o.interactive {
		if err := repl(opts, stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	patterns := append([]string(nil), o.patterns...)
	patterns = append(patterns, fs.Args()...)
	if o.file != "" {
		fromFile, err := readPatterns(o.file, stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		patterns = append(patterns, fromFile...)
	}
	if len(patterns) == 0 {
		usage(fs)
		return 0
	}

	results, err := regexopt.OptimizeAll(context.Background(), patterns, opts, o.workers)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, r := range results {
		if !r.Converged {
			fmt.Fprintf(stderr, "Warning: %q: stopped after %d cycles without reaching a fixpoint\n", r.Input, r.Iterations)
		}
		fmt.Fprintln(stdout, r.Output)
	}

	if o.goOut != "" {
		err := regexopt.GenerateGo(results, regexopt.GenerateOptions{
			OutputFile: o.goOut,
			Package:    o.goPackage,
			Name:       o.goName,
			TestInputs: o.goTests,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

// readPatterns returns the non-empty lines of path, or of stdin for "-".
func readPatterns(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open pattern file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var patterns []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
			patterns = append(patterns, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read patterns: %w", err)
	}
	return patterns, nil
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "Usage: regex-opt [flags] <regexp>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prints a shorter regular expression matching the same strings.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  regex-opt 'xaz|xbz|xcz'            # x[a-c]z")
	fmt.Fprintln(w, "  regex-opt -v 'dxxxxb|dxxxb|dxxb'   # log every rewrite")
	fmt.Fprintln(w, "  regex-opt -f patterns.txt -j 4")
	fmt.Fprintln(w, "  regex-opt -go-out patterns.go -go-name Ident '[a-zA-Z_][a-zA-Z0-9_]*'")
}
