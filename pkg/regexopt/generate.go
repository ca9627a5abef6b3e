package regexopt

import (
	"fmt"

	"github.com/KromDaniel/regexopt/internal/codegen"
)

// GenerateOptions configures Go source generation.
type GenerateOptions struct {
	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code (default "patterns")
	Package string

	// Name is the exported variable name; later patterns get a numeric
	// suffix (Pattern, Pattern2, ...). Default "Pattern".
	Name string

	// TestInputs, when set, also generates a _test.go file checking every
	// optimized pattern against its original on these inputs
	TestInputs []string
}

// Validate checks if the options are valid.
func (o GenerateOptions) Validate() error {
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	return nil
}

// GenerateGo writes a Go file declaring each optimized pattern as a
// regexp.MustCompile variable.
func GenerateGo(results []*Result, opts GenerateOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if opts.Package == "" {
		opts.Package = codegen.DefaultPackage
	}
	if opts.Name == "" {
		opts.Name = codegen.DefaultName
	}

	config := codegen.Config{
		Package:    opts.Package,
		OutputFile: opts.OutputFile,
		TestInputs: opts.TestInputs,
	}
	for i, r := range results {
		config.Entries = append(config.Entries, codegen.Entry{
			Name:      codegen.EntryName(opts.Name, i),
			Original:  r.Input,
			Optimized: r.Output,
		})
	}

	if err := codegen.Generate(config); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
