package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"regexp/syntax"
	"strings"

	"github.com/dave/jennifer/jen"
)

// Entry is one pattern declared in the generated file.
type Entry struct {
	Name      string
	Original  string
	Optimized string
}

// Config describes a generated file.
type Config struct {
	Package    string
	OutputFile string
	Entries    []Entry
	// TestInputs, when set, also produces a _test.go file that checks each
	// optimized pattern against its original on these inputs.
	TestInputs []string
}

// Validate checks if the config is valid.
func (c Config) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("invalid package name %q", c.Package)
	}
	if len(c.Entries) == 0 {
		return fmt.Errorf("no patterns to generate")
	}
	seen := make(map[string]bool)
	for _, e := range c.Entries {
		if !token.IsIdentifier(e.Name) || !token.IsExported(e.Name) {
			return fmt.Errorf("invalid variable name %q", e.Name)
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate variable name %q", e.Name)
		}
		seen[e.Name] = true
		if _, err := syntax.Parse(e.Optimized, syntax.Perl); err != nil {
			return fmt.Errorf("pattern %s is not a valid Go regexp: %w", e.Name, err)
		}
	}
	return nil
}

// Source returns the formatted Go source declaring every entry.
func Source(c Config) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f := jen.NewFile(c.Package)
	f.HeaderComment("Code generated by regex-opt. DO NOT EDIT.")
	for _, e := range c.Entries {
		f.Commentf("%s is the optimized form of %s.", e.Name, quoteComment(e.Original))
		f.Var().Id(e.Name).Op("=").Qual(regexpPath, "MustCompile").Call(jen.Lit(e.Optimized))
		f.Line()
	}
	return render(f)
}

// TestSource returns a test file checking each entry against its original.
// Entries whose original is not accepted by Go's regexp are skipped.
func TestSource(c Config) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f := jen.NewFile(c.Package)
	f.HeaderComment("Code generated by regex-opt. DO NOT EDIT.")
	for _, e := range c.Entries {
		if _, err := syntax.Parse(e.Original, syntax.Perl); err != nil {
			continue
		}
		original := LowerFirst(e.Name) + "Original"
		f.Func().Id("Test"+e.Name+"MatchesOriginal").Params(jen.Id("t").Op("*").Qual(testingPath, "T")).Block(
			jen.Id(original).Op(":=").Qual(regexpPath, "MustCompile").Call(jen.Lit(e.Original)),
			jen.For(
				jen.List(jen.Id("_"), jen.Id("input")).Op(":=").Range().Index().String().ValuesFunc(func(g *jen.Group) {
					for _, in := range c.TestInputs {
						g.Lit(in)
					}
				}),
			).Block(
				jen.If(
					jen.Id(original).Dot("MatchString").Call(jen.Id("input")).Op("!=").Id(e.Name).Dot("MatchString").Call(jen.Id("input")),
				).Block(
					jen.Id("t").Dot("Errorf").Call(jen.Lit("%q: optimized pattern disagrees with the original"), jen.Id("input")),
				),
			),
		)
		f.Line()
	}
	return render(f)
}

// Generate writes the source file and, when TestInputs is set, its test file.
func Generate(c Config) error {
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	src, err := Source(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.OutputFile, src, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	if len(c.TestInputs) == 0 {
		return nil
	}
	test, err := TestSource(c)
	if err != nil {
		return err
	}
	testFile := strings.TrimSuffix(c.OutputFile, ".go") + "_test.go"
	if err := os.WriteFile(testFile, test, 0644); err != nil {
		return fmt.Errorf("failed to save test file: %w", err)
	}
	return nil
}

func render(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render file: %w", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format file: %w", err)
	}
	return formatted, nil
}

// quoteComment keeps a pattern on one comment line.
func quoteComment(pattern string) string {
	if strings.ContainsAny(pattern, "\n\r`") {
		return fmt.Sprintf("%q", pattern)
	}
	return "`" + pattern + "`"
}
