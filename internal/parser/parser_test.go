package parser

import (
	"errors"
	"testing"

	"github.com/KromDaniel/regexopt/internal/ast"
	"github.com/KromDaniel/regexopt/internal/charset"
	"github.com/KromDaniel/regexopt/internal/render"
)

func TestParseRendersBack(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{`abc`, `abc`},
		{`a|b`, `a|b`},
		{`(abc)`, `abc`},
		{`((a|b))c`, `(?:a|b)c`},
		{`(?:ab)+`, `(?:ab)+`},
		{`.`, `.`},
		{`[^a]`, `[^a]`},
		{`\d`, `\d`},
		{`[[:digit:]]`, `\d`},
		{`[[:^digit:]]`, `\D`},
		{`[\w]`, `\w`},
		{`\x41`, `A`},
		{`\x{263A}`, `☺`},
		{`\t\n`, `\t\n`},
		{`\e`, `\x1B`},
		{`\cA`, `\x01`},
		{`\010`, `\x08`},
		{`[\b]`, `\x08`},
		{`\.\*`, `\.\*`},
		{`a{,3}`, `a{0,3}`},
		{`a{2}`, `aa`},
		{`a{2,5}?`, `a{2,5}?`},
		{`a{3}?`, `aaa`},
		{`a{2,}`, `a{2,}`},
		{`a*?b+?c??`, `a*?b+?c??`},
		{`a{x`, `a\{x`},
		{`a{`, `a\{`},
		{`x{1}`, `x`},
		{`x{0}y`, `y`},
		{`[]a]`, `[\]a]`},
		{`[a-]`, `[\-a]`},
		{`a|`, `a|`},
		{`]`, `]`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			if got := render.Render(n); got != tt.want {
				t.Errorf("Parse(%q) renders %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParseTree(t *testing.T) {
	tests := []struct {
		pattern string
		want    ast.Node
	}{
		{`ab`, ast.Str("ab")},
		{`(xx|yy)|zz`, ast.Or(ast.Str("xx"), ast.Str("yy"), ast.Str("zz"))},
		{`a|a`, ast.Char('a')},
		{`(b|)`, ast.Or(ast.Char('b'), ast.Eps())},
		{`(a?){3}`, ast.Rep(ast.Rep(ast.Char('a'), 0, 1, false), 3, 3, false)},
		{`a*?`, ast.Rep(ast.Char('a'), 0, ast.Unbounded, true)},
		{`[a-cx]`, ast.Lit(charset.Span('a', 'c').Union(charset.Char('x')))},
		{`[a-\d]`, ast.Lit(charset.Chars('a', '-').Union(charset.Span('0', '9')))},
		{`[^\n]`, ast.Lit(charset.Dot())},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			if !ast.Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.pattern, render.Render(got), render.Render(tt.want))
			}
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
	}{
		{`(ab`, 0},
		{`ab)`, 2},
		{`[ab`, 0},
		{`a{3,2}`, 1},
		{`a{70000}`, 1},
		{`[z-a]`, 1},
		{`*a`, 0},
		{`{2}`, 0},
		{`a**`, 2},
		{`a+*`, 2},
		{`a{2}{3}`, 4},
		{`a\`, 1},
		{`\i`, 0},
		{`[[:foo:]]`, 1},
		{`\x{110000}`, 0},
		{`\x{zz}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tt.pattern, err)
			}
			if se.Pos != tt.pos {
				t.Errorf("Parse(%q) error position = %d, want %d", tt.pattern, se.Pos, tt.pos)
			}
		})
	}
}

func TestUnsupported(t *testing.T) {
	tests := []struct {
		pattern     string
		description string
	}{
		{`^a`, "begin anchor"},
		{`a$`, "end anchor"},
		{`\bfoo`, "word boundary"},
		{`\B`, "non-boundary"},
		{`\Afoo\z`, "absolute anchors"},
		{`\pL`, "unicode property"},
		{`\p{Greek}`, "braced unicode property"},
		{`\X`, "extended grapheme"},
		{`(?=a)`, "lookahead"},
		{`(?i)a`, "inline flags"},
		{`(?<n>a)`, "named group"},
		{`(a)\1`, "back-reference"},
		{`\k<n>`, "named back-reference"},
		{`a++`, "possessive quantifier"},
		{`\Qa\E`, "quoted literal"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			var ue *UnsupportedError
			if !errors.As(err, &ue) {
				t.Fatalf("Parse(%q) error = %v, want *UnsupportedError", tt.pattern, err)
			}
			if ue.Construct == "" {
				t.Errorf("Parse(%q) error has no construct", tt.pattern)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	_, err := Parse(`a$`)
	if got, want := err.Error(), "unsupported construct at position 1: string-end anchor '$'"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	_, err = Parse(`a{3,2}`)
	if got, want := err.Error(), "syntax error at position 1: invalid repetition bounds {3,2}"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
