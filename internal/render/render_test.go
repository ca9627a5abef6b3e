package render

import (
	"regexp"
	"testing"

	"github.com/KromDaniel/regexopt/internal/ast"
	"github.com/KromDaniel/regexopt/internal/charset"
)

func TestSet(t *testing.T) {
	tests := []struct {
		name string
		set  charset.Set
		want string
	}{
		{"dot", charset.Dot(), "."},
		{"single", charset.Char('a'), "a"},
		{"meta", charset.Char('+'), `\+`},
		{"newline", charset.Char('\n'), `\n`},
		{"control", charset.Char(0x01), `\x01`},
		{"delete", charset.Char(0x7f), `\x7F`},
		{"unicode", charset.Char('é'), "é"},
		{"digit escape", charset.Span('0', '9'), `\d`},
		{"not digit", charset.Span('0', '9').Complement(), `\D`},
		{"pair", charset.Chars('a', 'b'), "[ab]"},
		{"span", charset.Span('a', 'c'), "[a-c]"},
		{"split runs", charset.Chars('p', 'x', 'y', 'z'), "[px-z]"},
		{"negated single", charset.Char('a').Complement(), "[^a]"},
		{"negated pair", charset.Chars('a', '\n').Complement(), `[^\na]`},
		{"class plus char", charset.Span('0', '9').Union(charset.Char('_')), `[\d_]`},
		{"letters and underscore", charset.Span('a', 'z').Union(charset.Span('A', 'Z')).Union(charset.Char('_')), `[^\d\W]`},
		{"escaped in class", charset.Chars(']', '^', '-'), `[\-\]\^]`},
		{"not word or space", charset.Span('0', '9').Union(charset.Char(' ')).Complement(), `[^\d ]`},
		{"everything", charset.Full(), `[\D\S]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Set(tt.set); got != tt.want {
				t.Errorf("Set(%v) = %q, want %q", tt.set, got, tt.want)
			}
		})
	}
}

func TestSetNotLongerThanRaw(t *testing.T) {
	alnum := charset.Span('A', 'Z').Union(charset.Span('a', 'z')).Union(charset.Span('0', '9'))
	s := alnum.Union(charset.Char('%'))
	if got := Set(s); len(got) > len(`[%[:alnum:]]`) {
		t.Errorf("Set = %q, longer than [%%[:alnum:]]", got)
	}
}

func TestRender(t *testing.T) {
	a := ast.Char('a')
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"empty", ast.Eps(), ""},
		{"string", ast.Str("abc"), "abc"},
		{"alternation", ast.Or(ast.Str("ab"), ast.Char('c')), "ab|c"},
		{"empty branch", ast.Or(a, ast.Eps()), "a|"},
		{"grouped alternation", ast.Cat(ast.Or(ast.Str("ab"), ast.Str("xy")), ast.Str("cde")), "(?:ab|xy)cde"},
		{"star", ast.Rep(a, 0, ast.Unbounded, false), "a*"},
		{"plus", ast.Rep(a, 1, ast.Unbounded, false), "a+"},
		{"optional", ast.Rep(a, 0, 1, false), "a?"},
		{"lazy star", ast.Rep(a, 0, ast.Unbounded, true), "a*?"},
		{"at least", ast.Rep(a, 2, ast.Unbounded, false), "a{2,}"},
		{"range", ast.Rep(a, 1, 4, false), "a{1,4}"},
		{"lazy range", ast.Rep(a, 1, 4, true), "a{1,4}?"},
		{"two", ast.Rep(a, 2, 2, false), "aa"},
		{"three", ast.Rep(a, 3, 3, false), "aaa"},
		{"four", ast.Rep(a, 4, 4, false), "a{4}"},
		{"class twice", ast.Rep(ast.Lit(charset.Span('0', '9')), 2, 2, false), `\d\d`},
		{"group", ast.Rep(ast.Str("abc"), 4, 4, false), "(?:abc){4}"},
		{"nested repeat", ast.Rep(ast.Rep(a, 2, 2, false), 1, ast.Unbounded, false), "(?:aa)+"},
		{"repeated alternation", ast.Rep(ast.Or(a, ast.Str("bc")), 0, 1, false), "(?:a|bc)?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.node); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
			if got := Len(tt.node); got != len([]rune(tt.want)) {
				t.Errorf("Len = %d, want %d", got, len([]rune(tt.want)))
			}
		})
	}
}

func TestSeqLen(t *testing.T) {
	items := []ast.Node{ast.Or(ast.Char('a'), ast.Str("bc")), ast.Char('d')}
	if got, want := SeqLen(items), len("(?:a|bc)d"); got != want {
		t.Errorf("SeqLen = %d, want %d", got, want)
	}
}

// Output must be accepted by Go's regexp package.
func TestAcceptedByRegexp(t *testing.T) {
	nodes := []ast.Node{
		ast.Lit(charset.Full()),
		ast.Lit(charset.Char(0x1b)),
		ast.Lit(charset.Char(0x10FFFF)),
		ast.Lit(charset.Span(0x80, 0x10FFFF)),
		ast.Lit(charset.Chars('[', ']', '-', '^', '\\')),
		ast.Cat(ast.Lit(charset.Chars('{', '}')), ast.Char('$'), ast.Char('^')),
		ast.Rep(ast.Or(ast.Str("ab"), ast.Eps()), 2, 5, true),
	}
	for _, n := range nodes {
		text := Render(n)
		if _, err := regexp.Compile(text); err != nil {
			t.Errorf("regexp rejects %q: %v", text, err)
		}
	}
}
