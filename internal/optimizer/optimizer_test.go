package optimizer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KromDaniel/regexopt/internal/ast"
	"github.com/KromDaniel/regexopt/internal/parser"
	"github.com/KromDaniel/regexopt/internal/render"
)

func mustParse(t *testing.T, pattern string) ast.Node {
	t.Helper()
	n, err := parser.Parse(pattern)
	if err != nil {
		t.Fatalf("failed to parse pattern %q: %v", pattern, err)
	}
	return n
}

func optimize(t *testing.T, pattern string) string {
	t.Helper()
	res := New(Config{}).Run(mustParse(t, pattern))
	if !res.Converged {
		t.Fatalf("pattern %q did not converge in %d cycles", pattern, res.Iterations)
	}
	return render.Render(res.Tree)
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		pattern     string
		want        string
		description string
	}{
		{`xaz|xbz|xcz`, `x[a-c]z`, "shared affixes and folded middle"},
		{`aaa*`, `a{2,}`, "adjacent repeats"},
		{`(a?){3}`, `a{0,3}`, "optional repeated exactly"},
		{`abcde|xycde`, `(?:ab|xy)cde`, "common suffix"},
		{`((abc))`, `abc`, "redundant groups"},
		{`(xx|yy)|zz`, `xx|yy|zz`, "nested alternation"},
		{`dxxxxb|dxxxb|dxxb|dxb`, `dx{1,4}b`, "contiguous counts across branches"},
		{`y|[yp]|[zx]`, `[px-z]`, "single characters fold into one class"},
		{`a+|aa+`, `a+`, "overlapping count intervals"},
		{`(b|)`, `b?`, "empty branch"},
		{`abcabcabcabc`, `(?:abc){4}`, "whole sequence tiling"},
		{`xabcdeabcdeabcde`, `x(?:abcde){3}`, "tiling at an offset"},
		{`abababcd`, `abababcd`, "tiling that does not pay off"},
		{`a|xy|[bc]`, `[a-c]|xy`, "fold keeps the first literal position"},
		{`foo|foobar`, `foo(?:bar)?`, "branch equal to the affix"},
		{`ab|a`, `ab?`, "single residue becomes optional"},
		{`a?|b?`, `a?|b?`, "differing atoms are left alone"},
		{`a|aaa`, `a|aaa`, "counts with a gap"},
		{`[[:alpha:]]|[[:digit:]]|_`, `\w`, "classes fold into a named class"},
		{`(a{2,3})+`, `a{2,}`, "nested ranged repeat"},
		{`(a{2})+`, `(?:aa)+`, "nested repeat with gaps"},
		{`(a+?)*?`, `a*?`, "nested lazy repeats"},
		{`(a+)*?`, `(?:a+)*?`, "mixed laziness blocks collapse"},
		{`a*a*?`, `a*a*?`, "mixed laziness blocks merge"},
		{`a*?a`, `a+?`, "exact count joins a lazy repeat"},
		{`a*?|`, `a*?`, "empty branch absorbed by a lazy run"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := optimize(t, tt.pattern); got != tt.want {
				t.Errorf("pattern %q: got %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestClassRenderingNoLonger(t *testing.T) {
	got := optimize(t, `[A-Zabcdefgh-yz0-9%]`)
	if len(got) > len(`[%[:alnum:]]`) {
		t.Errorf("got %q, longer than [%%[:alnum:]]", got)
	}
}

var equivalencePatterns = []string{
	`xaz|xbz|xcz`,
	`aaa*`,
	`(a?){3}`,
	`abcde|xycde`,
	`(xx|yy)|zz`,
	`dxxxxb|dxxxb|dxxb|dxb`,
	`y|[yp]|[zx]`,
	`a+|aa+`,
	`(b|)`,
	`abcabcabcabc`,
	`a*?a`,
	`(a{2,3})+`,
	`(a{2})+`,
	`(a+?)*?`,
	`foo|foobar|fob`,
	`ab|a|`,
	`a|b|c|ab|ac`,
	`x{4}|x{3}|x|`,
	`[a-c]|[b-d]x|d`,
	`\d+|\d*x`,
	`(?:a|b)*c|(?:a|b)*d`,
	`(a|)(a|)(a|)`,
	`xabcdeabcdeabcde`,
	`(?:ab){2}(?:ab){3}`,
	`a{2}a{3,}`,
	`[^a]|a`,
	`(?:a?)+`,
	`(a*b*)*`,
	`q(?:ab|ab?)`,
	`(?:xy)?xy(?:xy)*`,
	`a?|b?`,
	`a.b|a\nb`,
	`(a{0,2}){2,3}`,
	`(a{3,4}){2,}`,
	`(a{3,4}){0,2}`,
	`(?:ab|cd){2}(?:ab|cd)`,
}

func TestEquivalence(t *testing.T) {
	for _, pattern := range equivalencePatterns {
		t.Run(pattern, func(t *testing.T) {
			orig := mustParse(t, pattern)
			res := New(Config{Trace: true}).Run(orig)
			for _, step := range res.Trace {
				assertEquivalent(t, orig, step.Tree)
			}
			assertEquivalent(t, orig, res.Tree)
		})
	}
}

func TestIdempotent(t *testing.T) {
	for _, pattern := range equivalencePatterns {
		t.Run(pattern, func(t *testing.T) {
			once := New(Config{}).Run(mustParse(t, pattern))
			twice := New(Config{}).Run(once.Tree)
			if !ast.Equal(once.Tree, twice.Tree) {
				t.Errorf("second run changed %q to %q", render.Render(once.Tree), render.Render(twice.Tree))
			}
			if twice.Iterations != 1 {
				t.Errorf("second run took %d cycles, want 1", twice.Iterations)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	for _, pattern := range equivalencePatterns {
		first := optimize(t, pattern)
		for i := 0; i < 5; i++ {
			if got := optimize(t, pattern); got != first {
				t.Fatalf("pattern %q: run %d gave %q, first run gave %q", pattern, i, got, first)
			}
		}
	}
}

func TestIterationCap(t *testing.T) {
	res := New(Config{MaxIterations: 1}).Run(mustParse(t, `xaz|xbz|xcz`))
	if res.Converged {
		t.Error("expected the cap to stop the run")
	}
	if res.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", res.Iterations)
	}
	assertEquivalent(t, mustParse(t, `xaz|xbz|xcz`), res.Tree)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"negative cap", Config{MaxIterations: -1}, true},
		{"pass without rule", Config{Passes: []Pass{{Name: "noop"}}}, true},
		{"custom pass", Config{Passes: []Pass{{Name: "flatten", Rule: identity}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCustomPasses(t *testing.T) {
	res := New(Config{Passes: []Pass{{Name: "fold", Rule: foldLiterals}}}).Run(mustParse(t, `a|b|aaa`))
	if got, want := render.Render(res.Tree), `[ab]|aaa`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestVerboseLog(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(true)
	logger.SetOutput(&buf)

	New(Config{Logger: logger}).Run(mustParse(t, `abcde|xycde`))

	out := buf.String()
	for _, want := range []string{
		"[regex-opt] === Optimize ===",
		"[regex-opt] input: abcde|xycde",
		"factor: abcde|xycde -> (?:ab|xy)cde",
		"fixpoint after",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log is missing %q:\n%s", want, out)
		}
	}
}

func TestQuietLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false)
	logger.SetOutput(&buf)
	logger.Log("hidden %d", 1)
	logger.Section("hidden")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
	if logger.Enabled() {
		t.Error("Enabled() = true")
	}
}
