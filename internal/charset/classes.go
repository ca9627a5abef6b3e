package charset

// Class is a named character class usable as compact syntax.
type Class struct {
	// Name is the POSIX name ("alpha") or the escape letter ("d").
	Name string
	// Token is the rendered form, e.g. "[:alpha:]" or `\d`.
	Token string
	// Bare reports whether Token may appear outside brackets.
	Bare bool
	Set  Set
}

var (
	digit     = Span('0', '9')
	upper     = Span('A', 'Z')
	lower     = Span('a', 'z')
	alpha     = upper.Union(lower)
	alnum     = alpha.Union(digit)
	word      = alnum.Union(Char('_'))
	xdigit    = digit.Union(Span('A', 'F')).Union(Span('a', 'f'))
	// Perl \s: no vertical tab.
	pspace    = Chars(' ', '\t', '\n', '\r', '\f')
	space     = pspace.Union(Char('\v'))
	blank     = Chars(' ', '\t')
	graph     = Span(0x21, 0x7e)
	printable = graph.Union(Char(' '))
	punct     = graph.Subtract(alnum)
	ascii     = Span(0, 0x7f)
	cntrl     = ascii.Subtract(printable)
)

var posix = map[string]Set{
	"alpha":  alpha,
	"digit":  digit,
	"alnum":  alnum,
	"upper":  upper,
	"lower":  lower,
	"space":  space,
	"blank":  blank,
	"punct":  punct,
	"xdigit": xdigit,
	"word":   word,
	"cntrl":  cntrl,
	"graph":  graph,
	"print":  printable,
	"ascii":  ascii,
}

// The order is the search order used by the renderer; earlier entries win ties.
var classes = []Class{
	{Name: "d", Token: `\d`, Bare: true, Set: digit},
	{Name: "w", Token: `\w`, Bare: true, Set: word},
	{Name: "s", Token: `\s`, Bare: true, Set: pspace},
	{Name: "D", Token: `\D`, Bare: true, Set: digit.Complement()},
	{Name: "W", Token: `\W`, Bare: true, Set: word.Complement()},
	{Name: "S", Token: `\S`, Bare: true, Set: pspace.Complement()},
	{Name: "alpha", Token: "[:alpha:]", Set: alpha},
	{Name: "alnum", Token: "[:alnum:]", Set: alnum},
	{Name: "upper", Token: "[:upper:]", Set: upper},
	{Name: "lower", Token: "[:lower:]", Set: lower},
	{Name: "space", Token: "[:space:]", Set: space},
	{Name: "blank", Token: "[:blank:]", Set: blank},
	{Name: "punct", Token: "[:punct:]", Set: punct},
	{Name: "xdigit", Token: "[:xdigit:]", Set: xdigit},
	{Name: "cntrl", Token: "[:cntrl:]", Set: cntrl},
	{Name: "graph", Token: "[:graph:]", Set: graph},
	{Name: "print", Token: "[:print:]", Set: printable},
	{Name: "ascii", Token: "[:ascii:]", Set: ascii},
}

// Classes returns the fixed named-class table.
func Classes() []Class {
	return classes
}

// POSIX returns the set named by a [:name:] bracket token.
func POSIX(name string) (Set, bool) {
	s, ok := posix[name]
	return s, ok
}

// Escape returns the set of a backslash class escape (\d \D \s \S \w \W).
func Escape(letter rune) (Set, bool) {
	switch letter {
	case 'd':
		return digit, true
	case 'D':
		return digit.Complement(), true
	case 's':
		return pspace, true
	case 'S':
		return pspace.Complement(), true
	case 'w':
		return word, true
	case 'W':
		return word.Complement(), true
	}
	return Set{}, false
}
