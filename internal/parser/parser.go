// Package parser converts Perl-compatible regex text into an ast.Node.
//
// Capturing groups are lowered to plain grouping. Anchors, back-references,
// Unicode property escapes and every (?...) form other than (?: are rejected
// with an *UnsupportedError; malformed input yields a *SyntaxError.
package parser

import (
	"strings"
	"unicode"

	"github.com/KromDaniel/regexopt/internal/ast"
	"github.com/KromDaniel/regexopt/internal/charset"
)

// MaxCount is the largest repetition bound accepted in {n,m}.
const MaxCount = ast.MaxCount

// Escape letters that are valid Perl but outside the supported subset.
const unsupportedEscapes = "ABCEGHKLNPQRUVXZghklpuz"

type parser struct {
	src []rune
	pos int
}

// Parse parses pattern into a canonical tree.
func Parse(pattern string) (ast.Node, error) {
	p := &parser{src: []rune(pattern)}
	n, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if p.more() {
		// parseAlt only stops early on ')'.
		return nil, p.errorf(p.pos, "unmatched ')'")
	}
	return n, nil
}

func (p *parser) more() bool {
	return p.pos < len(p.src)
}

func (p *parser) peek() rune {
	return p.src[p.pos]
}

func (p *parser) lookingAt(s string) bool {
	rs := []rune(s)
	if p.pos+len(rs) > len(p.src) {
		return false
	}
	for i, r := range rs {
		if p.src[p.pos+i] != r {
			return false
		}
	}
	return true
}

func (p *parser) parseAlt() (ast.Node, error) {
	var branches []ast.Node
	for {
		seq, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		branches = append(branches, seq)
		if p.more() && p.peek() == '|' {
			p.pos++
			continue
		}
		return ast.Or(branches...), nil
	}
}

func (p *parser) parseSeq() (ast.Node, error) {
	var items []ast.Node
	for p.more() {
		switch c := p.peek(); c {
		case '|', ')':
			return ast.Cat(items...), nil
		case '*', '+', '?':
			return nil, p.errorf(p.pos, "missing argument to repetition operator %q", c)
		case '{':
			save := p.pos
			if _, _, ok, err := p.parseCount(); err != nil {
				return nil, err
			} else if ok {
				return nil, p.errorf(save, "missing argument to repetition operator")
			}
			p.pos = save
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if atom, err = p.parseQuantifier(atom); err != nil {
			return nil, err
		}
		items = append(items, atom)
	}
	return ast.Cat(items...), nil
}

// parseQuantifier applies at most one quantifier (with its lazy marker) to atom.
func (p *parser) parseQuantifier(atom ast.Node) (ast.Node, error) {
	if !p.more() {
		return atom, nil
	}
	min, max := 0, 0
	switch p.peek() {
	case '*':
		min, max = 0, ast.Unbounded
		p.pos++
	case '+':
		min, max = 1, ast.Unbounded
		p.pos++
	case '?':
		min, max = 0, 1
		p.pos++
	case '{':
		save := p.pos
		lo, hi, ok, err := p.parseCount()
		if err != nil {
			return nil, err
		}
		if !ok {
			p.pos = save
			return atom, nil
		}
		min, max = lo, hi
	default:
		return atom, nil
	}

	lazy := false
	if p.more() {
		switch p.peek() {
		case '?':
			lazy = true
			p.pos++
		case '+':
			return nil, p.unsupported(p.pos, "possessive quantifier")
		}
	}
	if p.more() {
		switch p.peek() {
		case '*', '+', '?':
			return nil, p.errorf(p.pos, "nested repetition operator %q", p.peek())
		case '{':
			save := p.pos
			if _, _, ok, _ := p.parseCount(); ok {
				return nil, p.errorf(save, "nested repetition operator")
			}
			p.pos = save
		}
	}
	return ast.Rep(atom, min, max, lazy), nil
}

// parseCount parses {n}, {n,}, {n,m} or {,m} at the current '{'. When the
// text is not a counted repetition it returns ok == false and the caller
// treats '{' as a literal.
func (p *parser) parseCount() (min, max int, ok bool, err error) {
	start := p.pos
	p.pos++
	lo, hasLo := p.parseInt()
	if !p.more() {
		return 0, 0, false, nil
	}
	switch p.peek() {
	case '}':
		if !hasLo {
			return 0, 0, false, nil
		}
		p.pos++
		if lo > MaxCount {
			return 0, 0, false, p.errorf(start, "repetition count %d exceeds %d", lo, MaxCount)
		}
		return lo, lo, true, nil
	case ',':
		p.pos++
	default:
		return 0, 0, false, nil
	}
	hi, hasHi := p.parseInt()
	if !p.more() || p.peek() != '}' || (!hasLo && !hasHi) {
		return 0, 0, false, nil
	}
	p.pos++
	if !hasHi {
		hi = ast.Unbounded
	}
	if lo > MaxCount || hi > MaxCount {
		return 0, 0, false, p.errorf(start, "repetition count exceeds %d", MaxCount)
	}
	if hi != ast.Unbounded && lo > hi {
		return 0, 0, false, p.errorf(start, "invalid repetition bounds {%d,%d}", lo, hi)
	}
	return lo, hi, true, nil
}

func (p *parser) parseInt() (int, bool) {
	n, digits := 0, 0
	for p.more() && p.peek() >= '0' && p.peek() <= '9' {
		if n <= MaxCount {
			n = n*10 + int(p.peek()-'0')
		}
		p.pos++
		digits++
	}
	return n, digits > 0
}

func (p *parser) parseAtom() (ast.Node, error) {
	start := p.pos
	switch c := p.peek(); c {
	case '(':
		return p.parseGroup()
	case '[':
		s, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		return ast.Lit(s), nil
	case '\\':
		s, err := p.parseEscape(false)
		if err != nil {
			return nil, err
		}
		return ast.Lit(s), nil
	case '.':
		p.pos++
		return ast.Lit(charset.Dot()), nil
	case '^':
		return nil, p.unsupported(start, "string-begin anchor '^'")
	case '$':
		return nil, p.unsupported(start, "string-end anchor '$'")
	default:
		p.pos++
		return ast.Char(c), nil
	}
}

func (p *parser) parseGroup() (ast.Node, error) {
	start := p.pos
	p.pos++
	if p.more() && p.peek() == '?' {
		if !p.lookingAt("?:") {
			end := min(p.pos+2, len(p.src))
			return nil, p.unsupported(start, "group syntax %q", "("+string(p.src[p.pos:end]))
		}
		p.pos += 2
	}
	n, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	if !p.more() || p.peek() != ')' {
		return nil, p.errorf(start, "missing closing ')'")
	}
	p.pos++
	return n, nil
}

func (p *parser) parseClass() (charset.Set, error) {
	start := p.pos
	p.pos++
	negated := false
	if p.more() && p.peek() == '^' {
		negated = true
		p.pos++
	}

	var set charset.Set
	for first := true; ; first = false {
		if !p.more() {
			return charset.Set{}, p.errorf(start, "missing closing ']'")
		}
		if p.peek() == ']' && !first {
			p.pos++
			break
		}
		itemPos := p.pos
		lo, loSet, single, err := p.parseClassAtom()
		if err != nil {
			return charset.Set{}, err
		}
		if single && p.lookingAt("-") && p.pos+1 < len(p.src) && p.src[p.pos+1] != ']' {
			p.pos++
			hi, hiSet, hiSingle, err := p.parseClassAtom()
			if err != nil {
				return charset.Set{}, err
			}
			if !hiSingle {
				// [a-\d] keeps the dash literal.
				set = set.Union(loSet).Union(charset.Char('-')).Union(hiSet)
				continue
			}
			if hi < lo {
				return charset.Set{}, p.errorf(itemPos, "invalid character class range %q-%q", lo, hi)
			}
			set = set.Union(charset.Span(lo, hi))
			continue
		}
		set = set.Union(loSet)
	}
	if negated {
		return set.Complement(), nil
	}
	return set, nil
}

// parseClassAtom parses one bracket item. single reports whether the item is
// one character usable as a range endpoint.
func (p *parser) parseClassAtom() (c rune, s charset.Set, single bool, err error) {
	switch {
	case p.lookingAt("[:"):
		if s, ok, err := p.parsePOSIX(); err != nil || ok {
			return 0, s, false, err
		}
	case p.peek() == '\\':
		s, err := p.parseEscape(true)
		if err != nil {
			return 0, charset.Set{}, false, err
		}
		c, single := s.Single()
		return c, s, single, nil
	}
	c = p.peek()
	p.pos++
	return c, charset.Char(c), true, nil
}

func (p *parser) parsePOSIX() (charset.Set, bool, error) {
	start := p.pos
	rest := string(p.src[p.pos+2:])
	end := strings.Index(rest, ":]")
	if end < 0 {
		return charset.Set{}, false, nil
	}
	name := rest[:end]
	negated := strings.HasPrefix(name, "^")
	name = strings.TrimPrefix(name, "^")
	s, ok := charset.POSIX(name)
	if !ok {
		return charset.Set{}, false, p.errorf(start, "unknown POSIX class %q", name)
	}
	p.pos += 2 + len([]rune(rest[:end])) + 2
	if negated {
		s = s.Complement()
	}
	return s, true, nil
}

func (p *parser) parseEscape(inClass bool) (charset.Set, error) {
	start := p.pos
	p.pos++
	if !p.more() {
		return charset.Set{}, p.errorf(start, "trailing backslash")
	}
	c := p.peek()
	p.pos++
	switch c {
	case 't':
		return charset.Char('\t'), nil
	case 'n':
		return charset.Char('\n'), nil
	case 'r':
		return charset.Char('\r'), nil
	case 'v':
		return charset.Char('\v'), nil
	case 'f':
		return charset.Char('\f'), nil
	case 'a':
		return charset.Char('\a'), nil
	case 'e':
		return charset.Char(0x1b), nil
	case 'c':
		if !p.more() || p.peek() > unicode.MaxASCII {
			return charset.Set{}, p.errorf(start, "missing control character after \\c")
		}
		x := unicode.ToUpper(p.peek()) ^ 0x40
		p.pos++
		return charset.Char(x), nil
	case 'x':
		return p.parseHex(start)
	case '0':
		return charset.Char(p.parseOctal(0, 2)), nil
	case 'b':
		if inClass {
			return charset.Char('\b'), nil
		}
		return charset.Set{}, p.unsupported(start, `word boundary \b`)
	}
	if s, ok := charset.Escape(c); ok {
		return s, nil
	}
	if c >= '1' && c <= '9' {
		if inClass && c <= '7' {
			return charset.Char(p.parseOctal(c-'0', 2)), nil
		}
		return charset.Set{}, p.unsupported(start, "back-reference \\%c", c)
	}
	if strings.ContainsRune(unsupportedEscapes, c) {
		return charset.Set{}, p.unsupported(start, "escape \\%c", c)
	}
	if c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)) {
		return charset.Set{}, p.errorf(start, "unknown escape \\%c", c)
	}
	return charset.Char(c), nil
}

func (p *parser) parseOctal(v rune, digits int) rune {
	for ; digits > 0 && p.more() && p.peek() >= '0' && p.peek() <= '7'; digits-- {
		v = v*8 + p.peek() - '0'
		p.pos++
	}
	return v
}

func (p *parser) parseHex(start int) (charset.Set, error) {
	if p.more() && p.peek() == '{' {
		p.pos++
		v, digits := rune(0), 0
		for p.more() && p.peek() != '}' {
			d, ok := hexValue(p.peek())
			if !ok {
				return charset.Set{}, p.errorf(start, "invalid hexadecimal escape")
			}
			v = v*16 + d
			digits++
			if v > charset.MaxRune {
				return charset.Set{}, p.errorf(start, "hexadecimal escape out of range")
			}
			p.pos++
		}
		if !p.more() || digits == 0 {
			return charset.Set{}, p.errorf(start, "invalid hexadecimal escape")
		}
		p.pos++
		return charset.Char(v), nil
	}
	v := rune(0)
	for digits := 0; digits < 2 && p.more(); digits++ {
		d, ok := hexValue(p.peek())
		if !ok {
			break
		}
		v = v*16 + d
		p.pos++
	}
	return charset.Char(v), nil
}

func hexValue(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
