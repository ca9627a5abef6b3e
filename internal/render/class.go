package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KromDaniel/regexopt/internal/charset"
)

// Metacharacters escaped outside brackets.
const metaChars = `\.+*?()|[{^$`

// Characters escaped inside brackets.
const classMetaChars = `\]^-[`

// Set returns the shortest single-atom rendering of s: '.', a literal
// character, a bare class escape, or a bracket expression built from the
// cheapest combination of named classes and raw ranges.
func Set(s charset.Set) string {
	if s.Equal(charset.Dot()) {
		return "."
	}
	if c, ok := s.Single(); ok {
		return escapeRune(c, false)
	}
	for _, cl := range charset.Classes() {
		if cl.Bare && cl.Set.Equal(s) {
			return cl.Token
		}
	}

	var best *cover
	if !s.IsEmpty() {
		best = searchCover(s, false)
	}
	if comp := s.Complement(); !comp.IsEmpty() {
		if c := searchCover(comp, true); best == nil || c.better(best) {
			best = c
		}
	}
	return best.text
}

type cover struct {
	text  string
	size  int // characters
	named int
}

func (c *cover) better(o *cover) bool {
	if c.size != o.size {
		return c.size < o.size
	}
	if c.named != o.named {
		return c.named < o.named
	}
	return c.text < o.text
}

// searchCover finds the cheapest bracket expression for s by trying every
// combination of the named classes contained in s. Covers may overlap; the
// raw part only has to cover what the chosen classes miss.
func searchCover(s charset.Set, negated bool) *cover {
	candidates := applicable(s)

	var best *cover
	chosen := make([]charset.Class, 0, len(candidates))
	var search func(i int, covered charset.Set)
	search = func(i int, covered charset.Set) {
		if i == len(candidates) {
			c := buildCover(s, covered, chosen, negated)
			if best == nil || c.better(best) {
				best = c
			}
			return
		}
		search(i+1, covered)
		chosen = append(chosen, candidates[i])
		search(i+1, covered.Union(candidates[i].Set))
		chosen = chosen[:len(chosen)-1]
	}
	search(0, charset.Set{})
	return best
}

// applicable returns the named classes contained in s, minus those dominated
// by a containing class with a token no longer than theirs.
func applicable(s charset.Set) []charset.Class {
	var in []charset.Class
	for _, cl := range charset.Classes() {
		if cl.Set.SubsetOf(s) {
			in = append(in, cl)
		}
	}
	var out []charset.Class
	for i, a := range in {
		dominated := false
		for j, b := range in {
			if i == j || !a.Set.SubsetOf(b.Set) {
				continue
			}
			if len(b.Token) < len(a.Token) || (len(b.Token) == len(a.Token) && (!b.Set.Equal(a.Set) || j < i)) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, a)
		}
	}
	return out
}

func buildCover(s, covered charset.Set, chosen []charset.Class, negated bool) *cover {
	var b strings.Builder
	b.WriteByte('[')
	if negated {
		b.WriteByte('^')
	}
	for _, cl := range chosen {
		b.WriteString(cl.Token)
	}
	b.WriteString(remainder(s, covered))
	b.WriteByte(']')
	text := b.String()
	return &cover{text: text, size: utf8.RuneCountInString(text), named: len(chosen)}
}

// remainder renders the members of s not in covered. Within each maximal
// run of s it either spans from the first to the last uncovered member or
// lists the uncovered pieces, whichever is shorter.
func remainder(s, covered charset.Set) string {
	var b strings.Builder
	for _, run := range s.Ranges() {
		missing := charset.Span(run.Lo, run.Hi).Subtract(covered).Ranges()
		if len(missing) == 0 {
			continue
		}
		span := rangeText(missing[0].Lo, missing[len(missing)-1].Hi)
		var pieces strings.Builder
		for _, r := range missing {
			pieces.WriteString(rangeText(r.Lo, r.Hi))
		}
		if p := pieces.String(); utf8.RuneCountInString(p) < utf8.RuneCountInString(span) {
			b.WriteString(p)
		} else {
			b.WriteString(span)
		}
	}
	return b.String()
}

func rangeText(lo, hi rune) string {
	switch {
	case lo == hi:
		return escapeRune(lo, true)
	case hi == lo+1:
		return escapeRune(lo, true) + escapeRune(hi, true)
	}
	return escapeRune(lo, true) + "-" + escapeRune(hi, true)
}

func escapeRune(c rune, inClass bool) string {
	switch c {
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\v':
		return `\v`
	case '\f':
		return `\f`
	case '\a':
		return `\a`
	}
	switch {
	case c < 0x20 || c == 0x7f:
		return fmt.Sprintf(`\x%02X`, c)
	case c < utf8.RuneSelf:
		meta := metaChars
		if inClass {
			meta = classMetaChars
		}
		if strings.ContainsRune(meta, c) {
			return `\` + string(c)
		}
		return string(c)
	case unicode.IsPrint(c) && utf8.ValidRune(c):
		return string(c)
	}
	return fmt.Sprintf(`\x{%X}`, c)
}
