// Package charset implements canonical character sets over the rune alphabet.
//
// A Set is stored as a sorted list of disjoint, non-adjacent inclusive ranges.
// Negation is resolved when the set is built, so two sets are equal exactly
// when their range lists are equal.
package charset

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// MaxRune is the last code point of the alphabet.
const MaxRune = unicode.MaxRune

// Range is an inclusive range of code points.
type Range struct {
	Lo, Hi rune
}

// Set is an immutable canonical character set.
type Set struct {
	ranges []Range
}

// FromRanges builds a canonical set from arbitrary (possibly overlapping,
// unsorted) ranges. When negated is set the result is the complement of the
// listed ranges within the alphabet.
func FromRanges(ranges []Range, negated bool) Set {
	s := Set{ranges: canonicalize(ranges)}
	if negated {
		return s.Complement()
	}
	return s
}

// Char returns the set holding only c.
func Char(c rune) Set {
	return Set{ranges: []Range{{c, c}}}
}

// Span returns the set lo..hi inclusive. Reversed bounds are swapped.
func Span(lo, hi rune) Set {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Set{ranges: []Range{{lo, hi}}}
}

// Chars returns the set of the given runes.
func Chars(cs ...rune) Set {
	ranges := make([]Range, len(cs))
	for i, c := range cs {
		ranges[i] = Range{c, c}
	}
	return FromRanges(ranges, false)
}

// Full returns the whole alphabet.
func Full() Set {
	return Set{ranges: []Range{{0, MaxRune}}}
}

func canonicalize(in []Range) []Range {
	if len(in) == 0 {
		return nil
	}
	rs := make([]Range, 0, len(in))
	for _, r := range in {
		if r.Lo > r.Hi {
			r.Lo, r.Hi = r.Hi, r.Lo
		}
		if r.Lo < 0 {
			r.Lo = 0
		}
		if r.Hi > MaxRune {
			r.Hi = MaxRune
		}
		if r.Lo > r.Hi {
			continue
		}
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Lo != rs[j].Lo {
			return rs[i].Lo < rs[j].Lo
		}
		return rs[i].Hi < rs[j].Hi
	})
	out := rs[:0]
	for _, r := range rs {
		if n := len(out); n > 0 && r.Lo <= out[n-1].Hi+1 {
			if r.Hi > out[n-1].Hi {
				out[n-1].Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// Ranges returns a copy of the canonical range list.
func (s Set) Ranges() []Range {
	return append([]Range(nil), s.ranges...)
}

// IsEmpty reports whether the set holds no characters.
func (s Set) IsEmpty() bool {
	return len(s.ranges) == 0
}

// IsFull reports whether the set is the whole alphabet.
func (s Set) IsFull() bool {
	return len(s.ranges) == 1 && s.ranges[0].Lo == 0 && s.ranges[0].Hi == MaxRune
}

// Len returns the number of characters in the set.
func (s Set) Len() int {
	n := 0
	for _, r := range s.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// Single returns the only member of a one-character set.
func (s Set) Single() (rune, bool) {
	if len(s.ranges) == 1 && s.ranges[0].Lo == s.ranges[0].Hi {
		return s.ranges[0].Lo, true
	}
	return 0, false
}

// Contains reports whether c is a member of the set.
func (s Set) Contains(c rune) bool {
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].Hi >= c })
	return i < len(s.ranges) && s.ranges[i].Lo <= c
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	if len(o.ranges) == 0 {
		return s
	}
	if len(s.ranges) == 0 {
		return o
	}
	all := make([]Range, 0, len(s.ranges)+len(o.ranges))
	all = append(all, s.ranges...)
	all = append(all, o.ranges...)
	return Set{ranges: canonicalize(all)}
}

// Complement returns the alphabet minus s.
func (s Set) Complement() Set {
	var out []Range
	next := rune(0)
	for _, r := range s.ranges {
		if r.Lo > next {
			out = append(out, Range{next, r.Lo - 1})
		}
		next = r.Hi + 1
	}
	if next <= MaxRune {
		out = append(out, Range{next, MaxRune})
	}
	return Set{ranges: out}
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	var out []Range
	i, j := 0, 0
	for i < len(s.ranges) && j < len(o.ranges) {
		a, b := s.ranges[i], o.ranges[j]
		lo, hi := max(a.Lo, b.Lo), min(a.Hi, b.Hi)
		if lo <= hi {
			out = append(out, Range{lo, hi})
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return Set{ranges: out}
}

// Subtract returns s minus o.
func (s Set) Subtract(o Set) Set {
	return s.Intersect(o.Complement())
}

// SubsetOf reports whether every member of s is in o.
func (s Set) SubsetOf(o Set) bool {
	return s.Subtract(o).IsEmpty()
}

// Equal reports whether both sets hold the same characters.
func (s Set) Equal(o Set) bool {
	if len(s.ranges) != len(o.ranges) {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i] != o.ranges[i] {
			return false
		}
	}
	return true
}

// Compare orders sets by their range lists. It returns -1, 0 or +1.
func (s Set) Compare(o Set) int {
	for i := 0; i < len(s.ranges) && i < len(o.ranges); i++ {
		a, b := s.ranges[i], o.ranges[i]
		switch {
		case a.Lo != b.Lo:
			return cmp(a.Lo, b.Lo)
		case a.Hi != b.Hi:
			return cmp(a.Hi, b.Hi)
		}
	}
	return cmp(rune(len(s.ranges)), rune(len(o.ranges)))
}

func cmp(a, b rune) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MatchesNamedClass returns the token of the named class equal to s, if any.
func (s Set) MatchesNamedClass() (string, bool) {
	for _, c := range Classes() {
		if c.Set.Equal(s) {
			return c.Token, true
		}
	}
	return "", false
}

// Dot is the set matched by '.': everything except newline.
func Dot() Set {
	return dot
}

var dot = Char('\n').Complement()

// String renders the range list for debugging.
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, r := range s.ranges {
		if i > 0 {
			b.WriteByte(' ')
		}
		if r.Lo == r.Hi {
			fmt.Fprintf(&b, "%U", r.Lo)
		} else {
			fmt.Fprintf(&b, "%U-%U", r.Lo, r.Hi)
		}
	}
	b.WriteByte('}')
	return b.String()
}
