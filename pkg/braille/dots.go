// Package braille transcribes Spanish text to six-dot Braille cells and back.
package braille

import (
	"strings"
)

// Dots is the set of raised dots in a six-dot cell. Bit n-1 is dot n.
//
//	1 4
//	2 5
//	3 6
type Dots uint8

const (
	Dot1 Dots = 1 << iota
	Dot2
	Dot3
	Dot4
	Dot5
	Dot6
)

const allDots = Dot1 | Dot2 | Dot3 | Dot4 | Dot5 | Dot6

// The Unicode Braille Patterns block uses the same bit order for dots 1-6.
const patternBase = 0x2800

// Has reports whether dot position pos (1-6) is raised.
func (d Dots) Has(pos int) bool {
	if pos < 1 || pos > 6 {
		return false
	}
	return d&(1<<(pos-1)) != 0
}

// Positions returns the raised positions in ascending order.
func (d Dots) Positions() []int {
	positions := make([]int, 0, 6)
	for pos := 1; pos <= 6; pos++ {
		if d.Has(pos) {
			positions = append(positions, pos)
		}
	}
	return positions
}

// String returns the canonical form, e.g. "145".
func (d Dots) String() string {
	var builder strings.Builder
	for pos := 1; pos <= 6; pos++ {
		if d.Has(pos) {
			builder.WriteByte(byte('0' + pos))
		}
	}
	return builder.String()
}

func (d Dots) Rune() rune {
	return rune(patternBase + int(d&allDots))
}

// Mirror swaps the left and right columns, which is how a cell looks from
// the back of an embossed sheet.
func (d Dots) Mirror() Dots {
	left := d & (Dot1 | Dot2 | Dot3)
	right := d & (Dot4 | Dot5 | Dot6)
	return left<<3 | right>>3
}

// ParseDots reads a canonical dot string. Positions must be 1-6, strictly
// ascending and non-empty; anything else is rejected.
func ParseDots(s string) (Dots, bool) {
	if len(s) == 0 || len(s) > 6 {
		return 0, false
	}

	var dots Dots
	last := 0
	for i := 0; i < len(s); i++ {
		pos := int(s[i] - '0')
		if pos < 1 || pos > 6 || pos <= last {
			return 0, false
		}
		dots |= 1 << (pos - 1)
		last = pos
	}

	return dots, true
}

// MustDots is ParseDots for table literals.
func MustDots(s string) Dots {
	dots, ok := ParseDots(s)
	if !ok {
		panic("braille: invalid dot string " + s)
	}
	return dots
}
