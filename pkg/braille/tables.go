package braille

import (
	"github.com/repeale/fp-go/option"
)

type entry struct {
	char rune
	dots string
}

// Plain letters. These win every reverse lookup collision.
var letters = []entry{
	{'a', "1"}, {'b', "12"}, {'c', "14"}, {'d', "145"}, {'e', "15"},
	{'f', "124"}, {'g', "1245"}, {'h', "125"}, {'i', "24"}, {'j', "245"},
	{'k', "13"}, {'l', "123"}, {'m', "134"}, {'n', "1345"}, {'o', "135"},
	{'p', "1234"}, {'q', "12345"}, {'r', "1235"}, {'s', "234"}, {'t', "2345"},
	{'u', "136"}, {'v', "1236"}, {'w', "2456"}, {'x', "1346"}, {'y', "13456"},
	{'z', "1356"},
}

var accented = []entry{
	{'á', "12356"}, {'é', "2346"}, {'í', "34"}, {'ó', "346"}, {'ú', "23456"},
	{'ü', "1256"},
	{'ñ', "12456"},
}

// Earlier entries win when two marks share a pattern ('!' over '+', '¿'
// over '=', '_' over '-'). '¡' loses to 'ú'.
var punctuation = []entry{
	{'.', "3"},
	{',', "2"},
	{';', "23"},
	{':', "25"},
	{'_', "36"},
	{'"', "236"},
	{'!', "235"},
	{'¡', "23456"},
	{'¿', "2356"},
	{'?', "26"},
	{'(', "126"},
	{')', "345"},
	{'+', "235"},
	{'=', "2356"},
	{'÷', "256"},
	{'-', "36"},
}

// Digits reuse the patterns of a-j.
var digits = []entry{
	{'1', "1"}, {'2', "12"}, {'3', "14"}, {'4', "145"}, {'5', "15"},
	{'6', "124"}, {'7', "1245"}, {'8', "125"}, {'9', "24"}, {'0', "245"},
}

// Multiplication sign used between digits when enabled.
var MultiplicationPattern = MustDots("236")

// Table is an immutable two-way association between characters and cells.
type Table struct {
	forward map[rune]Dots
	reverse map[Dots]rune
}

// newTable builds a table from groups given in priority order: the first
// group, and the first entry within a group, to claim a pattern keeps it.
func newTable(groups ...[]entry) *Table {
	table := &Table{
		forward: make(map[rune]Dots),
		reverse: make(map[Dots]rune),
	}

	for _, group := range groups {
		for _, e := range group {
			dots := MustDots(e.dots)
			table.forward[e.char] = dots
			if _, taken := table.reverse[dots]; !taken {
				table.reverse[dots] = e.char
			}
		}
	}

	return table
}

func (t *Table) Cell(char rune) opt.Option[Dots] {
	dots, ok := t.forward[char]
	if !ok {
		return opt.None[Dots]()
	}
	return opt.Some(dots)
}

func (t *Table) Char(dots Dots) opt.Option[rune] {
	char, ok := t.reverse[dots]
	if !ok {
		return opt.None[rune]()
	}
	return opt.Some(char)
}

func (t *Table) Len() int {
	return len(t.forward)
}

var (
	// TextTable covers letters, accented letters, ñ and punctuation.
	TextTable = newTable(letters, accented, punctuation)
	// DigitTable covers 0-9 after a numeric prefix.
	DigitTable = newTable(digits)
)

func isConnector(r rune) bool {
	return r == '.' || r == ','
}
