package braille

import (
	"unicode"

	"github.com/repeale/fp-go/option"
)

// Mode is the transcription state carried from one symbol to the next.
type Mode uint8

const (
	Normal Mode = iota
	// NumericRun is entered by a numeric prefix and lasts until a
	// non-digit, non-connector character.
	NumericRun
)

func (m Mode) String() string {
	if m == NumericRun {
		return "numeric"
	}
	return "normal"
}

type Options struct {
	// Write 'x' between digits as the multiplication sign (dots 236).
	MultiplicationSign bool
}

// none marks a missing neighbour at either end of the input.
const none rune = -1

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Encode transcribes text with the default options.
func Encode(text string) Sequence {
	return EncodeWith(text, Options{})
}

func EncodeWith(text string, opts Options) Sequence {
	runes := []rune(text)
	sequence := make(Sequence, 0, len(runes))

	mode := Normal
	for i, r := range runes {
		prev, next := none, none
		if i > 0 {
			prev = runes[i-1]
		}
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		var symbols []Symbol
		mode, symbols = encodeRune(mode, prev, r, next, opts)
		sequence = append(sequence, symbols...)
	}

	return sequence
}

// encodeRune emits the symbols for r and returns the mode for the next rune.
func encodeRune(mode Mode, prev, r, next rune, opts Options) (Mode, []Symbol) {
	if isDigit(r) {
		cell := DigitTable.Cell(r)
		if mode != NumericRun {
			return NumericRun, []Symbol{NumericPrefix, Cell(cell.Value)}
		}
		return NumericRun, []Symbol{Cell(cell.Value)}
	}

	if unicode.IsUpper(r) {
		cell := TextTable.Cell(unicode.ToLower(r))
		if opt.IsSome(cell) {
			return Normal, []Symbol{CapitalPrefix, Cell(cell.Value)}
		}
	}

	if isConnector(r) && (isDigit(prev) || isDigit(next)) {
		cell := TextTable.Cell(r)
		return mode, []Symbol{Cell(cell.Value)}
	}

	if unicode.IsSpace(r) {
		return Normal, []Symbol{Space}
	}

	if opts.MultiplicationSign && r == 'x' && (isDigit(prev) || isDigit(next)) {
		return Normal, []Symbol{Cell(MultiplicationPattern)}
	}

	cell := TextTable.Cell(unicode.ToLower(r))
	if opt.IsNone(cell) {
		return Normal, []Symbol{Literal(string(r))}
	}

	return Normal, []Symbol{Cell(cell.Value)}
}
