package braille

import (
	"strings"
	"unicode"

	"github.com/repeale/fp-go/option"
)

// Placeholder stands in for every symbol that cannot be decoded.
const Placeholder = '�'

var placeholder = string(Placeholder)

// Decode transcribes a sequence back into text. It never fails; each
// unrecognised symbol becomes one Placeholder.
func Decode(sequence Sequence) string {
	var builder strings.Builder

	mode := Normal
	for i := 0; i < len(sequence); {
		var (
			text     string
			consumed int
		)
		mode, text, consumed = decodeSymbol(mode, sequence[i:])
		builder.WriteString(text)
		i += consumed
	}

	return builder.String()
}

// DecodeString parses and decodes a wire string.
func DecodeString(wire string) string {
	return Decode(Parse(wire))
}

// decodeSymbol decodes the symbol at the head of rest. It returns the next
// mode, the text produced and how many symbols were used.
func decodeSymbol(mode Mode, rest Sequence) (Mode, string, int) {
	symbol := rest[0]

	switch symbol.Kind {
	case KindCapitalPrefix:
		// A capital prefix at the very end has nothing to apply to.
		if len(rest) < 2 {
			return Normal, "", 1
		}
		return Normal, decodeCapital(rest[1]), 2
	case KindNumericPrefix:
		return NumericRun, "", 1
	}

	if mode == NumericRun && symbol.Kind == KindCell {
		digit := DigitTable.Char(symbol.Dots)
		if opt.IsSome(digit) {
			return NumericRun, string(digit.Value), 1
		}

		// Separators inside a number keep the run going.
		mark := TextTable.Char(symbol.Dots)
		if opt.IsSome(mark) && isConnector(mark.Value) {
			return NumericRun, string(mark.Value), 1
		}
	}

	switch symbol.Kind {
	case KindSpace:
		return Normal, " ", 1
	case KindCell:
		char := TextTable.Char(symbol.Dots)
		if opt.IsSome(char) {
			return Normal, string(char.Value), 1
		}
	}

	return Normal, placeholder, 1
}

func decodeCapital(symbol Symbol) string {
	if symbol.Kind != KindCell {
		return placeholder
	}

	char := TextTable.Char(symbol.Dots)
	if opt.IsNone(char) {
		return placeholder
	}

	return string(unicode.ToUpper(char.Value))
}
