package braille

import (
	"strings"
)

type Kind uint8

const (
	KindCell Kind = iota
	KindNumericPrefix
	KindCapitalPrefix
	KindSpace
	// Input the tables could not transcode, carried through verbatim.
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindNumericPrefix:
		return "numeric"
	case KindCapitalPrefix:
		return "capital"
	case KindSpace:
		return "space"
	case KindLiteral:
		return "literal"
	}
	return "unknown"
}

// Wire tokens for the two control symbols.
const (
	NumericToken = "#"
	CapitalToken = "46"
)

// Patterns the control symbols are drawn with.
var (
	NumericPattern = Dot3 | Dot4 | Dot5 | Dot6
	CapitalPattern = Dot4 | Dot6
)

// Symbol is one element of an encoded sequence.
type Symbol struct {
	Kind    Kind
	Dots    Dots
	Literal string
}

func Cell(dots Dots) Symbol {
	return Symbol{Kind: KindCell, Dots: dots}
}

func Literal(s string) Symbol {
	return Symbol{Kind: KindLiteral, Literal: s}
}

var (
	NumericPrefix = Symbol{Kind: KindNumericPrefix}
	CapitalPrefix = Symbol{Kind: KindCapitalPrefix}
	Space         = Symbol{Kind: KindSpace}
)

// Token is the symbol's wire form. Spaces are the empty token.
func (s Symbol) Token() string {
	switch s.Kind {
	case KindCell:
		return s.Dots.String()
	case KindNumericPrefix:
		return NumericToken
	case KindCapitalPrefix:
		return CapitalToken
	case KindLiteral:
		return s.Literal
	}
	return ""
}

// Pattern returns the dots a renderer should raise for this symbol.
func (s Symbol) Pattern() Dots {
	switch s.Kind {
	case KindCell:
		return s.Dots
	case KindNumericPrefix:
		return NumericPattern
	case KindCapitalPrefix:
		return CapitalPattern
	}
	return 0
}

func (s Symbol) String() string {
	return s.Token()
}

// ParseToken classifies a single wire token. It never fails: tokens that are
// neither control tokens nor canonical dot strings become literals.
func ParseToken(token string) Symbol {
	switch token {
	case "":
		return Space
	case NumericToken:
		return NumericPrefix
	case CapitalToken:
		return CapitalPrefix
	}

	if dots, ok := ParseDots(token); ok {
		return Cell(dots)
	}

	return Literal(token)
}

// Sequence is an encoded text in reading order.
type Sequence []Symbol

// String joins the tokens with single spaces. A space symbol is an empty
// token, so it shows up as two consecutive separators.
func (s Sequence) String() string {
	tokens := make([]string, len(s))
	for i, symbol := range s {
		tokens[i] = symbol.Token()
	}
	return strings.Join(tokens, " ")
}

// Braille renders the sequence with Unicode Braille Patterns. Literals are
// kept as they are.
func (s Sequence) Braille() string {
	var builder strings.Builder
	for _, symbol := range s {
		if symbol.Kind == KindLiteral {
			builder.WriteString(symbol.Literal)
			continue
		}
		builder.WriteRune(symbol.Pattern().Rune())
	}
	return builder.String()
}

// Parse splits a wire string on single spaces. The empty string is the empty
// sequence.
func Parse(wire string) Sequence {
	if wire == "" {
		return Sequence{}
	}

	tokens := strings.Split(wire, " ")
	sequence := make(Sequence, len(tokens))
	for i, token := range tokens {
		sequence[i] = ParseToken(token)
	}
	return sequence
}
