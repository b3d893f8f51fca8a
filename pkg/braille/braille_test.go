package braille

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func count(sequence Sequence, kind Kind) int {
	n := 0
	for _, symbol := range sequence {
		if symbol.Kind == kind {
			n++
		}
	}
	return n
}

func TestEncode(t *testing.T) {
	cases := []struct {
		text string
		wire string
	}{
		{"", ""},
		{"hola", "125 135 123 1"},
		{"Hola", "46 125 135 123 1"},
		{"2024", "# 12 245 12 145"},
		{"A", "46 1"},
		{"a b", "1  12"},
		{"Hola, mundo.", "46 125 135 123 1 2  134 136 1345 145 135 3"},
		{"2.329,724", "# 12 3 14 12 24 2 1245 12 145"},
		{".5", "3 # 15"},
		{"12 34", "# 1 12  # 14 145"},
		{"año", "1 12456 135"},
		{"ÑU", "46 12456 46 136"},
		{"a@b", "1 @ 12"},
		{"Ç", "Ç"},
		{"3x4", "# 14 1346 # 145"},
	}

	for _, c := range cases {
		assert.Equal(t, c.wire, Encode(c.text).String(), "encode %q", c.text)
	}
}

func TestEncodeMultiplicationSign(t *testing.T) {
	opts := Options{MultiplicationSign: true}
	assert.Equal(t, "# 14 236 # 145", EncodeWith("3x4", opts).String())
	// Only next to digits.
	assert.Equal(t, "1346 1", EncodeWith("xa", opts).String())
}

func TestEncodeEmpty(t *testing.T) {
	assert.Empty(t, Encode(""))
	assert.Equal(t, "", Decode(Encode("")))
	assert.Equal(t, "", DecodeString(""))
}

func TestNumericPrefixOncePerRun(t *testing.T) {
	for _, text := range []string{"7", "2024", "1234567890", "x 99 y"} {
		sequence := Encode(text)
		assert.Equal(t, 1, count(sequence, KindNumericPrefix), text)

		// The prefix comes right before the first digit.
		for i, symbol := range sequence {
			if symbol.Kind == KindNumericPrefix {
				assert.Equal(t, KindCell, sequence[i+1].Kind)
			}
		}
	}

	assert.Equal(t, 3, count(Encode("1 22 333"), KindNumericPrefix))
	assert.Equal(t, 2, count(Encode("1a2"), KindNumericPrefix))
}

func TestCapitalPrefix(t *testing.T) {
	for _, text := range []string{"A", "Z", "Á", "É", "Ñ", "Ü"} {
		sequence := Encode(text)
		if assert.Len(t, sequence, 2, text) {
			assert.Equal(t, KindCapitalPrefix, sequence[0].Kind)
			assert.Equal(t, KindCell, sequence[1].Kind)
		}
		assert.Equal(t, text, Decode(sequence))
	}
}

func TestDecode(t *testing.T) {
	cases := []struct {
		wire string
		text string
	}{
		{"125 135 123 1", "hola"},
		{"46 125", "H"},
		{"46 125 135 123 1", "Hola"},
		{"# 12 14", "23"},
		{"46 125 135 123 1 2 134 136 1345 145 135 3", "Hola,mundo."},
		{"1  12", "a b"},
		{"# 12 3 14 12 24 2 1245 12 145", "2.329,724"},
		// Leaving a run through a non-digit cell decodes it normally.
		{"# 12 134", "2m"},
		{"# 12  1", "2 a"},
		// Trailing prefixes emit nothing.
		{"1 46", "a"},
		{"1 #", "a"},
		// Unknown symbols become one placeholder each.
		{"1 @ 12", "a�b"},
		{"541", "�"},
		{"1 123456 12", "a�b"},
		{"46 9", "�"},
		{"46 46 1", "�a"},
		{"46 ", "�"},
	}

	for _, c := range cases {
		assert.Equal(t, c.text, DecodeString(c.wire), "decode %q", c.wire)
	}
}

func TestDecodePriority(t *testing.T) {
	// Letters beat punctuation.
	assert.Equal(t, "ú", DecodeString("23456"))
	// Earlier punctuation beats later punctuation.
	assert.Equal(t, "!", DecodeString("235"))
	assert.Equal(t, "¿", DecodeString("2356"))
	assert.Equal(t, "_", DecodeString("36"))
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"hola",
		"Hola, mundo.",
		"¿Qué hora es?",
		"El año 2024 tiene 366 días.",
		"Precio: 1.500,25 pesos",
		"(nota) ÑANDÚ pingüino",
		"  dos  espacios ",
		"Tel. 555",
		"3x4",
		".5",
		"a; b: c \"d\" ÷ e",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"abcdefghijklmnopqrstuvwxyz áéíóúüñ",
		"0 1 2 3 4 5 6 7 8 9",
	}

	for _, text := range texts {
		wire := Encode(text).String()
		assert.Equal(t, text, DecodeString(wire), "round trip %q via %q", text, wire)
	}
}

func TestLetterAfterNumberIsAmbiguous(t *testing.T) {
	// a-j share their patterns with the digits, so a letter straight after a
	// number is read back as a digit.
	assert.Equal(t, "21", DecodeString(Encode("2a").String()))
	assert.Equal(t, "5.1", DecodeString(Encode("5.a").String()))
}

func TestUnmappedPassThrough(t *testing.T) {
	sequence := Encode("a€b")
	if assert.Len(t, sequence, 3) {
		assert.Equal(t, Literal("€"), sequence[1])
	}
	assert.Equal(t, "a�b", Decode(sequence))
}

func TestConcurrentCodec(t *testing.T) {
	inputs := []string{"Hola", "2.329,724", "¿Qué año?", "Ñandú 3x4", "adiós"}

	expected := make([]string, len(inputs))
	for i, input := range inputs {
		expected[i] = Encode(input).String()
	}

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for round := 0; round < 50; round++ {
				for i, input := range inputs {
					wire := Encode(input).String()
					assert.Equal(t, expected[i], wire)
					assert.Equal(t, Decode(Encode(input)), DecodeString(wire))
				}
			}
		}()
	}
	wg.Wait()
}
