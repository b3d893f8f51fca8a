package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cfoust/tactilink/pkg/braille"
	"github.com/cfoust/tactilink/pkg/render"

	"golang.org/x/term"
)

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// encode writes the wire form of text. People at a terminal also get the
// Unicode Braille rendition on a second line.
func encode(w io.Writer, text string, multiplicationSign bool) error {
	sequence := braille.EncodeWith(text, braille.Options{
		MultiplicationSign: multiplicationSign,
	})

	if _, err := fmt.Fprintln(w, sequence.String()); err != nil {
		return err
	}

	if isTerminal(w) {
		_, err := fmt.Fprintln(w, sequence.Braille())
		return err
	}

	return nil
}

func decode(w io.Writer, codes string) error {
	_, err := fmt.Fprintln(w, braille.DecodeString(codes))
	return err
}

func drawSign(w io.Writer, text string, mirror bool, png bool, scale int) error {
	sequence := braille.Encode(text)

	var drawing render.Drawing
	if mirror {
		drawing = render.RenderMirror(sequence, text)
	} else {
		drawing = render.Render(sequence, text)
	}

	if png {
		if scale < 1 {
			return fmt.Errorf("scale must be at least 1, got %d", scale)
		}
		return drawing.PNG(w, scale)
	}

	data, err := drawing.SVG()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func renderSign(text string, mirror bool, png bool, scale int, output string) error {
	if output == "" {
		if png && isTerminal(os.Stdout) {
			return fmt.Errorf("refusing to write a PNG to a terminal; use -o")
		}
		return drawSign(os.Stdout, text, mirror, png, scale)
	}

	var buffer bytes.Buffer
	if err := drawSign(&buffer, text, mirror, png, scale); err != nil {
		return err
	}

	if err := os.WriteFile(output, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", output, err)
	}
	return nil
}
