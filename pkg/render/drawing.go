// Package render lays out encoded sequences as Braille signage: a caption
// above one six-dot cell per symbol.
package render

import (
	"github.com/cfoust/tactilink/pkg/braille"
)

// Geometry, in SVG user units.
const (
	Margin        = 20
	CellWidth     = 25
	CellHeight    = 35
	CaptionHeight = 30
	DotRadius     = 3
	DotPitch      = 10

	// Offset of dot 1 from the top left corner of a cell's slot.
	cellInset = 5
)

type Dot struct {
	Position int
	X, Y     float64
	Active   bool
}

type Cell struct {
	Index int
	Token string
	X, Y  float64
	Dots  [6]Dot
}

// Drawing is a complete piece of signage. It is never modified after
// Render returns it.
type Drawing struct {
	Width    float64
	Height   float64
	Caption  string
	Mirrored bool
	Cells    []Cell
}

// Render lays out one cell per symbol, left to right.
func Render(sequence braille.Sequence, caption string) Drawing {
	drawing := newDrawing(len(sequence), caption)
	for i, symbol := range sequence {
		drawing.Cells[i] = layoutCell(i, symbol.Token(), symbol.Pattern())
	}
	return drawing
}

// RenderMirror lays out the sequence as seen from the back of the sheet,
// which is what an embosser punching from behind needs: cells run right to
// left and each cell's columns are swapped. The caption stays readable.
func RenderMirror(sequence braille.Sequence, caption string) Drawing {
	drawing := newDrawing(len(sequence), caption)
	drawing.Mirrored = true

	last := len(sequence) - 1
	for i, symbol := range sequence {
		slot := last - i
		drawing.Cells[slot] = layoutCell(slot, symbol.Token(), symbol.Pattern().Mirror())
	}
	return drawing
}

func newDrawing(cells int, caption string) Drawing {
	return Drawing{
		Width:   float64(2*Margin + CellWidth*cells),
		Height:  float64(2*Margin + CaptionHeight + CellHeight),
		Caption: caption,
		Cells:   make([]Cell, cells),
	}
}

func layoutCell(index int, token string, pattern braille.Dots) Cell {
	cell := Cell{
		Index: index,
		Token: token,
		X:     float64(Margin + index*CellWidth + cellInset),
		Y:     float64(Margin + CaptionHeight + cellInset),
	}

	for pos := 1; pos <= 6; pos++ {
		column := (pos - 1) / 3
		row := (pos - 1) % 3
		cell.Dots[pos-1] = Dot{
			Position: pos,
			X:        cell.X + float64(column*DotPitch),
			Y:        cell.Y + float64(row*DotPitch),
			Active:   pattern.Has(pos),
		}
	}

	return cell
}

// Active returns the raised positions of a cell in ascending order.
func (c Cell) Active() []int {
	positions := make([]int, 0, 6)
	for _, dot := range c.Dots {
		if dot.Active {
			positions = append(positions, dot.Position)
		}
	}
	return positions
}
