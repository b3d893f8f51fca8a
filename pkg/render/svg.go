package render

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const (
	MediaTypeSVG = "image/svg+xml"

	inactiveFill   = "#e0e0e0"
	inactiveStroke = "#999"
	activeFill     = "#000"
)

type svgDocument struct {
	XMLName    xml.Name   `xml:"http://www.w3.org/2000/svg svg"`
	Width      string     `xml:"width,attr"`
	Height     string     `xml:"height,attr"`
	ViewBox    string     `xml:"viewBox,attr"`
	Background svgRect    `xml:"rect"`
	Caption    svgText    `xml:"text"`
	Cells      []svgGroup `xml:"g"`
}

type svgRect struct {
	Width       string `xml:"width,attr"`
	Height      string `xml:"height,attr"`
	Fill        string `xml:"fill,attr"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
}

type svgText struct {
	X          string `xml:"x,attr"`
	Y          string `xml:"y,attr"`
	FontFamily string `xml:"font-family,attr"`
	FontSize   string `xml:"font-size,attr"`
	FontWeight string `xml:"font-weight,attr"`
	TextAnchor string `xml:"text-anchor,attr"`
	Fill       string `xml:"fill,attr"`
	Text       string `xml:",chardata"`
}

type svgGroup struct {
	Comment string      `xml:",comment"`
	Circles []svgCircle `xml:"circle"`
}

type svgCircle struct {
	CX          string `xml:"cx,attr"`
	CY          string `xml:"cy,attr"`
	R           string `xml:"r,attr"`
	Fill        string `xml:"fill,attr"`
	Stroke      string `xml:"stroke,attr,omitempty"`
	StrokeWidth string `xml:"stroke-width,attr,omitempty"`
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Comments may not contain "--" or end in "-".
func commentText(s string) string {
	return " " + strings.ReplaceAll(s, "-", "‐") + " "
}

func (d Drawing) document() svgDocument {
	width := number(d.Width)
	height := number(d.Height)

	doc := svgDocument{
		Width:   width,
		Height:  height,
		ViewBox: fmt.Sprintf("0 0 %s %s", width, height),
		Background: svgRect{
			Width:       width,
			Height:      height,
			Fill:        "#ffffff",
			Stroke:      "#cccccc",
			StrokeWidth: "1",
		},
		Caption: svgText{
			X:          number(d.Width / 2),
			Y:          number(Margin + 15),
			FontFamily: "Arial, sans-serif",
			FontSize:   "18",
			FontWeight: "bold",
			TextAnchor: "middle",
			Fill:       "#000",
			Text:       d.Caption,
		},
		Cells: make([]svgGroup, len(d.Cells)),
	}

	for i, cell := range d.Cells {
		group := svgGroup{
			Comment: commentText(fmt.Sprintf("cell %d: %s", cell.Index+1, cell.Token)),
			Circles: make([]svgCircle, 0, len(cell.Dots)),
		}
		for _, dot := range cell.Dots {
			circle := svgCircle{
				CX: number(dot.X),
				CY: number(dot.Y),
				R:  number(DotRadius),
			}
			if dot.Active {
				circle.Fill = activeFill
			} else {
				circle.Fill = inactiveFill
				circle.Stroke = inactiveStroke
				circle.StrokeWidth = "0.5"
			}
			group.Circles = append(group.Circles, circle)
		}
		doc.Cells[i] = group
	}

	return doc
}

// SVG serializes the drawing. The same drawing always yields the same bytes.
func (d Drawing) SVG() ([]byte, error) {
	data, err := xml.MarshalIndent(d.document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not marshal svg: %w", err)
	}
	return data, nil
}
