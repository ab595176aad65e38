package report

import "math"

// Measurer wraps text to a width using the font metrics of the renderer.
type Measurer interface {
	SplitText(text string, width float64) []string
}

type Geometry struct {
	PageWidth     float64
	PageHeight    float64
	Margin        float64
	LabelWidth    float64
	FirstY        float64
	ContinuationY float64
	BottomReserve float64
	SectionBreak  float64
	SectionHeight float64
	RowHeight     float64
	LineHeight    float64
	RowPadding    float64
	TextRowMax    float64
}

// A4 is the portrait page all reports are laid out on, in millimetres.
var A4 = Geometry{
	PageWidth:     210,
	PageHeight:    297,
	Margin:        12,
	LabelWidth:    50,
	FirstY:        48,
	ContinuationY: 15,
	BottomReserve: 25,
	SectionBreak:  8,
	SectionHeight: 7,
	RowHeight:     7,
	LineHeight:    4,
	RowPadding:    3,
	TextRowMax:    40,
}

func (g Geometry) TableWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

func (g Geometry) ValueWidth() float64 {
	return g.TableWidth() - g.LabelWidth
}

// PlacedBlock is a block positioned on a page together with the value lines
// to draw.
type PlacedBlock struct {
	Block
	Y      float64
	Height float64
	Lines  []string
}

type Page struct {
	Number int
	Blocks []PlacedBlock
}

// Layout assigns every block of doc to a page. A block that would cross the
// bottom reserve moves to a new page unless the current page is still empty.
func Layout(doc *Document, m Measurer, g Geometry) []Page {
	pages := []Page{{Number: 1}}
	y := g.FirstY
	limit := g.PageHeight - g.BottomReserve

	place := func(b Block, need, height float64, lines []string) {
		current := &pages[len(pages)-1]
		if y+need > limit && len(current.Blocks) > 0 {
			pages = append(pages, Page{Number: len(pages) + 1})
			current = &pages[len(pages)-1]
			y = g.ContinuationY
		}

		current.Blocks = append(current.Blocks, PlacedBlock{Block: b, Y: y, Height: height, Lines: lines})
		y += height
	}

	wrapWidth := g.ValueWidth() - 4

	for _, b := range doc.Blocks {
		switch b.Kind {
		case KindSection:
			place(b, g.SectionBreak, g.SectionHeight, nil)

		case KindRow:
			place(b, g.RowHeight, g.RowHeight, []string{truncate(b.Value)})

		case KindTextRow:
			if b.Value == "" {
				continue
			}
			lines := m.SplitText(b.Value, wrapWidth)
			height := math.Max(g.RowHeight, math.Min(float64(len(lines))*g.LineHeight+g.RowPadding, g.TextRowMax))
			maxLines := int(math.Floor((height - g.RowPadding) / g.LineHeight))
			if len(lines) > maxLines {
				lines = lines[:maxLines]
			}
			place(b, height, height, lines)

		case KindArrayRow:
			lines := m.SplitText(b.Value, wrapWidth)
			height := math.Max(g.RowHeight, float64(len(lines))*g.LineHeight+g.RowPadding)
			place(b, height, height, lines)
		}
	}

	return pages
}
