package report

import (
	"bytes"
	"fmt"
	"github.com/go-pdf/fpdf"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	fontFamily = "Helvetica"
	logoName   = "report-logo"
	logoWidth  = 35
	logoHeight = 20
)

type rgb struct{ r, g, b int }

var (
	colorPrimaryDark = rgb{15, 23, 42}
	colorWhite       = rgb{255, 255, 255}
	colorLightGray   = rgb{248, 250, 252}
	colorBorderGray  = rgb{226, 232, 240}
	colorTextDark    = rgb{30, 41, 59}
	colorTextMuted   = rgb{71, 85, 105}
)

// Renderer draws a laid out Document with fpdf using the core Helvetica
// font, so text is converted to cp1252 first.
type Renderer struct {
	LogoPath string
	Geometry Geometry
}

func NewRenderer(logoPath string) *Renderer {
	return &Renderer{LogoPath: logoPath, Geometry: A4}
}

type fpdfMeasurer struct {
	pdf *fpdf.Fpdf
}

func (m fpdfMeasurer) SplitText(text string, width float64) []string {
	m.pdf.SetFont(fontFamily, "", 8)

	lines := m.pdf.SplitLines([]byte(text), width)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, string(line))
	}
	return out
}

// Render writes the PDF to w and returns its page count.
func (r *Renderer) Render(w io.Writer, doc *Document) (int, error) {
	g := r.Geometry

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.CreatedAt)
	pdf.SetModificationDate(doc.CreatedAt)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("infinitech-web", false)

	clean := sanitize(doc, pdf.UnicodeTranslatorFromDescriptor(""))
	pages := Layout(clean, fpdfMeasurer{pdf: pdf}, g)
	logo := r.registerLogo(pdf)

	for _, page := range pages {
		pdf.AddPage()
		if page.Number == 1 {
			r.firstHeader(pdf, clean, logo)
		} else {
			r.continuationHeader(pdf, clean)
		}

		for _, b := range page.Blocks {
			r.drawBlock(pdf, b)
		}
	}

	for i := 1; i <= len(pages); i++ {
		pdf.SetPage(i)
		r.footer(pdf, clean.Footer, i, len(pages))
	}

	if err := pdf.Output(w); err != nil {
		return 0, err
	}
	return len(pages), nil
}

// registerLogo returns the image name to draw, or "" when the logo file is
// missing or unreadable.
func (r *Renderer) registerLogo(pdf *fpdf.Fpdf) string {
	if r.LogoPath == "" {
		return ""
	}

	data, err := os.ReadFile(r.LogoPath)
	if err != nil {
		return ""
	}

	opts := fpdf.ImageOptions{ImageType: strings.TrimPrefix(strings.ToUpper(filepath.Ext(r.LogoPath)), ".")}
	pdf.RegisterImageOptionsReader(logoName, opts, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return ""
	}

	return logoName
}

func (r *Renderer) firstHeader(pdf *fpdf.Fpdf, doc *Document, logo string) {
	g := r.Geometry

	setFill(pdf, colorWhite)
	pdf.Rect(0, 0, g.PageWidth, 45, "F")

	lines := doc.Header
	if doc.Logo && logo != "" && len(lines) > 0 {
		pdf.ImageOptions(logo, (g.PageWidth-logoWidth)/2, 4, logoWidth, logoHeight, false, fpdf.ImageOptions{}, 0, "")
		lines = lines[1:]
	}

	for _, line := range lines {
		style := ""
		if line.Bold {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, line.Size)
		if line.Muted {
			setText(pdf, colorTextMuted)
		} else {
			setText(pdf, colorPrimaryDark)
		}
		centered(pdf, g.PageWidth/2, line.Y, line.Text)
	}
}

func (r *Renderer) continuationHeader(pdf *fpdf.Fpdf, doc *Document) {
	g := r.Geometry

	pdf.SetFont(fontFamily, "", 7)
	setText(pdf, colorTextMuted)
	centered(pdf, g.PageWidth/2, 8, doc.Title)

	setDraw(pdf, colorBorderGray)
	pdf.Line(g.Margin, 11, g.PageWidth-g.Margin, 11)
}

func (r *Renderer) drawBlock(pdf *fpdf.Fpdf, b PlacedBlock) {
	g := r.Geometry
	tableWidth := g.TableWidth()

	if b.Kind == KindSection {
		setFill(pdf, colorPrimaryDark)
		pdf.Rect(g.Margin, b.Y, tableWidth, b.Height, "F")
		setDraw(pdf, colorBorderGray)
		pdf.Rect(g.Margin, b.Y, tableWidth, b.Height, "D")

		setText(pdf, colorWhite)
		pdf.SetFont(fontFamily, "B", 8)
		pdf.Text(g.Margin+3, b.Y+5, b.Label)
		return
	}

	bg := colorWhite
	if b.Alt {
		bg = colorLightGray
	}
	setFill(pdf, bg)
	pdf.Rect(g.Margin, b.Y, tableWidth, b.Height, "F")
	setDraw(pdf, colorBorderGray)
	pdf.Rect(g.Margin, b.Y, g.LabelWidth, b.Height, "D")
	pdf.Rect(g.Margin+g.LabelWidth, b.Y, g.ValueWidth(), b.Height, "D")

	setText(pdf, colorTextMuted)
	pdf.SetFont(fontFamily, "B", 8)
	pdf.Text(g.Margin+2, b.Y+5, b.Label)

	setText(pdf, colorTextDark)
	pdf.SetFont(fontFamily, "", 8)
	for i, line := range b.Lines {
		pdf.Text(g.Margin+g.LabelWidth+2, b.Y+5+float64(i)*g.LineHeight, line)
	}
}

func (r *Renderer) footer(pdf *fpdf.Fpdf, text string, page, total int) {
	g := r.Geometry
	top := g.PageHeight - 18

	setFill(pdf, colorWhite)
	pdf.Rect(0, top, g.PageWidth, 18, "F")
	setDraw(pdf, colorBorderGray)
	pdf.Line(g.Margin, top, g.PageWidth-g.Margin, top)

	setText(pdf, colorTextDark)
	pdf.SetFont(fontFamily, "B", 8)
	centered(pdf, g.PageWidth/2, g.PageHeight-12, text)

	setText(pdf, colorTextMuted)
	pdf.SetFont(fontFamily, "B", 7)
	label := pageLabel(page, total)
	pdf.Text(g.PageWidth-g.Margin-pdf.GetStringWidth(label), g.PageHeight-6, label)
}

func pageLabel(page, total int) string {
	return fmt.Sprintf("Page %d of %d", page, total)
}

func centered(pdf *fpdf.Fpdf, x, y float64, text string) {
	pdf.Text(x-pdf.GetStringWidth(text)/2, y, text)
}

func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func setDraw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }

// sanitize returns a copy of doc with every string converted for the core
// fonts. Row values are cut before conversion so the limit counts
// characters. Runes outside cp1252 become "?".
func sanitize(doc *Document, tr func(string) string) *Document {
	out := *doc
	out.Title = toCP1252(tr, singleLine(doc.Title))
	out.Footer = toCP1252(tr, singleLine(doc.Footer))

	out.Header = make([]HeaderLine, len(doc.Header))
	for i, line := range doc.Header {
		line.Text = toCP1252(tr, singleLine(line.Text))
		out.Header[i] = line
	}

	out.Blocks = make([]Block, len(doc.Blocks))
	for i, b := range doc.Blocks {
		b.Label = toCP1252(tr, singleLine(b.Label))
		switch b.Kind {
		case KindRow:
			b.Value = toCP1252(tr, truncate(singleLine(b.Value)))
		case KindTextRow:
			b.Value = toCP1252(tr, multiLine(b.Value))
		default:
			b.Value = toCP1252(tr, singleLine(b.Value))
		}
		out.Blocks[i] = b
	}

	return &out
}

func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func multiLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func toCP1252(tr func(string) string, s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if t := tr(string(r)); len(t) == 1 {
			b.WriteString(t)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
