package pdf

import (
	"bytes"
	"fmt"
	"time"

	"backend/internal/model"

	"github.com/jung-kurt/gofpdf"
)

const baseFont = "Helvetica"

// render replays the layout's draw operations through gofpdf and returns
// the finished document bytes. Nothing is written to disk here; the
// generator does one write at the end from these bytes.
func render(l *layout, opts model.PDFOptions, generatedAt time.Time) ([]byte, error) {
	orientation := "P"
	if opts.Orientation == "landscape" {
		orientation = "L"
	}
	format := model.PageFormatLetter
	if opts.Format == model.PageFormatA4 {
		format = model.PageFormatA4
	}

	doc := gofpdf.New(orientation, "pt", format, "")
	doc.SetAutoPageBreak(false, 0)

	total := l.pageCount()
	for i, ops := range l.pages {
		doc.AddPage()

		if opts.Watermark != "" {
			drawWatermark(doc, l.pageW, l.pageH, opts.Watermark)
		}

		for _, o := range ops {
			switch o.kind {
			case opText:
				doc.SetFont(baseFont, o.style, o.size)
				if o.r != 0 || o.g != 0 || o.b != 0 {
					doc.SetTextColor(o.r, o.g, o.b)
				} else {
					doc.SetTextColor(0, 0, 0)
				}
				doc.Text(o.x, o.y, o.text)
			case opLine:
				doc.SetDrawColor(0, 0, 0)
				doc.SetLineWidth(0.5)
				doc.Line(o.x, o.y, o.x2, o.y2)
			}
		}

		drawPageFooter(doc, l.pageW, l.pageH, generatedAt, i+1, total)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}

// drawWatermark paints a large diagonal light-gray marker across the page
func drawWatermark(doc *gofpdf.Fpdf, pageW, pageH float64, text string) {
	doc.SetFont(baseFont, "B", 60)
	doc.SetTextColor(220, 220, 220)

	cx := pageW / 2
	cy := pageH / 2
	doc.TransformBegin()
	doc.TransformRotate(45, cx, cy)
	w := doc.GetStringWidth(text)
	doc.Text(cx-w/2, cy, text)
	doc.TransformEnd()
	doc.SetTextColor(0, 0, 0)
}

func drawPageFooter(doc *gofpdf.Fpdf, pageW, pageH float64, generatedAt time.Time, page, total int) {
	y := pageH - 30
	doc.SetFont(baseFont, "", 8)
	doc.SetTextColor(100, 100, 100)
	doc.Text(marginLeft, y, "Generated "+generatedAt.Format("Jan 2, 2006 15:04 MST"))

	label := fmt.Sprintf("Page %d of %d", page, total)
	w := doc.GetStringWidth(label)
	doc.Text(pageW-marginRight-w, y, label)
	doc.SetTextColor(0, 0, 0)
}
