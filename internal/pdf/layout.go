package pdf

// Page geometry in points. The layout tracks a vertical cursor growing
// downward from the top margin; sections append draw operations and the
// cursor decides when a new page starts.
const (
	marginTop    = 50.0
	marginBottom = 50.0
	marginLeft   = 50.0
	marginRight  = 50.0

	lineHeight      = 14.0
	smallLineHeight = 12.0

	// Headroom reserved before starting a multi-line record block, so a
	// block never begins in the last sliver of a page.
	blockReserve = 100.0
)

type opKind int

const (
	opText opKind = iota
	opLine
)

// op is a single draw instruction. Sections emit ops; the renderer is the
// only code that touches the PDF backend, so layout math stays testable
// on its own.
type op struct {
	kind    opKind
	x, y    float64
	x2, y2  float64
	text    string
	style   string // "", "B", "I"
	size    float64
	r, g, b int
}

type layout struct {
	pageW, pageH float64
	y            float64
	pages        [][]op
}

func pageSize(format, orientation string) (w, h float64) {
	switch format {
	case "A4":
		w, h = 595.28, 841.89
	default: // Letter
		w, h = 612, 792
	}
	if orientation == "landscape" {
		w, h = h, w
	}
	return w, h
}

func newLayout(format, orientation string) *layout {
	w, h := pageSize(format, orientation)
	l := &layout{pageW: w, pageH: h}
	l.newPage()
	return l
}

func (l *layout) newPage() {
	l.pages = append(l.pages, nil)
	l.y = marginTop
}

func (l *layout) pageCount() int {
	return len(l.pages)
}

// remaining reports the vertical space left above the bottom margin
func (l *layout) remaining() float64 {
	return l.pageH - marginBottom - l.y
}

// usable is the full drawable height of an empty page
func (l *layout) usable() float64 {
	return l.pageH - marginTop - marginBottom
}

// ensureSpace starts a new page when fewer than needed points remain.
// Returns true when a page break happened.
func (l *layout) ensureSpace(needed float64) bool {
	if l.remaining() < needed {
		l.newPage()
		return true
	}
	return false
}

func (l *layout) add(o op) {
	idx := len(l.pages) - 1
	l.pages[idx] = append(l.pages[idx], o)
}

// write draws text at (x, current y) without advancing the cursor
func (l *layout) write(x, size float64, style, text string) {
	l.add(op{kind: opText, x: x, y: l.y, text: text, style: style, size: size})
}

// writeGray draws secondary text in a muted color
func (l *layout) writeGray(x, size float64, text string) {
	l.add(op{kind: opText, x: x, y: l.y, text: text, size: size, r: 100, g: 100, b: 100})
}

// rule draws a horizontal line at the current cursor
func (l *layout) rule(x1, x2 float64) {
	l.add(op{kind: opLine, x: x1, y: l.y, x2: x2, y2: l.y})
}

func (l *layout) advance(h float64) {
	l.y += h
}
