package pdf

// Shared section primitives used by every report type. Each one appends
// operations at the current cursor and leaves the cursor below what it
// drew.

func drawHeader(l *layout, title, subtitle string) {
	l.advance(10)
	l.write(marginLeft, 18, "B", title)
	l.advance(22)
	if subtitle != "" {
		l.writeGray(marginLeft, 11, subtitle)
		l.advance(16)
	}
	l.rule(marginLeft, l.pageW-marginRight)
	l.advance(18)
}

// drawKeyValueBlock prints aligned label/value pairs, e.g. the company
// and report-period info at the top of a filing
func drawKeyValueBlock(l *layout, pairs [][2]string) {
	const valueX = marginLeft + 140
	for _, pair := range pairs {
		l.ensureSpace(lineHeight)
		l.write(marginLeft, 10, "B", pair[0])
		l.write(valueX, 10, "", pair[1])
		l.advance(lineHeight)
	}
	l.advance(8)
}

func drawTableHeader(l *layout, headers []string, widths []float64) {
	x := marginLeft
	for i, h := range headers {
		l.write(x, 10, "B", h)
		x += widths[i]
	}
	l.advance(6)
	l.rule(marginLeft, l.pageW-marginRight)
	l.advance(lineHeight)
}

// drawTable prints a fixed-column-width table, starting a new page and
// repeating the header row whenever a row would cross the bottom margin
func drawTable(l *layout, headers []string, widths []float64, rows [][]string) {
	l.ensureSpace(blockReserve)
	drawTableHeader(l, headers, widths)

	for _, row := range rows {
		if l.ensureSpace(lineHeight) {
			drawTableHeader(l, headers, widths)
		}
		x := marginLeft
		for i, cell := range row {
			if i < len(widths) {
				l.write(x, 9, "", cell)
				x += widths[i]
			}
		}
		l.advance(lineHeight)
	}
	l.advance(10)
}

// drawTotalsRow prints a bold totals line set off by a rule above it
func drawTotalsRow(l *layout, widths []float64, cells []string) {
	l.ensureSpace(2 * lineHeight)
	l.rule(marginLeft, l.pageW-marginRight)
	l.advance(lineHeight)
	x := marginLeft
	for i, cell := range cells {
		if i < len(widths) {
			l.write(x, 9, "B", cell)
			x += widths[i]
		}
	}
	l.advance(lineHeight + 10)
}

// drawSignatureBlock leaves room for an authorized signature and date
func drawSignatureBlock(l *layout) {
	l.ensureSpace(70)
	l.advance(30)
	l.rule(marginLeft, marginLeft+200)
	l.advance(12)
	l.writeGray(marginLeft, 9, "Authorized Signature")
	l.add(op{kind: opLine, x: marginLeft + 280, y: l.y - 12, x2: marginLeft + 400, y2: l.y - 12})
	l.writeGray(marginLeft+280, 9, "Date")
	l.advance(lineHeight)
}
