// Package orderpdf lays out an order cart as a paginated A4 document and
// renders it to PDF bytes.
//
// Layout works in points with the origin at the bottom-left corner of the
// page, so y decreases as rows are emitted. Render converts to the
// top-left origin used by the PDF writer.
//
// Text is drawn with the core Helvetica fonts, which only cover the cp1252
// (Western European) character set. Any other character, such as "Ω" or
// CJK text, is replaced by "." in the document and a warning is logged.
package orderpdf

import (
	"strconv"

	"github.com/orostudio/spareparts/internal/cart"
)

// A4 page size in points
const (
	PageWidth  = 595.28
	PageHeight = 841.89
)

const (
	DefaultTitle = "Spare Parts Order"

	// MaxDescriptionLength is the number of characters of a description
	// printed before it would run into the quantity column
	MaxDescriptionLength = 70

	titleX        = 50.0
	titleOffset   = 50.0
	startOffset   = 90.0
	topMargin     = 50.0
	bottomMargin  = 50.0
	machineGap    = 30.0
	headingHeight = 20.0
	rowHeight     = 15.0

	machineX     = 50.0
	codeX        = 60.0
	descriptionX = 160.0
	quantityX    = 460.0
)

// Font is a core PDF font selection
type Font struct {
	Family string
	Style  string
	Size   float64
}

var (
	titleFont   = Font{Family: "Helvetica", Size: 16}
	machineFont = Font{Family: "Helvetica", Style: "B", Size: 14}
	headerFont  = Font{Family: "Helvetica", Style: "B", Size: 10}
	rowFont     = Font{Family: "Helvetica", Size: 10}
)

// Item is a single string drawn at a baseline position
type Item struct {
	X    float64
	Y    float64
	Font Font
	Text string
}

// Page is the ordered list of items drawn on one page
type Page struct {
	Items []Item
}

type layout struct {
	pages    []Page
	y        float64
	pageDone bool
}

func (l *layout) draw(x float64, font Font, text string) {
	if l.pageDone {
		l.pages = append(l.pages, Page{})
		l.pageDone = false
	}
	page := &l.pages[len(l.pages)-1]
	page.Items = append(page.Items, Item{X: x, Y: l.y, Font: font, Text: text})
}

// advance moves the cursor down. Once it passes the bottom margin the page is
// closed and the cursor returns to the top margin; the next page is only
// opened when something is drawn on it.
func (l *layout) advance(h float64) {
	l.y -= h
	if l.y < bottomMargin {
		l.pageDone = true
		l.y = PageHeight - topMargin
	}
}

// Layout positions the title, machine header blocks and line rows. Lines are
// sorted by machine and code first; the input slice is not modified.
func Layout(lines []cart.Line, title string) []Page {
	if title == "" {
		title = DefaultTitle
	}

	sorted := append([]cart.Line(nil), lines...)
	cart.SortLines(sorted)

	l := &layout{
		pages: []Page{{}},
		y:     PageHeight - titleOffset,
	}
	l.draw(titleX, titleFont, title)
	l.y = PageHeight - startOffset

	current := ""
	started := false
	for _, line := range sorted {
		if !started || line.Machine != current {
			l.advance(machineGap)
			l.draw(machineX, machineFont, "Machine: "+line.Machine)
			l.advance(headingHeight)
			l.draw(codeX, headerFont, "Code")
			l.draw(descriptionX, headerFont, "Description")
			l.draw(quantityX, headerFont, "Quantity")
			l.advance(rowHeight)
			current = line.Machine
			started = true
		}

		l.draw(codeX, rowFont, line.Code)
		l.draw(descriptionX, rowFont, Truncate(line.Description, MaxDescriptionLength))
		l.draw(quantityX, rowFont, strconv.Itoa(line.Quantity))
		l.advance(rowHeight)
	}

	return l.pages
}

// Truncate returns at most n characters of s
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
