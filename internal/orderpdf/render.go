package orderpdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/orostudio/spareparts/internal/cart"
	"golang.org/x/text/encoding/charmap"
)

// Options control document metadata and encoding
type Options struct {
	Title string
	// Compress deflates page content streams
	Compress bool
	// CreatedAt pins the creation and modification dates; the zero value
	// uses the current time
	CreatedAt time.Time
}

// Export lays out lines and renders them to PDF bytes
func Export(lines []cart.Line, opts Options) ([]byte, error) {
	return Render(Layout(lines, opts.Title), opts)
}

// Render draws laid out pages into a PDF document
func Render(pages []Page, opts Options) ([]byte, error) {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(opts.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(title, true)
	pdf.SetCreator("spareparts", false)
	if !opts.CreatedAt.IsZero() {
		pdf.SetCreationDate(opts.CreatedAt)
		pdf.SetModificationDate(opts.CreatedAt)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, height := pdf.GetPageSize()

	for _, page := range pages {
		pdf.AddPage()
		var current Font
		for _, item := range page.Items {
			if item.Font != current {
				pdf.SetFont(item.Font.Family, item.Font.Style, item.Font.Size)
				current = item.Font
			}
			if lost := Unencodable(item.Text); len(lost) > 0 {
				slog.Warn("Text has characters the PDF fonts cannot show", "text", item.Text, "replaced", string(lost))
			}
			pdf.Text(item.X, height-item.Y, tr(item.Text))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// Unencodable returns the runes of s that have no cp1252 encoding, in order
// of appearance. Render draws each of them as ".".
func Unencodable(s string) []rune {
	var lost []rune
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			lost = append(lost, r)
		}
	}
	return lost
}
