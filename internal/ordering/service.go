package ordering

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/orostudio/spareparts/internal/cart"
	"github.com/orostudio/spareparts/internal/catalog"
	"github.com/orostudio/spareparts/internal/models"
	"github.com/orostudio/spareparts/internal/orderpdf"
)

const DefaultFilename = "spare_parts_order.pdf"

var (
	ErrEmptyCart      = errors.New("no items selected")
	ErrUnknownMachine = errors.New("unknown machine")
	ErrUnknownPart    = errors.New("unknown part")
	ErrLineNotFound   = errors.New("line not in cart")
	ErrQuantityLimit  = fmt.Errorf("quantity exceeds %d", cart.MaxQuantity)
)

// Document is a generated order PDF ready to be offered for download
type Document struct {
	Filename string
	Data     []byte
}

// Service applies order operations to sessions against a fixed catalog
type Service struct {
	catalog         *catalog.Catalog
	pdfOptions      orderpdf.Options
	defaultFilename string
}

// Option configures a Service
type Option func(*Service)

// WithPDFOptions sets the options used when rendering order documents
func WithPDFOptions(opts orderpdf.Options) Option {
	return func(s *Service) {
		s.pdfOptions = opts
	}
}

// WithDefaultFilename sets the filename used when none is supplied
func WithDefaultFilename(name string) Option {
	return func(s *Service) {
		if strings.TrimSpace(name) != "" {
			s.defaultFilename = name
		}
	}
}

func NewService(c *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		catalog:         c,
		pdfOptions:      orderpdf.Options{Compress: true},
		defaultFilename: DefaultFilename,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the service validates against
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) lookup(machine, code string) (catalog.Part, error) {
	if !s.catalog.HasMachine(machine) {
		return catalog.Part{}, fmt.Errorf("%w: %s", ErrUnknownMachine, machine)
	}
	part, ok := s.catalog.Part(machine, code)
	if !ok {
		return catalog.Part{}, fmt.Errorf("%w: %s/%s", ErrUnknownPart, machine, code)
	}
	return part, nil
}

// Selections returns the parts of machine with their pending quantities
func (s *Service) Selections(session *models.OrderSession, machine string) (models.MachineSelection, error) {
	parts, ok := s.catalog.Parts(machine)
	if !ok {
		return models.MachineSelection{}, fmt.Errorf("%w: %s", ErrUnknownMachine, machine)
	}

	session.Lock()
	defer session.Unlock()

	sel := models.MachineSelection{Machine: machine, Parts: make([]models.PartSelection, len(parts))}
	for i, p := range parts {
		sel.Parts[i] = models.PartSelection{
			Code:        p.Code,
			Description: p.Description,
			Quantity:    session.Selections[cart.Key{Machine: machine, Code: p.Code}],
		}
	}
	return sel, nil
}

// SetSelection records the pending quantity typed for a part. Negative
// quantities are stored as zero.
func (s *Service) SetSelection(session *models.OrderSession, machine, code string, quantity int) error {
	return s.SetSelections(session, machine, map[string]int{code: quantity})
}

// SetSelections records several pending quantities for machine at once.
// Every code is validated first; on error no selection is changed.
func (s *Service) SetSelections(session *models.OrderSession, machine string, quantities map[string]int) error {
	for code, quantity := range quantities {
		if _, err := s.lookup(machine, code); err != nil {
			return err
		}
		if quantity > cart.MaxQuantity {
			return fmt.Errorf("%w: %s/%s", ErrQuantityLimit, machine, code)
		}
	}

	session.Lock()
	defer session.Unlock()

	for code, quantity := range quantities {
		key := cart.Key{Machine: machine, Code: code}
		if quantity <= 0 {
			delete(session.Selections, key)
			continue
		}
		session.Selections[key] = quantity
	}
	return nil
}

// AddSelected merges every pending quantity of machine into the cart and
// resets those inputs to zero. It returns the number of lines added or
// updated; zero means nothing was selected. If any line would exceed
// cart.MaxQuantity nothing is added.
func (s *Service) AddSelected(session *models.OrderSession, machine string) (int, error) {
	parts, ok := s.catalog.Parts(machine)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMachine, machine)
	}

	session.Lock()
	defer session.Unlock()

	for _, p := range parts {
		pending := session.Selections[cart.Key{Machine: machine, Code: p.Code}]
		if pending <= 0 {
			continue
		}
		line, _ := session.Cart.Get(machine, p.Code)
		if pending > cart.MaxQuantity-line.Quantity {
			return 0, fmt.Errorf("%w: %s/%s", ErrQuantityLimit, machine, p.Code)
		}
	}

	added := 0
	for _, p := range parts {
		key := cart.Key{Machine: machine, Code: p.Code}
		if session.Cart.Add(machine, p.Code, p.Description, session.Selections[key]) {
			delete(session.Selections, key)
			added++
		}
	}

	if added > 0 {
		session.Touch()
		slog.Info("Items added to order", "session_id", session.ID, "machine", machine, "lines", added)
	}

	return added, nil
}

// SetQuantity overwrites the quantity of a cart line; zero removes it
func (s *Service) SetQuantity(session *models.OrderSession, machine, code string, quantity int) error {
	if quantity > cart.MaxQuantity {
		return fmt.Errorf("%w: %s/%s", ErrQuantityLimit, machine, code)
	}

	session.Lock()
	defer session.Unlock()

	if quantity < 0 {
		quantity = 0
	}
	if !session.Cart.SetQuantity(machine, code, quantity) {
		return fmt.Errorf("%w: %s/%s", ErrLineNotFound, machine, code)
	}
	session.Touch()
	return nil
}

// Remove deletes a cart line if present
func (s *Service) Remove(session *models.OrderSession, machine, code string) {
	session.Lock()
	defer session.Unlock()

	session.Cart.Remove(machine, code)
	session.Touch()
}

// Clear empties the session's cart
func (s *Service) Clear(session *models.OrderSession) {
	session.Lock()
	defer session.Unlock()

	session.Cart.Clear()
	session.Touch()
	slog.Info("Cart cleared", "session_id", session.ID)
}

// Summary returns the sorted cart lines and totals
func (s *Service) Summary(session *models.OrderSession) models.Summary {
	session.Lock()
	defer session.Unlock()

	lineCount, total := session.Cart.Totals()
	return models.Summary{
		SessionID:     session.ID,
		Lines:         session.Cart.Lines(),
		LineCount:     lineCount,
		TotalQuantity: total,
		UpdatedAt:     session.UpdatedAt,
	}
}

// GeneratePDF renders the session's cart. An empty cart yields ErrEmptyCart
// and no document.
func (s *Service) GeneratePDF(session *models.OrderSession, filename string) (Document, error) {
	session.Lock()
	lines := session.Cart.Lines()
	session.Unlock()

	return s.Export(lines, filename)
}

// Export renders lines into a document named after filename
func (s *Service) Export(lines []cart.Line, filename string) (Document, error) {
	if len(lines) == 0 {
		return Document{}, ErrEmptyCart
	}

	data, err := orderpdf.Export(lines, s.pdfOptions)
	if err != nil {
		return Document{}, fmt.Errorf("failed to generate order PDF: %w", err)
	}

	doc := Document{
		Filename: s.NormalizeFilename(filename),
		Data:     data,
	}
	slog.Info("Order PDF generated", "filename", doc.Filename, "lines", len(lines), "bytes", len(data))
	return doc, nil
}

// NormalizeFilename falls back to the default name and appends ".pdf" when
// the suffix is missing
func (s *Service) NormalizeFilename(filename string) string {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		filename = s.defaultFilename
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}
	return filename
}
