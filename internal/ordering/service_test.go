package ordering

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/orostudio/spareparts/internal/cart"
	"github.com/orostudio/spareparts/internal/catalog"
	"github.com/orostudio/spareparts/internal/models"
	"github.com/orostudio/spareparts/internal/orderpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(catalog.Default(), WithPDFOptions(orderpdf.Options{}))
}

func TestAddSelectedMergesAndResetsInputs(t *testing.T) {
	svc := newTestService()
	session := models.NewOrderSession("s1")

	require.NoError(t, svc.SetSelection(session, "Drone 20-20", "VTR01VT005", 2))
	require.NoError(t, svc.SetSelection(session, "Drone 20-20", "PFO01PL006", 1))

	added, err := svc.AddSelected(session, "Drone 20-20")
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	sel, err := svc.Selections(session, "Drone 20-20")
	require.NoError(t, err)
	for _, p := range sel.Parts {
		assert.Zero(t, p.Quantity, "selection for %s should be reset", p.Code)
	}

	// a second add with no new input does not double count
	added, err = svc.AddSelected(session, "Drone 20-20")
	require.NoError(t, err)
	assert.Zero(t, added)

	line, ok := session.Cart.Get("Drone 20-20", "VTR01VT005")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "20lt Glass Reactor", line.Description)

	require.NoError(t, svc.SetSelection(session, "Drone 20-20", "VTR01VT005", 3))
	added, err = svc.AddSelected(session, "Drone 20-20")
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	line, _ = session.Cart.Get("Drone 20-20", "VTR01VT005")
	assert.Equal(t, 5, line.Quantity)
}

func TestAddSelectedOnlyTouchesTheGivenMachine(t *testing.T) {
	svc := newTestService()
	session := models.NewOrderSession("s1")

	require.NoError(t, svc.SetSelection(session, "MM 30-50", "PFO02XX003", 4))
	require.NoError(t, svc.SetSelection(session, "Drone 20-20", "VTR01VT005", 1))

	added, err := svc.AddSelected(session, "MM 30-50")
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	sel, _ := svc.Selections(session, "Drone 20-20")
	assert.Equal(t, 1, sel.Parts[1].Quantity)
}

func TestSetSelectionValidation(t *testing.T) {
	svc := newTestService()
	session := models.NewOrderSession("s1")

	err := svc.SetSelection(session, "Nope", "X", 1)
	assert.True(t, errors.Is(err, ErrUnknownMachine))

	err = svc.SetSelection(session, "MM 30-50", "VTR01VT005", 1)
	assert.True(t, errors.Is(err, ErrUnknownPart))

	require.NoError(t, svc.SetSelection(session, "MM 30-50", "PFO02XX003", -3))
	added, err := svc.AddSelected(session, "MM 30-50")
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.True(t, session.Cart.IsEmpty())
}

func TestSetQuantityAndRemove(t *testing.T) {
	svc := newTestService()
	session := models.NewOrderSession("s1")
	session.Cart.Add("MM 30-50", "PFO02XX003", "Valve", 5)

	require.NoError(t, svc.SetQuantity(session, "MM 30-50", "PFO02XX003", 2))
	summary := svc.Summary(session)
	assert.Equal(t, 2, summary.TotalQuantity)

	require.NoError(t, svc.SetQuantity(session, "MM 30-50", "PFO02XX003", 0))
	assert.True(t, session.Cart.IsEmpty())

	err := svc.SetQuantity(session, "MM 30-50", "PFO02XX003", 1)
	assert.True(t, errors.Is(err, ErrLineNotFound))

	session.Cart.Add("MM 30-50", "PFO02XX003", "Valve", 5)
	svc.Remove(session, "MM 30-50", "PFO02XX003")
	svc.Remove(session, "MM 30-50", "PFO02XX003")
	assert.True(t, session.Cart.IsEmpty())
}

func TestSummaryExample(t *testing.T) {
	svc := newTestService()
	session := models.NewOrderSession("s1")
	session.Cart.Add("MM 30-50", "PFO02XX003", "Valve", 5)
	session.Cart.Add("Drone 20-20", "VTR01VT005", "20lt Glass Reactor", 2)

	summary := svc.Summary(session)
	assert.Equal(t, "s1", summary.SessionID)
	assert.Equal(t, 2, summary.LineCount)
	assert.Equal(t, 7, summary.TotalQuantity)
	require.Len(t, summary.Lines, 2)
	assert.Equal(t, "Drone 20-20", summary.Lines[0].Machine)

	svc.Clear(session)
	assert.Zero(t, svc.Summary(session).LineCount)
}

func TestGeneratePDF(t *testing.T) {
	svc := newTestService()

	t.Run("empty cart is rejected", func(t *testing.T) {
		session := models.NewOrderSession("empty")
		_, err := svc.GeneratePDF(session, "order.pdf")
		assert.True(t, errors.Is(err, ErrEmptyCart))
	})

	t.Run("renders the cart", func(t *testing.T) {
		session := models.NewOrderSession("full")
		session.Cart.Add("MM 30-50", "PFO02XX003", "Valve", 5)

		doc, err := svc.GeneratePDF(session, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultFilename, doc.Filename)
		assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
		assert.Contains(t, string(doc.Data), "(Machine: MM 30-50) Tj")
	})
}

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "spare_parts_order.pdf"},
		{in: "   ", want: "spare_parts_order.pdf"},
		{in: "order", want: "order.pdf"},
		{in: "order.pdf", want: "order.pdf"},
		{in: "ORDER.PDF", want: "ORDER.PDF"},
		{in: "order.txt", want: "order.txt.pdf"},
	}

	svc := newTestService()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.NormalizeFilename(tt.in))
		})
	}

	custom := NewService(catalog.Default(), WithDefaultFilename("custom"))
	assert.Equal(t, "custom.pdf", custom.NormalizeFilename(""))
}

func TestApplyOrder(t *testing.T) {
	svc := newTestService()
	path := filepath.Join(t.TempDir(), "order.yaml")
	content := `filename: weekly
lines:
  - machine: MM 30-50
    code: PFO02XX003
    quantity: 2
  - machine: MM 30-50
    code: PFO02XX003
    quantity: 3
  - machine: Drone 20-20
    code: VTR01VT005
    description: Reactor (spare)
    quantity: 1
  - machine: Drone 20-20
    code: VTR01VT004
    quantity: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	order, err := LoadOrderFile(path)
	require.NoError(t, err)
	assert.Equal(t, "weekly", order.Filename)

	c := cart.New()
	applied, err := svc.ApplyOrder(c, order)
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	lines, qty := c.Totals()
	assert.Equal(t, 2, lines)
	assert.Equal(t, 6, qty)

	valve, _ := c.Get("MM 30-50", "PFO02XX003")
	assert.Equal(t, "Valve", valve.Description)
	reactor, _ := c.Get("Drone 20-20", "VTR01VT005")
	assert.Equal(t, "Reactor (spare)", reactor.Description)
}

func TestApplyOrderRejectsUnknownParts(t *testing.T) {
	svc := newTestService()
	c := cart.New()

	_, err := svc.ApplyOrder(c, &OrderFile{Lines: []OrderLine{
		{Machine: "MM 30-50", Code: "PFO02XX003", Quantity: 1},
		{Machine: "MM 30-50", Code: "missing", Quantity: 1},
	}})
	assert.True(t, errors.Is(err, ErrUnknownPart))
	assert.True(t, c.IsEmpty(), "nothing is applied when any line is invalid")
}

func TestSetSelectionsIsAllOrNothing(t *testing.T) {
	svc := newTestService()
	session := models.NewOrderSession("s1")

	err := svc.SetSelections(session, "MM 30-50", map[string]int{
		"PFO02XX001": 1,
		"PFO02XX002": 2,
		"missing":    3,
	})
	assert.True(t, errors.Is(err, ErrUnknownPart))
	assert.Empty(t, session.Selections)

	err = svc.SetSelections(session, "MM 30-50", map[string]int{
		"PFO02XX001": 1,
		"PFO02XX002": cart.MaxQuantity + 1,
	})
	assert.True(t, errors.Is(err, ErrQuantityLimit))
	assert.Empty(t, session.Selections)

	require.NoError(t, svc.SetSelections(session, "MM 30-50", map[string]int{"PFO02XX001": 1, "PFO02XX002": 2}))
	assert.Len(t, session.Selections, 2)
}

func TestQuantityLimit(t *testing.T) {
	svc := newTestService()
	session := models.NewOrderSession("s1")

	require.NoError(t, svc.SetSelection(session, "MM 30-50", "PFO02XX003", cart.MaxQuantity))
	require.NoError(t, svc.SetSelection(session, "MM 30-50", "PFO02XX001", 2))
	added, err := svc.AddSelected(session, "MM 30-50")
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	require.NoError(t, svc.SetSelection(session, "MM 30-50", "PFO02XX001", 1))
	require.NoError(t, svc.SetSelection(session, "MM 30-50", "PFO02XX003", 1))
	_, err = svc.AddSelected(session, "MM 30-50")
	assert.True(t, errors.Is(err, ErrQuantityLimit))

	kit, _ := session.Cart.Get("MM 30-50", "PFO02XX001")
	assert.Equal(t, 2, kit.Quantity, "no line is added when any would overflow")

	err = svc.SetQuantity(session, "MM 30-50", "PFO02XX001", cart.MaxQuantity+1)
	assert.True(t, errors.Is(err, ErrQuantityLimit))

	_, err = svc.ApplyOrder(session.Cart, &OrderFile{Lines: []OrderLine{
		{Machine: "MM 30-50", Code: "PFO02XX002", Quantity: cart.MaxQuantity},
		{Machine: "MM 30-50", Code: "PFO02XX002", Quantity: 1},
	}})
	assert.True(t, errors.Is(err, ErrQuantityLimit))
	_, exists := session.Cart.Get("MM 30-50", "PFO02XX002")
	assert.False(t, exists)
}
