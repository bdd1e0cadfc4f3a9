package cart

import "sort"

// Key identifies a cart line by machine name and part code
type Key struct {
	Machine string `json:"machine"`
	Code    string `json:"code"`
}

// Less orders keys by machine name, then part code
func (k Key) Less(other Key) bool {
	if k.Machine != other.Machine {
		return k.Machine < other.Machine
	}
	return k.Code < other.Code
}

// Line is a snapshot of one cart entry
type Line struct {
	Machine     string `json:"machine" yaml:"machine"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Quantity    int    `json:"quantity" yaml:"quantity"`
}

// Key returns the line's cart key
func (l Line) Key() Key {
	return Key{Machine: l.Machine, Code: l.Code}
}

type entry struct {
	description string
	quantity    int
}

// Cart holds the order lines of a single session. It is not safe for
// concurrent use; callers serialise access per session.
type Cart struct {
	lines map[Key]*entry
}

// MaxQuantity is the largest quantity a single line may hold
const MaxQuantity = 1_000_000

// New creates an empty cart
func New() *Cart {
	return &Cart{
		lines: make(map[Key]*entry),
	}
}

// Add merges quantity into the line for (machine, code), creating it when
// missing. Non-positive quantities, and additions that would take the line
// above MaxQuantity, are ignored and reported as false.
func (c *Cart) Add(machine, code, description string, quantity int) bool {
	if quantity <= 0 || quantity > MaxQuantity {
		return false
	}

	key := Key{Machine: machine, Code: code}
	if e, ok := c.lines[key]; ok {
		if e.quantity > MaxQuantity-quantity {
			return false
		}
		e.quantity += quantity
		return true
	}

	c.lines[key] = &entry{description: description, quantity: quantity}
	return true
}

// SetQuantity overwrites the quantity of an existing line. Zero removes the
// line. Returns false if there was no line to edit or quantity is outside
// [0, MaxQuantity].
func (c *Cart) SetQuantity(machine, code string, quantity int) bool {
	key := Key{Machine: machine, Code: code}
	e, ok := c.lines[key]
	if !ok || quantity < 0 || quantity > MaxQuantity {
		return false
	}

	if quantity == 0 {
		delete(c.lines, key)
		return true
	}

	e.quantity = quantity
	return true
}

// Remove deletes the line for (machine, code) if present
func (c *Cart) Remove(machine, code string) {
	delete(c.lines, Key{Machine: machine, Code: code})
}

// Clear removes every line
func (c *Cart) Clear() {
	clear(c.lines)
}

// Get returns the line for (machine, code)
func (c *Cart) Get(machine, code string) (Line, bool) {
	e, ok := c.lines[Key{Machine: machine, Code: code}]
	if !ok {
		return Line{}, false
	}
	return Line{Machine: machine, Code: code, Description: e.description, Quantity: e.quantity}, true
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Totals returns the number of distinct lines and the sum of all quantities
func (c *Cart) Totals() (lineCount, totalQuantity int) {
	for _, e := range c.lines {
		totalQuantity += e.quantity
	}
	return len(c.lines), totalQuantity
}

// Lines returns every line sorted by machine, then code
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.lines))
	for k, e := range c.lines {
		lines = append(lines, Line{
			Machine:     k.Machine,
			Code:        k.Code,
			Description: e.description,
			Quantity:    e.quantity,
		})
	}
	SortLines(lines)
	return lines
}

// SortLines sorts lines in place by machine, then code
func SortLines(lines []Line) {
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Key().Less(lines[j].Key())
	})
}
