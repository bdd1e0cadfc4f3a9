package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyMachineName = errors.New("machine name is empty")
	ErrDuplicateMachine = errors.New("duplicate machine")
	ErrEmptyPartCode    = errors.New("part code is empty")
	ErrDuplicatePart    = errors.New("duplicate part code")
)

// Part is a spare part offered for a machine
type Part struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

// Machine is a machine model and its parts in display order
type Machine struct {
	Name  string `json:"name" yaml:"name"`
	Parts []Part `json:"parts" yaml:"parts"`
}

// Catalog is a read-only lookup of machines and their parts
type Catalog struct {
	machines []Machine
	index    map[string]int
	parts    map[string]map[string]int
}

// New validates machines and builds a catalog from them
func New(machines []Machine) (*Catalog, error) {
	c := &Catalog{
		machines: make([]Machine, 0, len(machines)),
		index:    make(map[string]int, len(machines)),
		parts:    make(map[string]map[string]int, len(machines)),
	}

	for _, m := range machines {
		if strings.TrimSpace(m.Name) == "" {
			return nil, ErrEmptyMachineName
		}
		if _, exists := c.index[m.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMachine, m.Name)
		}

		codes := make(map[string]int, len(m.Parts))
		parts := make([]Part, len(m.Parts))
		for i, p := range m.Parts {
			if strings.TrimSpace(p.Code) == "" {
				return nil, fmt.Errorf("%w: machine %s, position %d", ErrEmptyPartCode, m.Name, i+1)
			}
			if _, exists := codes[p.Code]; exists {
				return nil, fmt.Errorf("%w: machine %s, code %s", ErrDuplicatePart, m.Name, p.Code)
			}
			codes[p.Code] = i
			parts[i] = p
		}

		c.index[m.Name] = len(c.machines)
		c.parts[m.Name] = codes
		c.machines = append(c.machines, Machine{Name: m.Name, Parts: parts})
	}

	return c, nil
}

// Machines returns machine names in display order
func (c *Catalog) Machines() []string {
	names := make([]string, len(c.machines))
	for i, m := range c.machines {
		names[i] = m.Name
	}
	return names
}

// All returns a copy of every machine with its parts
func (c *Catalog) All() []Machine {
	out := make([]Machine, len(c.machines))
	for i, m := range c.machines {
		out[i] = Machine{Name: m.Name, Parts: append([]Part(nil), m.Parts...)}
	}
	return out
}

// Parts returns the parts of machine in display order
func (c *Catalog) Parts(machine string) ([]Part, bool) {
	i, ok := c.index[machine]
	if !ok {
		return nil, false
	}
	return append([]Part(nil), c.machines[i].Parts...), true
}

// Part looks up a single part of machine by code
func (c *Catalog) Part(machine, code string) (Part, bool) {
	i, ok := c.index[machine]
	if !ok {
		return Part{}, false
	}
	j, ok := c.parts[machine][code]
	if !ok {
		return Part{}, false
	}
	return c.machines[i].Parts[j], true
}

// HasMachine reports whether machine is in the catalog
func (c *Catalog) HasMachine(machine string) bool {
	_, ok := c.index[machine]
	return ok
}

// PartCount returns the total number of parts across all machines
func (c *Catalog) PartCount() int {
	n := 0
	for _, m := range c.machines {
		n += len(m.Parts)
	}
	return n
}
