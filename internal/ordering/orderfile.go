package ordering

import (
	"fmt"
	"os"

	"github.com/orostudio/spareparts/internal/cart"
	"gopkg.in/yaml.v3"
)

// OrderFile is an order prepared outside the web interface. JSON files are
// accepted too since they parse as YAML.
type OrderFile struct {
	Filename string      `yaml:"filename,omitempty"`
	Lines    []OrderLine `yaml:"lines"`
}

// OrderLine requests quantity of a part. Description defaults to the
// catalog's.
type OrderLine struct {
	Machine     string `yaml:"machine"`
	Code        string `yaml:"code"`
	Description string `yaml:"description,omitempty"`
	Quantity    int    `yaml:"quantity"`
}

// LoadOrderFile reads an order file from path
func LoadOrderFile(path string) (*OrderFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read order file: %w", err)
	}

	var order OrderFile
	if err := yaml.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to parse order file: %w", err)
	}
	return &order, nil
}

// ApplyOrder validates each line against the catalog and merges it into c
// with add semantics. It returns the number of lines that changed the cart.
// Nothing is applied if any line is invalid or a merged quantity would exceed
// cart.MaxQuantity.
func (s *Service) ApplyOrder(c *cart.Cart, order *OrderFile) (int, error) {
	merged := make(map[cart.Key]int)
	for i, line := range order.Lines {
		if _, err := s.lookup(line.Machine, line.Code); err != nil {
			return 0, fmt.Errorf("order line %d: %w", i+1, err)
		}
		if line.Quantity <= 0 {
			continue
		}

		key := cart.Key{Machine: line.Machine, Code: line.Code}
		if _, ok := merged[key]; !ok {
			existing, _ := c.Get(line.Machine, line.Code)
			merged[key] = existing.Quantity
		}
		if line.Quantity > cart.MaxQuantity-merged[key] {
			return 0, fmt.Errorf("order line %d: %w: %s/%s", i+1, ErrQuantityLimit, line.Machine, line.Code)
		}
		merged[key] += line.Quantity
	}

	applied := 0
	for _, line := range order.Lines {
		part, _ := s.catalog.Part(line.Machine, line.Code)
		description := line.Description
		if description == "" {
			description = part.Description
		}
		if c.Add(line.Machine, line.Code, description, line.Quantity) {
			applied++
		}
	}
	return applied, nil
}
