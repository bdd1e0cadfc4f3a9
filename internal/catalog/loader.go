package catalog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Record is the flat, one-row-per-part form of a catalog used by the JSONL
// and Parquet formats
type Record struct {
	Machine     string `json:"machine" parquet:"machine"`
	Code        string `json:"code" parquet:"code"`
	Description string `json:"description" parquet:"description"`
}

// document is the nested YAML form of a catalog
type document struct {
	Machines []Machine `yaml:"machines"`
}

// Load reads a catalog file, choosing the format from its extension
func Load(path string) (*Catalog, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".jsonl":
		return loadJSONL(path)
	case ".parquet":
		return loadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s (supported: .yaml, .yml, .jsonl, .parquet)", ext)
	}
}

// FromRecords groups flat records by machine, keeping the order in which
// machines and parts first appear
func FromRecords(records []Record) (*Catalog, error) {
	var machines []Machine
	index := make(map[string]int)

	for _, r := range records {
		i, ok := index[r.Machine]
		if !ok {
			i = len(machines)
			index[r.Machine] = i
			machines = append(machines, Machine{Name: r.Machine})
		}
		machines[i].Parts = append(machines[i].Parts, Part{Code: r.Code, Description: r.Description})
	}

	return New(machines)
}

// Records flattens the catalog into one record per part
func (c *Catalog) Records() []Record {
	records := make([]Record, 0, c.PartCount())
	for _, m := range c.machines {
		for _, p := range m.Parts {
			records = append(records, Record{Machine: m.Name, Code: p.Code, Description: p.Description})
		}
	}
	return records
}

func loadYAML(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	slog.Debug("Loaded YAML catalog", "path", path, "machines", len(doc.Machines))

	return New(doc.Machines)
}

func loadJSONL(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	slog.Debug("Loaded JSONL catalog", "path", path, "records", len(records))

	return FromRecords(records)
}

func loadParquet(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet catalog opened", "path", path, "num_rows", pf.NumRows())

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	var records []Record
	rows := make([]Record, 128)

	for {
		n, err := reader.Read(rows)
		records = append(records, rows[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return FromRecords(records)
}

// WriteYAML writes the catalog in the nested YAML form
func WriteYAML(w io.Writer, c *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Machines: c.All()}); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSONL writes one JSON record per part
func WriteJSONL(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	for _, r := range c.Records() {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	return nil
}

// WriteParquet writes one parquet row per part
func WriteParquet(w io.Writer, c *Catalog) error {
	writer := parquet.NewGenericWriter[Record](w)
	if _, err := writer.Write(c.Records()); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// Save writes the catalog to path, choosing the format from its extension
func Save(path string, c *Catalog) error {
	ext := strings.ToLower(filepath.Ext(path))

	var write func(io.Writer, *Catalog) error
	switch ext {
	case ".yaml", ".yml":
		write = WriteYAML
	case ".jsonl":
		write = WriteJSONL
	case ".parquet":
		write = WriteParquet
	default:
		return fmt.Errorf("unsupported catalog format: %s (supported: .yaml, .yml, .jsonl, .parquet)", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}

	if err := write(file, c); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close catalog file: %w", err)
	}
	return nil
}
