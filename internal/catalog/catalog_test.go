package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	want := []string{"Drone 20-20", "OMD S-Series", "MM 30-50"}
	if got := c.Machines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected machines %v, got %v", want, got)
	}

	part, ok := c.Part("MM 30-50", "PFO02XX003")
	if !ok {
		t.Fatal("Expected PFO02XX003 to exist for MM 30-50")
	}
	if part.Description != "Valve" {
		t.Errorf("Expected description Valve, got %s", part.Description)
	}

	if _, ok := c.Part("Drone 20-20", "PFO02XX003"); ok {
		t.Error("Expected part lookup to be scoped to its machine")
	}

	if got := c.PartCount(); got != 18 {
		t.Errorf("Expected 18 parts, got %d", got)
	}
}

func TestPartsKeepsDisplayOrder(t *testing.T) {
	parts, ok := Default().Parts("OMD S-Series")
	if !ok {
		t.Fatal("Expected OMD S-Series to exist")
	}
	if parts[0].Code != "FFS03XX015" || parts[len(parts)-1].Code != "FFS06FF036" {
		t.Errorf("Unexpected part order: %v", parts)
	}

	// Returned slices are copies
	parts[0].Code = "changed"
	again, _ := Default().Parts("OMD S-Series")
	if again[0].Code != "FFS03XX015" {
		t.Error("Expected catalog to be unaffected by caller mutation")
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		machines []Machine
		wantErr  error
	}{
		{
			name:     "empty machine name",
			machines: []Machine{{Name: " "}},
			wantErr:  ErrEmptyMachineName,
		},
		{
			name:     "duplicate machine",
			machines: []Machine{{Name: "A"}, {Name: "A"}},
			wantErr:  ErrDuplicateMachine,
		},
		{
			name:     "empty part code",
			machines: []Machine{{Name: "A", Parts: []Part{{Code: ""}}}},
			wantErr:  ErrEmptyPartCode,
		},
		{
			name:     "duplicate code within machine",
			machines: []Machine{{Name: "A", Parts: []Part{{Code: "X"}, {Code: "X"}}}},
			wantErr:  ErrDuplicatePart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.machines)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("same code on different machines", func(t *testing.T) {
		_, err := New([]Machine{
			{Name: "A", Parts: []Part{{Code: "X"}}},
			{Name: "B", Parts: []Part{{Code: "X"}}},
		})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}

func TestFromRecordsGroupsByFirstAppearance(t *testing.T) {
	c, err := FromRecords([]Record{
		{Machine: "B", Code: "1", Description: "one"},
		{Machine: "A", Code: "2", Description: "two"},
		{Machine: "B", Code: "3", Description: "three"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := c.Machines(); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("Expected [B A], got %v", got)
	}
	parts, _ := c.Parts("B")
	if len(parts) != 2 || parts[1].Code != "3" {
		t.Errorf("Unexpected parts for B: %v", parts)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".jsonl", ".parquet"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog"+ext)

			if err := Save(path, Default()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if !reflect.DeepEqual(loaded.All(), Default().All()) {
				t.Errorf("Round trip mismatch:\nwant %v\ngot  %v", Default().All(), loaded.All())
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	content := `machines:
  - name: Press 10
    parts:
      - code: P-1
        description: Piston
      - code: P-2
        description: Gasket
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	part, ok := c.Part("Press 10", "P-2")
	if !ok || part.Description != "Gasket" {
		t.Errorf("Expected Gasket, got %v (found=%v)", part, ok)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("catalog.csv"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
