// Package rolemap resolves role names as they appear in uploaded
// worksheets to catalog role codes. The table is fixed at startup and
// passed to the import service; adding an entry is how a new worksheet
// role label becomes importable.
package rolemap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Table struct {
	nameToCode map[string]string
}

// Defaults returns the built-in worksheet name to role code table.
func Defaults() *Table {
	return New(map[string]string{
		"Chief Epidemiologist":                "1",
		"Department Chief, MoH":               "14",
		"DH PIU Coordinator":                  "8",
		"Task Team Leader (TTL)":              "10",
		"Digital Health Enterprise Architect": "6",
		"Digital Transformation Expert":       "13",
	})
}

func New(entries map[string]string) *Table {
	m := make(map[string]string, len(entries))
	for name, code := range entries {
		m[name] = code
	}
	return &Table{nameToCode: m}
}

// LoadFile reads a YAML mapping of worksheet role names to role codes.
func LoadFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role mappings: %w", err)
	}
	var entries map[string]string
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse role mappings: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("role mappings file %s has no entries", path)
	}
	return New(entries), nil
}

// Resolve looks up the trimmed worksheet role name. Matching is exact and
// case-sensitive.
func (t *Table) Resolve(name string) (string, bool) {
	code, ok := t.nameToCode[strings.TrimSpace(name)]
	return code, ok
}

func (t *Table) Len() int { return len(t.nameToCode) }
