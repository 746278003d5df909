package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ledgersense-io/ledgersense-engine/pkg/apperrors"
)

//go:embed descriptions.yaml
var embeddedDescriptions []byte

// ColumnDescription is one catalogue entry: a human-authored description of a
// well-known banking column and the documentation section it came from.
type ColumnDescription struct {
	Name        string `json:"name" yaml:"name"`
	Section     string `json:"section" yaml:"section"`
	Description string `json:"description" yaml:"description"`
}

// DescriptionCatalog looks up human-authored descriptions for column names.
// A miss is reported through the bool, not an error; errors are reserved for
// the catalogue itself being unreachable. Implementations must be safe for
// concurrent use.
type DescriptionCatalog interface {
	Lookup(ctx context.Context, columnName string) (*ColumnDescription, bool, error)
}

type staticCatalog struct {
	entries []*ColumnDescription
	byName  map[string]*ColumnDescription
}

type catalogFile struct {
	Columns []*ColumnDescription `yaml:"columns"`
}

// Load parses the description catalogue embedded in the binary.
func Load() (DescriptionCatalog, error) {
	return parse(embeddedDescriptions)
}

// LoadFile parses a description catalogue from an external YAML file.
func LoadFile(path string) (DescriptionCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", apperrors.ErrCatalogUnavailable, path, err)
	}
	return parse(data)
}

func parse(data []byte) (DescriptionCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse description catalog: %w", err)
	}
	if len(file.Columns) == 0 {
		return nil, fmt.Errorf("description catalog has no columns")
	}

	c := &staticCatalog{
		entries: file.Columns,
		byName:  make(map[string]*ColumnDescription, len(file.Columns)),
	}
	for _, entry := range file.Columns {
		key := normalizeName(entry.Name)
		if key == "" {
			return nil, fmt.Errorf("description catalog entry with empty name")
		}
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", key)
		}
		c.byName[key] = entry
	}
	return c, nil
}

// Lookup resolves a column name to its catalogue entry. Matching is tried in
// three passes: exact normalized name, substring containment either way, then
// equality after stripping the common _id/_number/_code suffixes. Entry order
// breaks ties in the partial passes.
func (c *staticCatalog) Lookup(ctx context.Context, columnName string) (*ColumnDescription, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	normalized := normalizeName(columnName)
	if normalized == "" {
		return nil, false, nil
	}

	if entry, ok := c.byName[normalized]; ok {
		return entry, true, nil
	}

	for _, entry := range c.entries {
		key := normalizeName(entry.Name)
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return entry, true, nil
		}
	}

	base := stripIDSuffixes(normalized)
	for _, entry := range c.entries {
		if stripIDSuffixes(normalizeName(entry.Name)) == base {
			return entry, true, nil
		}
	}

	return nil, false, nil
}

func normalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

func stripIDSuffixes(name string) string {
	for _, suffix := range []string{"_id", "_number", "_code"} {
		name = strings.ReplaceAll(name, suffix, "")
	}
	return name
}

var _ DescriptionCatalog = (*staticCatalog)(nil)
