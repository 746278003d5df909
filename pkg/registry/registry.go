package registry

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
)

//go:embed concepts.yaml
var embeddedConcepts []byte

// Registry is the loaded banking concept catalogue. It is built once at
// startup and read-only afterwards, so it is safe to share across concurrent
// analyses without locking.
type Registry struct {
	version     string
	definitions []*models.ConceptDefinition
	byKey       map[models.ConceptKey]*models.ConceptDefinition
}

type registryFile struct {
	Version  string                      `yaml:"version"`
	Concepts []*models.ConceptDefinition `yaml:"concepts"`
}

// Load parses the concept registry embedded in the binary.
func Load() (*Registry, error) {
	return parse(embeddedConcepts)
}

// New builds a registry from already-constructed definitions, applying the
// same validation as the YAML loaders. Definition order is preserved.
func New(version string, defs []*models.ConceptDefinition) (*Registry, error) {
	return build(version, defs)
}

// LoadFile parses a concept registry from an external YAML file, overriding
// the embedded artifact.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse concept registry: %w", err)
	}
	return build(file.Version, file.Concepts)
}

func build(version string, defs []*models.ConceptDefinition) (*Registry, error) {
	if version == "" {
		return nil, fmt.Errorf("concept registry has no version")
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("concept registry has no concepts")
	}

	reg := &Registry{
		version:     version,
		definitions: defs,
		byKey:       make(map[models.ConceptKey]*models.ConceptDefinition, len(defs)),
	}
	for i, def := range defs {
		if err := validateDefinition(def); err != nil {
			return nil, fmt.Errorf("concept %d (%s): %w", i, def.Key, err)
		}
		if _, dup := reg.byKey[def.Key]; dup {
			return nil, fmt.Errorf("duplicate concept key %q", def.Key)
		}
		reg.byKey[def.Key] = def
	}
	return reg, nil
}

func validateDefinition(def *models.ConceptDefinition) error {
	if def.Key == "" {
		return fmt.Errorf("missing key")
	}
	if def.Key == models.ConceptUnknown {
		return fmt.Errorf("key %q is reserved", models.ConceptUnknown)
	}
	if !models.IsValidDomain(def.Domain) {
		return fmt.Errorf("invalid domain %q", def.Domain)
	}
	if len(def.NamePatterns) == 0 {
		return fmt.Errorf("no name patterns")
	}
	if len(def.DataPatterns.Types) == 0 {
		return fmt.Errorf("no expected data types")
	}
	for _, t := range def.DataPatterns.Types {
		if !models.IsValidDataType(t) {
			return fmt.Errorf("invalid data type %q", t)
		}
	}
	if c := def.DataPatterns.Uniqueness; c != "" && !models.IsValidUniquenessClass(c) {
		return fmt.Errorf("invalid uniqueness class %q", c)
	}
	if l := def.DataPatterns.Length; l != nil {
		if l.Exact < 0 || l.Min < 0 || l.Max < 0 {
			return fmt.Errorf("negative length bound")
		}
		if l.Exact == 0 && l.Max < l.Min {
			return fmt.Errorf("length max %d below min %d", l.Max, l.Min)
		}
	}
	if c := def.DataPatterns.Cardinality; c != nil && c.Max <= 0 {
		return fmt.Errorf("cardinality max must be positive")
	}
	return nil
}

// Version returns the registry artifact version.
func (r *Registry) Version() string {
	return r.version
}

// Definitions returns all concept definitions in registry order. Callers must
// not mutate the returned slice or its entries.
func (r *Registry) Definitions() []*models.ConceptDefinition {
	return r.definitions
}

// Get returns the definition for a concept key, if present.
func (r *Registry) Get(key models.ConceptKey) (*models.ConceptDefinition, bool) {
	def, ok := r.byKey[key]
	return def, ok
}

// Len returns the number of registered concepts.
func (r *Registry) Len() int {
	return len(r.definitions)
}
