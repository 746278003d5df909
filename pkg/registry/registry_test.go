package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersense-io/ledgersense-engine/pkg/models"
)

func TestLoadEmbeddedRegistry(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, reg.Version())
	require.Greater(t, reg.Len(), 0)

	// Definition order is load order; the Customer domain core set comes first.
	defs := reg.Definitions()
	assert.Equal(t, models.ConceptCustomerID, defs[0].Key)

	// Every definition passes lookup round-trip and carries rule text.
	for _, def := range defs {
		got, ok := reg.Get(def.Key)
		require.True(t, ok, "lookup failed for %s", def.Key)
		assert.Same(t, def, got)
		assert.NotEmpty(t, def.Rules.Reason, "concept %s has no rule reason", def.Key)
		assert.NotEmpty(t, def.Rules.ViolationImpact, "concept %s has no violation impact", def.Key)
	}
}

func TestEmbeddedRegistryIdentifiers(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	identifiers := []models.ConceptKey{
		models.ConceptCustomerID,
		models.ConceptPAN,
		models.ConceptAccountNumber,
		models.ConceptLoanID,
		models.ConceptTransactionID,
	}
	for _, key := range identifiers {
		def, ok := reg.Get(key)
		require.True(t, ok)
		assert.True(t, def.IsIdentifier, "%s should be an identifier concept", key)
	}

	// The four workflow-critical identifiers carry bespoke role text.
	for _, key := range []models.ConceptKey{
		models.ConceptCustomerID,
		models.ConceptAccountNumber,
		models.ConceptLoanID,
		models.ConceptTransactionID,
	} {
		def, _ := reg.Get(key)
		assert.NotEmpty(t, def.WorkflowRole, "%s should carry workflow role text", key)
	}
}

func TestParseRejectsInvalidRegistries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing version",
			yaml: `
concepts:
  - key: customer_id
    domain: Customer
    name_patterns: [customer_id]
    data_patterns: {types: [numeric]}
`,
		},
		{
			name: "no concepts",
			yaml: `version: "1.0.0"`,
		},
		{
			name: "duplicate keys",
			yaml: `
version: "1.0.0"
concepts:
  - key: customer_id
    domain: Customer
    name_patterns: [customer_id]
    data_patterns: {types: [numeric]}
  - key: customer_id
    domain: Customer
    name_patterns: [cust_id]
    data_patterns: {types: [numeric]}
`,
		},
		{
			name: "reserved unknown key",
			yaml: `
version: "1.0.0"
concepts:
  - key: unknown
    domain: Customer
    name_patterns: [foo]
    data_patterns: {types: [numeric]}
`,
		},
		{
			name: "invalid domain",
			yaml: `
version: "1.0.0"
concepts:
  - key: customer_id
    domain: Weather
    name_patterns: [customer_id]
    data_patterns: {types: [numeric]}
`,
		},
		{
			name: "invalid data type",
			yaml: `
version: "1.0.0"
concepts:
  - key: customer_id
    domain: Customer
    name_patterns: [customer_id]
    data_patterns: {types: [blob]}
`,
		},
		{
			name: "invalid uniqueness class",
			yaml: `
version: "1.0.0"
concepts:
  - key: customer_id
    domain: Customer
    name_patterns: [customer_id]
    data_patterns: {types: [numeric], uniqueness: medium}
`,
		},
		{
			name: "inverted length range",
			yaml: `
version: "1.0.0"
concepts:
  - key: customer_id
    domain: Customer
    name_patterns: [customer_id]
    data_patterns: {types: [numeric], length: {min: 10, max: 4}}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/concepts.yaml")
	assert.Error(t, err)
}
