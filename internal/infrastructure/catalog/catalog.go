// Package catalog loads the institution catalog and serves it read-only.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/unimatch/backend/internal/domain"
)

//go:embed data/institutions.yaml
var embeddedCatalog []byte

// Catalog is an immutable in-memory CatalogRepository
type Catalog struct {
	institutions []domain.Institution
	byID         map[string]int
}

// New builds a Catalog over institutions, keeping their order
func New(institutions []domain.Institution) *Catalog {
	c := &Catalog{
		institutions: make([]domain.Institution, len(institutions)),
		byID:         make(map[string]int, len(institutions)),
	}
	copy(c.institutions, institutions)
	for i, inst := range c.institutions {
		c.byID[inst.ID] = i
	}
	return c
}

// Parse decodes, validates and maps a YAML (or JSON) catalog document
func Parse(data []byte) ([]domain.Institution, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrCatalogInvalid)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}

	return mapInstitutions(doc.Institutions)
}

// Embedded returns the catalog compiled into the binary
func Embedded() (*Catalog, error) {
	institutions, err := Parse(embeddedCatalog)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return New(institutions), nil
}

// LoadFile reads a catalog document from disk
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	institutions, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return New(institutions), nil
}

// All returns a copy of every institution in catalog order
func (c *Catalog) All(_ context.Context) ([]domain.Institution, error) {
	out := make([]domain.Institution, len(c.institutions))
	copy(out, c.institutions)
	return out, nil
}

// ByID returns the institution with the given id
func (c *Catalog) ByID(_ context.Context, id string) (*domain.Institution, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrInstitutionNotFound
	}
	inst := c.institutions[i]
	return &inst, nil
}

// Len reports the number of institutions
func (c *Catalog) Len() int {
	return len(c.institutions)
}
