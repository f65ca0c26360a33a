package ontology

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aidanlsb/ontoq/internal/model"
)

// Catalog is the collection of ontologies in scope for a search.
type Catalog struct {
	ontologies []*Ontology
	entities   map[model.EntityID]model.Entity
	properties map[string]*PropertyDecl
	// aliases maps lowercased labels and local names to property IRIs
	aliases map[string][]string
}

// NewCatalog builds a catalog over the given ontologies.
func NewCatalog(ontologies ...*Ontology) *Catalog {
	c := &Catalog{
		entities:   make(map[model.EntityID]model.Entity),
		properties: make(map[string]*PropertyDecl),
		aliases:    make(map[string][]string),
	}
	c.addProperty(&PropertyDecl{IRI: RDFSLabel, Label: "label", Kind: model.PropertyAnnotation})
	for _, o := range ontologies {
		c.add(o)
	}
	return c
}

// LoadCatalog loads every ontology file in paths.
func LoadCatalog(paths []string) (*Catalog, error) {
	ontologies := make([]*Ontology, 0, len(paths))
	for _, path := range paths {
		o, err := Load(path)
		if err != nil {
			return nil, err
		}
		ontologies = append(ontologies, o)
	}
	return NewCatalog(ontologies...), nil
}

func (c *Catalog) add(o *Ontology) {
	c.ontologies = append(c.ontologies, o)
	for _, e := range o.Entities() {
		if _, exists := c.entities[model.EntityID(e.IRI)]; !exists {
			c.entities[model.EntityID(e.IRI)] = e.Entity()
		}
	}
	for _, p := range o.Properties {
		if p.Declared {
			if _, exists := c.entities[model.EntityID(p.IRI)]; !exists {
				c.entities[model.EntityID(p.IRI)] = model.Entity{
					ID:    model.EntityID(p.IRI),
					Kind:  p.Kind.EntityKind(),
					Label: p.Label,
				}
			}
		}
		c.addProperty(p)
	}
}

func (c *Catalog) addProperty(p *PropertyDecl) {
	if existing, ok := c.properties[p.IRI]; !ok || (!existing.Declared && p.Declared) {
		c.properties[p.IRI] = p
	}
	keys := []string{strings.ToLower(model.LocalName(p.IRI))}
	if p.Label != "" {
		keys = append(keys, strings.ToLower(p.Label))
	}
	for _, key := range keys {
		if !containsString(c.aliases[key], p.IRI) {
			c.aliases[key] = append(c.aliases[key], p.IRI)
		}
	}
}

// List returns the loaded ontologies in load order.
func (c *Catalog) List() []*Ontology {
	return c.ontologies
}

// Ontologies returns the signatures of every ontology in scope.
func (c *Catalog) Ontologies() []model.Signature {
	out := make([]model.Signature, len(c.ontologies))
	for i, o := range c.ontologies {
		out[i] = o
	}
	return out
}

// Entity returns a declared entity by IRI.
func (c *Catalog) Entity(id model.EntityID) (model.Entity, bool) {
	e, ok := c.entities[id]
	return e, ok
}

// DisplayName returns the label of a known entity, or the IRI's local name.
func (c *Catalog) DisplayName(id model.EntityID) string {
	if e, ok := c.entities[id]; ok {
		return e.DisplayName()
	}
	return model.LocalName(string(id))
}

// Properties returns all known properties sorted by IRI.
func (c *Catalog) Properties() []*PropertyDecl {
	out := make([]*PropertyDecl, 0, len(c.properties))
	for _, p := range c.properties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IRI < out[j].IRI })
	return out
}

// ResolveProperty resolves a property by IRI, local name or label.
// Name matching is case-insensitive.
func (c *Catalog) ResolveProperty(ref string) (model.Property, error) {
	if p, ok := c.properties[ref]; ok {
		return p.Ref(), nil
	}
	matches := c.aliases[strings.ToLower(strings.TrimSpace(ref))]
	switch len(matches) {
	case 0:
		return model.Property{}, fmt.Errorf("%w: %q", ErrUnknownProperty, ref)
	case 1:
		return c.properties[matches[0]].Ref(), nil
	}
	return model.Property{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguousProperty, ref, strings.Join(matches, ", "))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
