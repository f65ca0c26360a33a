// Package filter reads filter documents and compiles them into query trees.
//
// A filter document is YAML:
//
//	match: all
//	filters:
//	  - property: has synonym
//	    type: contains
//	    value: tumor
//	  - not:
//	      filters:
//	        - {property: hasDefinition, type: property_value_present}
//	  - some:
//	      relation: hasLocation
//	      filters:
//	        - {property: label, type: exact_match, value: lung}
package filter

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/ontoq/internal/model"
	"github.com/aidanlsb/ontoq/internal/query"
)

// ErrInvalidFilter indicates a structurally invalid filter document.
var ErrInvalidFilter = errors.New("invalid filter")

// Document is a parsed filter document.
type Document struct {
	Group `yaml:",inline"`
}

// Group is an ordered list of filters combined by Match.
type Group struct {
	Match   string   `yaml:"match,omitempty"`
	Filters []Filter `yaml:"filters"`
}

// Filter is one entry of a group. Exactly one of Property, Not or Some is set.
type Filter struct {
	Property string `yaml:"property,omitempty"`
	Type     string `yaml:"type,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Negated  bool   `yaml:"negated,omitempty"`

	Not  *Group  `yaml:"not,omitempty"`
	Some *Nested `yaml:"some,omitempty"`
}

// Nested restricts the fillers of Relation to the entities matching the group.
type Nested struct {
	Relation string `yaml:"relation"`
	Group    `yaml:",inline"`
}

// PropertyResolver resolves property references written in filter documents.
// *ontology.Catalog implements it.
type PropertyResolver interface {
	ResolveProperty(ref string) (model.Property, error)
}

// Load reads a filter document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a filter document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return &doc, nil
}

// Compiler turns filter documents into query trees.
type Compiler struct {
	engine      *query.Engine
	properties  PropertyResolver
	defaultMode query.MatchMode
}

// NewCompiler returns a compiler creating queries with engine. Groups that
// do not name a match mode use defaultMode.
func NewCompiler(engine *query.Engine, properties PropertyResolver, defaultMode query.MatchMode) *Compiler {
	return &Compiler{engine: engine, properties: properties, defaultMode: defaultMode}
}

// Compile builds the query tree of doc. If override is non-nil it replaces
// the match mode of the top-level group.
func (c *Compiler) Compile(doc *Document, override *query.MatchMode) (*query.FilteredQuery, error) {
	mode, err := c.mode(doc.Match)
	if err != nil {
		return nil, err
	}
	if override != nil {
		mode = *override
	}
	return c.group(doc.Group, mode, "filters")
}

func (c *Compiler) mode(name string) (query.MatchMode, error) {
	if strings.TrimSpace(name) == "" {
		return c.defaultMode, nil
	}
	mode, err := query.ParseMatchMode(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return mode, nil
}

func (c *Compiler) group(g Group, mode query.MatchMode, path string) (*query.FilteredQuery, error) {
	b := c.engine.NewUserQueryBuilder()

	for i, f := range g.Filters {
		at := fmt.Sprintf("%s[%d]", path, i)
		if err := c.add(b, f, at); err != nil {
			return nil, err
		}
		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
	}
	return b.Build(mode)
}

func (c *Compiler) add(b *query.UserQueryBuilder, f Filter, at string) error {
	set := 0
	for _, present := range []bool{f.Property != "", f.Not != nil, f.Some != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: %s: exactly one of property, not or some is required", ErrInvalidFilter, at)
	}

	switch {
	case f.Not != nil:
		mode, err := c.mode(f.Not.Match)
		if err != nil {
			return err
		}
		inner, err := c.group(*f.Not, mode, at+".not.filters")
		if err != nil {
			return err
		}
		b.AddNegatedQuery(inner)

	case f.Some != nil:
		relation, err := c.properties.ResolveProperty(f.Some.Relation)
		if err != nil {
			return fmt.Errorf("%s.some.relation: %w", at, err)
		}
		if relation.Kind != model.PropertyObject {
			return fmt.Errorf("%w: %s.some.relation: %s is a %s property, not an object property",
				ErrInvalidFilter, at, relation.IRI, relation.Kind)
		}
		mode, err := c.mode(f.Some.Match)
		if err != nil {
			return err
		}
		inner, err := c.group(f.Some.Group, mode, at+".some.filters")
		if err != nil {
			return err
		}
		b.AddNestedQuery(inner, relation.IRI)

	default:
		property, err := c.properties.ResolveProperty(f.Property)
		if err != nil {
			return fmt.Errorf("%s.property: %w", at, err)
		}
		qt, err := query.ParseQueryType(f.Type)
		if err != nil {
			return fmt.Errorf("%s.type: %w", at, err)
		}
		b.AddBasicQuery(property, qt, f.Value, f.Negated)
	}
	return nil
}
