package ontology

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/ontoq/internal/model"
	"github.com/aidanlsb/ontoq/internal/slugs"
)

var (
	// ErrUnknownProperty indicates a property reference that cannot be resolved.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrAmbiguousProperty indicates a property reference matching several properties.
	ErrAmbiguousProperty = errors.New("ambiguous property reference")
	// ErrInvalidOntology indicates a structurally invalid ontology document.
	ErrInvalidOntology = errors.New("invalid ontology")
)

type fileSpec struct {
	IRI         string         `yaml:"iri"`
	Label       string         `yaml:"label"`
	Properties  []propertySpec `yaml:"properties"`
	Classes     []entitySpec   `yaml:"classes"`
	Individuals []entitySpec   `yaml:"individuals"`
}

type propertySpec struct {
	IRI   string `yaml:"iri"`
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Kind  string `yaml:"kind"`
}

type entitySpec struct {
	IRI          string            `yaml:"iri"`
	ID           string            `yaml:"id"`
	Label        string            `yaml:"label"`
	Annotations  []annotationSpec  `yaml:"annotations"`
	Restrictions []restrictionSpec `yaml:"restrictions"`
}

type annotationSpec struct {
	Property string `yaml:"property"`
	Value    string `yaml:"value"`
}

type restrictionSpec struct {
	Property string `yaml:"property"`
	Filler   string `yaml:"filler"`
	Value    string `yaml:"value"`
}

// Load loads an ontology from a YAML file.
func Load(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ontology file %s: %w", path, err)
	}
	o, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load ontology %s: %w", path, err)
	}
	o.Source = path
	return o, nil
}

// Parse parses an ontology YAML document and resolves every reference to an IRI.
func Parse(data []byte) (*Ontology, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOntology, err)
	}
	if strings.TrimSpace(spec.IRI) == "" {
		return nil, fmt.Errorf("%w: missing ontology iri", ErrInvalidOntology)
	}

	r := &resolver{
		base:       spec.IRI,
		properties: make(map[string]*PropertyDecl),
		entities:   make(map[string]string),
		seen:       make(map[string]bool),
	}
	o := &Ontology{IRI: spec.IRI, Label: spec.Label}

	// First pass: assign IRIs so that later references can point forward.
	for _, ps := range spec.Properties {
		p, err := r.declareProperty(ps)
		if err != nil {
			return nil, err
		}
		o.Properties = append(o.Properties, p)
	}
	classes, err := r.declareEntities(spec.Classes, model.KindClass)
	if err != nil {
		return nil, err
	}
	individuals, err := r.declareEntities(spec.Individuals, model.KindIndividual)
	if err != nil {
		return nil, err
	}

	// Second pass: resolve annotation and restriction references.
	for i, es := range spec.Classes {
		if err := r.resolveAxioms(o, classes[i], es); err != nil {
			return nil, err
		}
	}
	for i, es := range spec.Individuals {
		if err := r.resolveAxioms(o, individuals[i], es); err != nil {
			return nil, err
		}
	}

	o.Classes = classes
	o.Individuals = individuals
	return o, nil
}

type resolver struct {
	base string
	// properties maps IRI, id and label to a property
	properties map[string]*PropertyDecl
	// entities maps id and label to an entity IRI
	entities map[string]string
	seen     map[string]bool
}

func (r *resolver) iriFor(iri, id, label string) (string, error) {
	switch {
	case iri != "":
		return iri, nil
	case id != "":
		if slugs.IsAbsoluteIRI(id) {
			return id, nil
		}
		return slugs.JoinIRI(r.base, id), nil
	case label != "":
		return slugs.JoinIRI(r.base, slugs.Fragment(label)), nil
	}
	return "", fmt.Errorf("%w: declaration needs iri, id or label", ErrInvalidOntology)
}

func (r *resolver) claim(iri string) error {
	if r.seen[iri] {
		return fmt.Errorf("%w: %s declared twice", ErrInvalidOntology, iri)
	}
	r.seen[iri] = true
	return nil
}

func (r *resolver) declareProperty(ps propertySpec) (*PropertyDecl, error) {
	iri, err := r.iriFor(ps.IRI, ps.ID, ps.Label)
	if err != nil {
		return nil, err
	}
	kind, err := model.ParsePropertyKind(ps.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: property %s: %w", ErrInvalidOntology, iri, err)
	}
	if err := r.claim(iri); err != nil {
		return nil, err
	}

	p := &PropertyDecl{IRI: iri, Label: ps.Label, Kind: kind, Declared: true}
	r.properties[iri] = p
	if ps.ID != "" {
		r.properties[ps.ID] = p
	}
	if ps.Label != "" {
		r.properties[ps.Label] = p
	}
	return p, nil
}

func (r *resolver) declareEntities(specs []entitySpec, kind model.EntityKind) ([]*EntityDecl, error) {
	out := make([]*EntityDecl, 0, len(specs))
	for _, es := range specs {
		iri, err := r.iriFor(es.IRI, es.ID, es.Label)
		if err != nil {
			return nil, err
		}
		if err := r.claim(iri); err != nil {
			return nil, err
		}
		if es.ID != "" {
			r.entities[es.ID] = iri
		}
		if es.Label != "" {
			r.entities[es.Label] = iri
		}
		out = append(out, &EntityDecl{IRI: iri, Label: es.Label, Kind: kind})
	}
	return out, nil
}

func (r *resolver) resolveAxioms(o *Ontology, e *EntityDecl, es entitySpec) error {
	for _, as := range es.Annotations {
		p, err := r.property(o, as.Property, model.PropertyAnnotation)
		if err != nil {
			return fmt.Errorf("%s: %w", e.IRI, err)
		}
		if p.Kind != model.PropertyAnnotation {
			return fmt.Errorf("%w: %s: %s is a %s property, not an annotation property",
				ErrInvalidOntology, e.IRI, p.IRI, p.Kind)
		}
		e.Annotations = append(e.Annotations, Annotation{Property: p.IRI, Value: as.Value})
	}

	for _, rs := range es.Restrictions {
		hasFiller := strings.TrimSpace(rs.Filler) != ""
		if hasFiller == (rs.Value != "") {
			return fmt.Errorf("%w: %s: restriction on %s needs exactly one of filler or value",
				ErrInvalidOntology, e.IRI, rs.Property)
		}
		implied := model.PropertyData
		if hasFiller {
			implied = model.PropertyObject
		}

		p, err := r.property(o, rs.Property, implied)
		if err != nil {
			return fmt.Errorf("%s: %w", e.IRI, err)
		}
		if p.Kind != implied {
			return fmt.Errorf("%w: %s: %s is a %s property", ErrInvalidOntology, e.IRI, p.IRI, p.Kind)
		}

		restriction := Restriction{Property: p.IRI, Kind: p.Kind, Value: rs.Value}
		if hasFiller {
			restriction.Filler = r.entity(rs.Filler)
		}
		e.Restrictions = append(e.Restrictions, restriction)
	}
	return nil
}

// property resolves a property reference. Absolute IRIs that were never
// declared are accepted with the kind implied by their use.
func (r *resolver) property(o *Ontology, ref string, implied model.PropertyKind) (*PropertyDecl, error) {
	if p, ok := r.properties[ref]; ok {
		return p, nil
	}
	if !slugs.IsAbsoluteIRI(ref) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, ref)
	}
	p := &PropertyDecl{IRI: ref, Kind: implied}
	r.properties[ref] = p
	o.Properties = append(o.Properties, p)
	return p, nil
}

func (r *resolver) entity(ref string) string {
	if iri, ok := r.entities[ref]; ok {
		return iri
	}
	if slugs.IsAbsoluteIRI(ref) {
		return ref
	}
	return slugs.JoinIRI(r.base, ref)
}
