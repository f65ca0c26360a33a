// Package ontology loads ontology documents and exposes them as a catalog.
package ontology

import "github.com/aidanlsb/ontoq/internal/model"

// RDFSLabel is the IRI of rdfs:label. Entity labels are indexed as values of
// this annotation property.
const RDFSLabel = "http://www.w3.org/2000/01/rdf-schema#label"

// Ontology is a loaded ontology with all references resolved to IRIs.
type Ontology struct {
	IRI    string
	Label  string
	Source string // file the ontology was loaded from, if any

	Properties  []*PropertyDecl
	Classes     []*EntityDecl
	Individuals []*EntityDecl
}

// PropertyDecl is a declared (or referenced) property.
type PropertyDecl struct {
	IRI   string
	Label string
	Kind  model.PropertyKind

	// Declared is false for properties only referenced by absolute IRI.
	Declared bool
}

// Ref returns the property reference used to build queries.
func (p *PropertyDecl) Ref() model.Property {
	return model.Property{IRI: p.IRI, Kind: p.Kind}
}

// EntityDecl is a declared class or individual with its axioms.
type EntityDecl struct {
	IRI          string
	Label        string
	Kind         model.EntityKind
	Annotations  []Annotation
	Restrictions []Restriction
}

// Entity returns the model view of the declaration.
func (e *EntityDecl) Entity() model.Entity {
	return model.Entity{ID: model.EntityID(e.IRI), Kind: e.Kind, Label: e.Label}
}

// Annotation is an annotation assertion on an entity.
type Annotation struct {
	Property string // annotation property IRI
	Value    string
}

// Restriction relates a holder entity to a filler entity (object property) or
// to a literal value (data property).
type Restriction struct {
	Property string
	Kind     model.PropertyKind
	Filler   string // filler IRI; object properties only
	Value    string // literal; data properties only
}

// Signature returns every entity the ontology declares: classes,
// individuals and declared properties.
func (o *Ontology) Signature() []model.EntityID {
	out := make([]model.EntityID, 0, len(o.Classes)+len(o.Individuals)+len(o.Properties))
	for _, c := range o.Classes {
		out = append(out, model.EntityID(c.IRI))
	}
	for _, i := range o.Individuals {
		out = append(out, model.EntityID(i.IRI))
	}
	for _, p := range o.Properties {
		if p.Declared {
			out = append(out, model.EntityID(p.IRI))
		}
	}
	return out
}

// ClassesInSignature returns the classes the ontology declares.
func (o *Ontology) ClassesInSignature() []model.EntityID {
	out := make([]model.EntityID, len(o.Classes))
	for i, c := range o.Classes {
		out[i] = model.EntityID(c.IRI)
	}
	return out
}

// Entities returns all declared classes and individuals.
func (o *Ontology) Entities() []*EntityDecl {
	out := make([]*EntityDecl, 0, len(o.Classes)+len(o.Individuals))
	out = append(out, o.Classes...)
	return append(out, o.Individuals...)
}
