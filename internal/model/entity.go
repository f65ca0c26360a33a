package model

// EntityID identifies an ontology entity by its IRI string.
type EntityID string

// EntityKind is the declared kind of an entity.
type EntityKind string

const (
	KindClass              EntityKind = "class"
	KindIndividual         EntityKind = "individual"
	KindObjectProperty     EntityKind = "object_property"
	KindDataProperty       EntityKind = "data_property"
	KindAnnotationProperty EntityKind = "annotation_property"
)

// Entity is a declared entity in an ontology's signature.
type Entity struct {
	// ID is the entity's IRI.
	ID EntityID `json:"id"`

	// Kind is the declared entity kind.
	Kind EntityKind `json:"kind"`

	// Label is the human-readable display name (rdfs:label), if any.
	Label string `json:"label,omitempty"`
}

// DisplayName returns the label, falling back to the IRI fragment.
func (e Entity) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	return LocalName(string(e.ID))
}

// LocalName returns the part of an IRI after the last '#' or '/'.
func LocalName(iri string) string {
	for i := len(iri) - 1; i >= 0; i-- {
		if iri[i] == '#' || iri[i] == '/' {
			if i == len(iri)-1 {
				return iri
			}
			return iri[i+1:]
		}
	}
	return iri
}
