package model

import "fmt"

// PropertyKind tags a property reference with the kind of relation it names.
// Index fields and absence universes are selected from this tag.
type PropertyKind int

const (
	PropertyAnnotation PropertyKind = iota
	PropertyData
	PropertyObject
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyData:
		return "data"
	case PropertyObject:
		return "object"
	default:
		return "annotation"
	}
}

// ParsePropertyKind parses "annotation", "data" or "object".
func ParsePropertyKind(s string) (PropertyKind, error) {
	switch s {
	case "annotation", "":
		return PropertyAnnotation, nil
	case "data":
		return PropertyData, nil
	case "object":
		return PropertyObject, nil
	}
	return PropertyAnnotation, fmt.Errorf("unknown property kind %q", s)
}

// EntityKind returns the entity kind used when a property of this kind is
// declared in an ontology signature.
func (k PropertyKind) EntityKind() EntityKind {
	switch k {
	case PropertyData:
		return KindDataProperty
	case PropertyObject:
		return KindObjectProperty
	default:
		return KindAnnotationProperty
	}
}

// Property identifies a relation by IRI and kind.
type Property struct {
	IRI  string       `json:"iri"`
	Kind PropertyKind `json:"kind"`
}

// AnnotationProperty returns an annotation property reference.
func AnnotationProperty(iri string) Property {
	return Property{IRI: iri, Kind: PropertyAnnotation}
}

// DataProperty returns a data property reference.
func DataProperty(iri string) Property {
	return Property{IRI: iri, Kind: PropertyData}
}

// ObjectProperty returns an object property reference.
func ObjectProperty(iri string) Property {
	return Property{IRI: iri, Kind: PropertyObject}
}

func (p Property) String() string {
	return p.Kind.String() + ":" + p.IRI
}
