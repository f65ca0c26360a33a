package index

import "github.com/aidanlsb/ontoq/internal/model"

// DocRef is an opaque reference to an indexed document.
type DocRef int64

// Document maps field names to one or more values.
type Document map[string][]string

// Add appends a value to field.
func (d Document) Add(field, value string) {
	d[field] = append(d[field], value)
}

// Get returns the first value of field, or "".
func (d Document) Get(field string) string {
	if vs := d[field]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Entity returns the entity the document describes.
func (d Document) Entity() (model.EntityID, bool) {
	iri := d.Get(FieldEntityIRI)
	return model.EntityID(iri), iri != ""
}

// Filler returns the filler entity of a restriction document.
func (d Document) Filler() (model.EntityID, bool) {
	iri := d.Get(FieldFillerIRI)
	return model.EntityID(iri), iri != ""
}
