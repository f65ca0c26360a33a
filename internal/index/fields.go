package index

import "github.com/aidanlsb/ontoq/internal/analysis"

// Index field names.
const (
	// FieldEntityIRI holds the IRI of the entity a document describes.
	FieldEntityIRI = "entity_iri"
	// FieldEntityKind holds the declared kind of a declaration document's entity.
	FieldEntityKind = "entity_kind"
	// FieldDisplayName holds the entity's display name on declaration documents.
	FieldDisplayName = "display_name"

	FieldAnnotationIRI  = "annotation_iri"
	FieldAnnotationText = "annotation_text"

	FieldDataPropertyIRI   = "data_property_iri"
	FieldObjectPropertyIRI = "object_property_iri"

	// FieldFillerIRI holds the filler entity of an object restriction.
	FieldFillerIRI = "filler_iri"
	// FieldFillerDisplayName holds the filler's display name, or the literal
	// value of a data restriction.
	FieldFillerDisplayName = "filler_display_name"
)

// Document categories.
const (
	CategoryDeclaration     = "declaration"
	CategoryAnnotationValue = "annotation_value"
	CategoryLogicalAxiom    = "logical_axiom"
)

var (
	keywordAnalyzer  = analysis.NewKeywordAnalyzer()
	standardAnalyzer = analysis.NewStandardAnalyzer()
)

var textFields = map[string]bool{
	FieldDisplayName:       true,
	FieldAnnotationText:    true,
	FieldFillerDisplayName: true,
}

// AnalyzerFor returns the analyzer used for values of field.
// Text fields are tokenized; every other field is a keyword field.
func AnalyzerFor(field string) analysis.Analyzer {
	if textFields[field] {
		return standardAnalyzer
	}
	return keywordAnalyzer
}
