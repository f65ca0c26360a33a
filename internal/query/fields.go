package query

import (
	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/model"
)

// fieldSet is the index layout used for one property kind.
type fieldSet struct {
	identity string // holds the property IRI
	value    string // holds the textual value or filler name
	category SearchCategory
}

var fieldsByKind = map[model.PropertyKind]fieldSet{
	model.PropertyAnnotation: {
		identity: index.FieldAnnotationIRI,
		value:    index.FieldAnnotationText,
		category: CategoryAnnotationValue,
	},
	model.PropertyData: {
		identity: index.FieldDataPropertyIRI,
		value:    index.FieldFillerDisplayName,
		category: CategoryLogicalAxiom,
	},
	model.PropertyObject: {
		identity: index.FieldObjectPropertyIRI,
		value:    index.FieldFillerDisplayName,
		category: CategoryLogicalAxiom,
	},
}

// absenceUniverse maps each absence type to its complement base.
// Restrictions are only checked over the class hierarchy.
var absenceUniverse = map[QueryType]UniverseKind{
	PropertyValueAbsent:       UniverseEntities,
	PropertyRestrictionAbsent: UniverseClasses,
}

func fieldsFor(p model.Property) (fieldSet, bool) {
	fs, ok := fieldsByKind[p.Kind]
	return fs, ok
}
