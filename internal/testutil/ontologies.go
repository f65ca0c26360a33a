package testutil

import (
	"fmt"
	"strings"
)

// OncologyBase is the IRI namespace of OncologyOntology.
const OncologyBase = "http://example.org/onco#"

// OncologyOntology returns a small ontology of cells and tissues:
//
//	A "neoplastic cell"   hasSynonym "tumor cell",   hasLocation Lung
//	B "neoplastic tissue" hasSynonym "Tumor growth", hasLocation liver, hasStage "II"
//	C "blood cell"
//	Lung "lung" hasDefinition "Respiratory organ"
//	liver
//	patient1 (individual) hasLocation Lung
//
// Its signature holds 10 entities: five classes, one individual and four
// declared properties.
func OncologyOntology() string {
	return `iri: http://example.org/onco
label: Oncology fixture
properties:
  - id: hasSynonym
    label: has synonym
    kind: annotation
  - id: hasDefinition
    label: has definition
    kind: annotation
  - id: hasLocation
    label: has location
    kind: object
  - id: hasStage
    kind: data
classes:
  - id: A
    label: neoplastic cell
    annotations:
      - property: hasSynonym
        value: tumor cell
    restrictions:
      - property: hasLocation
        filler: Lung
  - id: B
    label: neoplastic tissue
    annotations:
      - property: hasSynonym
        value: Tumor growth
    restrictions:
      - property: hasLocation
        filler: liver
      - property: hasStage
        value: "II"
  - id: C
    label: blood cell
  - id: Lung
    label: lung
    annotations:
      - property: hasDefinition
        value: Respiratory organ
  - label: liver
individuals:
  - id: patient1
    label: Patient One
    restrictions:
      - property: hasLocation
        filler: Lung
`
}

// DefinitionBase is the IRI namespace of DefinitionOntology.
const DefinitionBase = "http://example.org/defs#"

// SKOSDefinition is the IRI of skos:definition.
const SKOSDefinition = "http://www.w3.org/2004/02/skos/core#definition"

// DefinitionOntology returns an ontology of total classes K0..K(total-1)
// where the first annotated classes carry a skos:definition. The property
// is only referenced, so the signature holds exactly the classes.
func DefinitionOntology(total, annotated int) string {
	var b strings.Builder
	b.WriteString("iri: http://example.org/defs\nclasses:\n")
	for i := 0; i < total; i++ {
		fmt.Fprintf(&b, "  - id: K%d\n", i)
		if i < annotated {
			fmt.Fprintf(&b, "    annotations:\n      - property: %s\n        value: definition of K%d\n", SKOSDefinition, i)
		}
	}
	return b.String()
}
