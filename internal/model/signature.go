package model

// Signature is the view of an ontology the query engine needs: the entities
// it declares, and the classes among them.
type Signature interface {
	Signature() []EntityID
	ClassesInSignature() []EntityID
}
