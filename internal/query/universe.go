package query

import (
	"log/slog"
	"sync"

	"github.com/aidanlsb/ontoq/internal/model"
)

// SearchContext supplies the ontologies in scope for a search.
type SearchContext interface {
	Ontologies() []model.Signature
}

// Universe lazily computes and caches the entity and class sets of a search
// context. Each set is computed at most once, even if it turns out empty.
// Universe is safe for concurrent use.
type Universe struct {
	scope  SearchContext
	logger *slog.Logger

	mu                sync.Mutex
	entities          model.EntitySet
	entitiesPopulated bool
	classes           model.EntitySet
	classesPopulated  bool
}

// NewUniverse returns an unpopulated universe over scope.
func NewUniverse(scope SearchContext, logger *slog.Logger) *Universe {
	if logger == nil {
		logger = slog.Default()
	}
	return &Universe{scope: scope, logger: logger}
}

// Entities returns every entity in the signature of the ontologies in scope.
// The returned set is shared and must not be modified.
func (u *Universe) Entities() model.EntitySet {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.entitiesPopulated {
		u.entities = u.collect(model.Signature.Signature)
		u.entitiesPopulated = true
		u.logger.Info("populated entity universe", "entities", u.entities.Len())
	}
	return u.entities
}

// Classes returns every class declared by the ontologies in scope.
// The returned set is shared and must not be modified.
func (u *Universe) Classes() model.EntitySet {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.classesPopulated {
		u.classes = u.collect(model.Signature.ClassesInSignature)
		u.classesPopulated = true
		u.logger.Info("populated class universe", "classes", u.classes.Len())
	}
	return u.classes
}

// Of returns the universe of the given kind.
func (u *Universe) Of(kind UniverseKind) model.EntitySet {
	if kind == UniverseClasses {
		return u.Classes()
	}
	return u.Entities()
}

// Warm populates both sets up front, before concurrent evaluation begins.
func (u *Universe) Warm() {
	u.Entities()
	u.Classes()
}

// Populated reports which sets have been computed.
func (u *Universe) Populated() (entities, classes bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.entitiesPopulated, u.classesPopulated
}

func (u *Universe) collect(members func(model.Signature) []model.EntityID) model.EntitySet {
	set := model.NewEntitySet()
	if u.scope == nil {
		return set
	}
	for _, o := range u.scope.Ontologies() {
		for _, id := range members(o) {
			set.Add(id)
		}
	}
	return set
}
