package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/model"
)

// Searcher is the index access the engine consumes.
// *index.Database implements it.
type Searcher interface {
	Search(ctx context.Context, q index.Query) ([]index.DocRef, error)
	Fetch(ctx context.Context, ref index.DocRef) (index.Document, error)
}

// Engine creates queries and evaluates them against a Searcher. It owns the
// universe cache for its search context, so one engine corresponds to one
// evaluation session.
type Engine struct {
	searcher Searcher
	universe *Universe
	logger   *slog.Logger
	session  string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSession overrides the generated session id.
func WithSession(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.session = id
		}
	}
}

// NewEngine returns an engine searching s within scope.
func NewEngine(scope SearchContext, s Searcher, opts ...Option) *Engine {
	e := &Engine{
		searcher: s,
		logger:   slog.Default(),
		session:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("session", e.session)
	e.universe = NewUniverse(scope, e.logger)
	return e
}

// Session returns the id attached to the engine's log records.
func (e *Engine) Session() string { return e.session }

// Universe returns the engine's universe cache.
func (e *Engine) Universe() *Universe { return e.universe }

// CreateQuery builds a basic query. Value types need search text; existence
// types must not be given any.
func (e *Engine) CreateQuery(p model.Property, t QueryType, text string) (*BasicQuery, error) {
	return newBasicQuery(p, t, text, false)
}

// CreateNegatedQuery builds a value query matching values of p that do not
// satisfy t.
func (e *Engine) CreateNegatedQuery(p model.Property, t QueryType, text string) (*BasicQuery, error) {
	return newBasicQuery(p, t, text, true)
}

// CreateContainsFilter matches values of p containing every term of text.
func (e *Engine) CreateContainsFilter(p model.Property, text string) (*BasicQuery, error) {
	return e.CreateQuery(p, Contains, text)
}

// CreateStartsWithFilter matches values of p starting with text.
func (e *Engine) CreateStartsWithFilter(p model.Property, text string) (*BasicQuery, error) {
	return e.CreateQuery(p, StartsWith, text)
}

// CreateEndsWithFilter matches values of p ending with text.
func (e *Engine) CreateEndsWithFilter(p model.Property, text string) (*BasicQuery, error) {
	return e.CreateQuery(p, EndsWith, text)
}

// CreateExactMatchFilter matches values of p equal to text.
func (e *Engine) CreateExactMatchFilter(p model.Property, text string) (*BasicQuery, error) {
	return e.CreateQuery(p, ExactMatch, text)
}

func newBasicQuery(p model.Property, t QueryType, text string, negated bool) (*BasicQuery, error) {
	fs, err := checkProperty(p)
	if err != nil {
		return nil, err
	}

	var clause index.Query
	switch {
	case t.IsValueType() && negated:
		clause, err = BuildNegatedIndexQuery(p, t, text)
	case t.IsValueType():
		clause, err = BuildIndexQuery(p, t, text)
	case t.IsNonValueType():
		if strings.TrimSpace(text) != "" {
			return nil, fmt.Errorf("%w: %s takes no search text", ErrUnsupportedQueryType, t)
		}
		if negated {
			return nil, fmt.Errorf("%w: %s cannot be negated", ErrUnsupportedQueryType, t)
		}
		clause, err = BuildExistenceQuery(p)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedQueryType, t)
	}
	if err != nil {
		return nil, err
	}

	return &BasicQuery{
		typ:      t,
		property: p,
		text:     text,
		negated:  negated,
		clause:   clause,
		category: fs.category,
	}, nil
}
