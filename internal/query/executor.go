package query

import (
	"context"
	"fmt"

	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/model"
)

// Evaluate resolves q to the set of matching entities.
//
// Evaluation is depth-first and synchronous. The context is checked at every
// child boundary and between document fetches; a cancelled evaluation returns
// ErrCancelled and no result. A nil listener is allowed.
func (e *Engine) Evaluate(ctx context.Context, q Query, l Listener) (model.EntitySet, error) {
	if l == nil {
		l = nopListener{}
	}
	return e.evaluate(ctx, q, l, 0)
}

func (e *Engine) evaluate(ctx context.Context, q Query, l Listener, depth int) (model.EntitySet, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	var (
		result model.EntitySet
		node   NodeKind
		err    error
	)
	switch q := q.(type) {
	case *BasicQuery:
		node = NodeBasic
		result, err = e.evaluateBasic(ctx, q)
	case *FilteredQuery:
		node = NodeFiltered
		result, err = e.evaluateFiltered(ctx, q, l, depth)
	case *NegatedQuery:
		node = NodeNegated
		result, err = e.evaluateNegated(ctx, q, l, depth)
	case *NestedQuery:
		node = NodeNested
		result, err = e.evaluateNested(ctx, q, l, depth)
	case nil:
		return nil, fmt.Errorf("%w: nil query", ErrUnsupportedQueryType)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedQueryType, q)
	}
	if err != nil {
		return nil, err
	}

	e.logger.Debug("evaluated query", "node", node, "query", q.String(), "depth", depth, "matches", result.Len())
	l.OnProgress(Progress{Node: node, Query: q.String(), Depth: depth, Matches: result.Len()})
	return result, nil
}

func (e *Engine) evaluateBasic(ctx context.Context, q *BasicQuery) (model.EntitySet, error) {
	present, err := e.searchEntities(ctx, q.clause)
	if err != nil {
		return nil, err
	}
	if u, ok := q.Universe(); ok {
		return e.universe.Of(u).Difference(present), nil
	}
	return present, nil
}

// evaluateFiltered folds children in order. Under MatchAll the first child
// seeds the result; no children yields the empty set in either mode.
func (e *Engine) evaluateFiltered(ctx context.Context, q *FilteredQuery, l Listener, depth int) (model.EntitySet, error) {
	result := model.NewEntitySet()
	for i, child := range q.children {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		r, err := e.evaluate(ctx, child, l, depth+1)
		if err != nil {
			return nil, err
		}

		switch {
		case q.mode == MatchAny:
			result = result.Union(r)
		case i == 0:
			result = r
		default:
			result = result.Intersect(r)
		}
	}
	return result, nil
}

func (e *Engine) evaluateNegated(ctx context.Context, q *NegatedQuery, l Listener, depth int) (model.EntitySet, error) {
	if q.inner == nil {
		return nil, fmt.Errorf("%w: negated query has no inner query", ErrUnsupportedQueryType)
	}
	inner, err := e.evaluate(ctx, q.inner, l, depth+1)
	if err != nil {
		return nil, err
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	return e.universe.Of(q.universe).Difference(inner), nil
}

// evaluateNested resolves the filler set first, then keeps the holders of
// the relation whose restriction document points at one of those fillers.
func (e *Engine) evaluateNested(ctx context.Context, q *NestedQuery, l Listener, depth int) (model.EntitySet, error) {
	fillers, err := e.evaluate(ctx, q.inner, l, depth+1)
	if err != nil {
		return nil, err
	}
	if fillers.Len() == 0 {
		return model.NewEntitySet(), nil
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	refs, err := e.searcher.Search(ctx, q.clause)
	if err != nil {
		return nil, evaluationError(ctx, err)
	}

	holders := model.NewEntitySet()
	for _, ref := range refs {
		doc, err := e.fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		filler, ok := doc.Filler()
		if !ok || !fillers.Has(filler) {
			continue
		}
		if holder, ok := doc.Entity(); ok {
			holders.Add(holder)
		}
	}
	return holders, nil
}

// searchEntities runs an index search and maps every hit to its owning
// entity. Duplicate hits for one entity collapse.
func (e *Engine) searchEntities(ctx context.Context, q index.Query) (model.EntitySet, error) {
	refs, err := e.searcher.Search(ctx, q)
	if err != nil {
		return nil, evaluationError(ctx, err)
	}

	set := model.NewEntitySet()
	for _, ref := range refs {
		doc, err := e.fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		if id, ok := doc.Entity(); ok {
			set.Add(id)
		}
	}
	return set, nil
}

func (e *Engine) fetch(ctx context.Context, ref index.DocRef) (index.Document, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	doc, err := e.searcher.Fetch(ctx, ref)
	if err != nil {
		return nil, evaluationError(ctx, err)
	}
	return doc, nil
}

func checkCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}

// evaluationError classifies a searcher failure. Failures caused by
// cancellation report ErrCancelled rather than an index error.
func evaluationError(ctx context.Context, err error) error {
	if cerr := checkCancelled(ctx); cerr != nil {
		return cerr
	}
	return fmt.Errorf("%w: %w", ErrQueryEvaluation, err)
}
