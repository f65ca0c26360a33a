package query

import "errors"

var (
	// ErrUnsupportedQueryType indicates an invalid type, property or search
	// text combination. It is a caller error and is never retried.
	ErrUnsupportedQueryType = errors.New("unsupported query type")

	// ErrQueryEvaluation wraps index failures raised while evaluating a query.
	ErrQueryEvaluation = errors.New("query evaluation failed")

	// ErrCancelled is returned when evaluation is cancelled through its context.
	// A cancelled evaluation never reports a partial or empty result.
	ErrCancelled = errors.New("query evaluation cancelled")
)
