package cli

import (
	"errors"
	"io/fs"

	"github.com/aidanlsb/ontoq/internal/filter"
	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/ontology"
	"github.com/aidanlsb/ontoq/internal/query"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	ErrConfigInvalid   = "CONFIG_INVALID"
	ErrConfigExists    = "CONFIG_EXISTS"
	ErrOntologyInvalid = "ONTOLOGY_INVALID"

	ErrIndexError  = "INDEX_ERROR"
	ErrIndexLocked = "INDEX_LOCKED"

	ErrFilterInvalid        = "FILTER_INVALID"
	ErrUnknownProperty      = "UNKNOWN_PROPERTY"
	ErrAmbiguousProperty    = "AMBIGUOUS_PROPERTY"
	ErrUnsupportedQueryType = "UNSUPPORTED_QUERY_TYPE"
	ErrQueryFailed          = "QUERY_FAILED"
	ErrQueryCancelled       = "QUERY_CANCELLED"

	ErrFileNotFound = "FILE_NOT_FOUND"
	ErrInvalidInput = "INVALID_INPUT"
	ErrInternal     = "INTERNAL_ERROR"
)

// errReported marks an error whose JSON envelope has already been written.
var errReported = errors.New("error reported")

// errorCode maps an error chain to its stable code. Cancellation is checked
// first because a cancelled evaluation may also wrap an index failure.
func errorCode(err error) string {
	switch {
	case errors.Is(err, query.ErrCancelled):
		return ErrQueryCancelled
	case errors.Is(err, ontology.ErrUnknownProperty):
		return ErrUnknownProperty
	case errors.Is(err, ontology.ErrAmbiguousProperty):
		return ErrAmbiguousProperty
	case errors.Is(err, query.ErrUnsupportedQueryType):
		return ErrUnsupportedQueryType
	case errors.Is(err, filter.ErrInvalidFilter):
		return ErrFilterInvalid
	case errors.Is(err, ontology.ErrInvalidOntology):
		return ErrOntologyInvalid
	case errors.Is(err, query.ErrQueryEvaluation):
		return ErrQueryFailed
	case errors.Is(err, index.ErrIndexLocked):
		return ErrIndexLocked
	case errors.Is(err, index.ErrIndexIO), errors.Is(err, index.ErrDocumentNotFound):
		return ErrIndexError
	case errors.Is(err, fs.ErrNotExist):
		return ErrFileNotFound
	default:
		return ErrInternal
	}
}

// suggestionFor returns a hint for the codes a user can act on.
func suggestionFor(code string) string {
	switch code {
	case ErrUnknownProperty:
		return "Run 'ontoq entities --properties' to list the properties in scope"
	case ErrAmbiguousProperty:
		return "Refer to the property by its full IRI"
	case ErrIndexLocked:
		return "Another 'ontoq index' is running; retry when it finishes"
	case ErrIndexError:
		return "Run 'ontoq index' to rebuild the index"
	case ErrUnsupportedQueryType:
		return "Valid types: contains, starts_with, ends_with, exact_match, property_value_present, property_value_absent, property_restriction_present, property_restriction_absent"
	}
	return ""
}

// fail reports err under its mapped code.
func fail(err error) error {
	code := errorCode(err)
	return handleError(code, err, suggestionFor(code))
}
