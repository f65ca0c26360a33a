package query

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/ontoq/internal/analysis"
	"github.com/aidanlsb/ontoq/internal/index"
	"github.com/aidanlsb/ontoq/internal/model"
)

// BuildIndexQuery builds the index expression for a value query on p: a
// required term on the property's identity field and a required value clause
// selected by t.
func BuildIndexQuery(p model.Property, t QueryType, text string) (index.Query, error) {
	identity, value, err := leafClauses(p, t, text)
	if err != nil {
		return nil, err
	}
	return index.And(identity, value), nil
}

// BuildNegatedIndexQuery is like BuildIndexQuery but prohibits the value
// clause: it matches values of p that do not satisfy t.
func BuildNegatedIndexQuery(p model.Property, t QueryType, text string) (index.Query, error) {
	identity, value, err := leafClauses(p, t, text)
	if err != nil {
		return nil, err
	}
	return index.AndNot(identity, value), nil
}

// BuildExistenceQuery builds the bare identity clause matching every
// document that asserts p.
func BuildExistenceQuery(p model.Property) (index.Query, error) {
	fs, err := checkProperty(p)
	if err != nil {
		return nil, err
	}
	return index.Term(fs.identity, p.IRI), nil
}

func leafClauses(p model.Property, t QueryType, text string) (identity, value index.Query, err error) {
	fs, err := checkProperty(p)
	if err != nil {
		return nil, nil, err
	}
	if !t.IsValueType() {
		return nil, nil, fmt.Errorf("%w: %s does not compare values", ErrUnsupportedQueryType, t)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, fmt.Errorf("%w: %s requires search text", ErrUnsupportedQueryType, t)
	}
	if len(analysis.Terms(index.AnalyzerFor(fs.value), text)) == 0 {
		return nil, nil, fmt.Errorf("%w: %s search text %q has no searchable terms", ErrUnsupportedQueryType, t, text)
	}

	switch t {
	case Contains:
		value = index.Term(fs.value, text)
	case StartsWith:
		value = index.Prefix(fs.value, text)
	case EndsWith:
		value = index.Suffix(fs.value, text)
	case ExactMatch:
		value = index.Phrase(fs.value, text)
	}
	return index.Term(fs.identity, p.IRI), value, nil
}

func checkProperty(p model.Property) (fieldSet, error) {
	if p.IRI == "" {
		return fieldSet{}, fmt.Errorf("%w: property has no IRI", ErrUnsupportedQueryType)
	}
	fs, ok := fieldsFor(p)
	if !ok {
		return fieldSet{}, fmt.Errorf("%w: unknown property kind %d", ErrUnsupportedQueryType, int(p.Kind))
	}
	return fs, nil
}
