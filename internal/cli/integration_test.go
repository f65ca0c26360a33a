//go:build integration

package cli_test

import (
	"testing"

	"github.com/aidanlsb/ontoq/internal/testutil"
)

const base = testutil.OncologyBase

// TestIntegration_IndexAndQuery builds the binary and runs the full flow.
func TestIntegration_IndexAndQuery(t *testing.T) {
	ws := testutil.NewTestWorkspace(t).
		WithOntology("onco.yaml", testutil.OncologyOntology()).
		WithFile("filters/tumors.yaml", `
match: any
filters:
  - {property: has synonym, type: contains, value: tumor}
  - {property: label, type: exact_match, value: blood cell}
`).
		WithFile("filters/located.yaml", `
filters:
  - some:
      relation: has location
      filters:
        - {property: label, type: exact_match, value: lung}
  - not:
      filters:
        - {property: label, type: starts_with, value: patient}
`).
		Build()

	result := ws.RunCLI("index")
	result.MustSucceed(t)
	if got := result.DataInt("documents"); got != 26 {
		t.Fatalf("expected 26 documents, got %d", got)
	}

	ws.AssertQueryIRIs("filters/tumors.yaml", base+"A", base+"B", base+"C")
	ws.AssertQueryIRIs("filters/located.yaml", base+"A")
}

// TestIntegration_QueryFromStdin reads the filter document from stdin.
func TestIntegration_QueryFromStdin(t *testing.T) {
	ws := testutil.NewTestWorkspace(t).
		WithOntology("onco.yaml", testutil.OncologyOntology()).
		Build()
	ws.RunCLI("index").MustSucceed(t)

	result := ws.RunCLIWithStdin("filters:\n  - {property: hasStage, type: property_restriction_present}\n", "query", "-")
	result.MustSucceed(t)
	result.AssertResultCount(t, "entities", 1)
	if iris := result.EntityIRIs(); iris[0] != base+"B" {
		t.Fatalf("expected B, got %v", iris)
	}
}

// TestIntegration_Errors checks error codes and exit status.
func TestIntegration_Errors(t *testing.T) {
	ws := testutil.NewTestWorkspace(t).
		WithOntology("onco.yaml", testutil.OncologyOntology()).
		WithFile("filters/bad.yaml", "filters:\n  - {property: colour, type: contains, value: red}\n").
		Build()

	ws.RunCLI("query", ws.Path+"/filters/bad.yaml").MustFail(t, "INDEX_ERROR")
	ws.RunCLI("index").MustSucceed(t)
	ws.RunCLI("query", ws.Path+"/filters/bad.yaml").MustFail(t, "UNKNOWN_PROPERTY")
}

// TestIntegration_Init writes a config that later commands can use.
func TestIntegration_Init(t *testing.T) {
	ws := testutil.NewTestWorkspace(t).
		WithOntology("onco.yaml", testutil.OncologyOntology()).
		Build()

	ws.RunCLI("init", "--force", "--ontology", ws.OntologyPaths()[0], "--index-path", "idx/index.db").MustSucceed(t)
	ws.AssertFileContains("config.toml", `index_path = "idx/index.db"`)
	ws.RunCLI("index").MustSucceed(t)
	ws.AssertFileExists("idx/index.db")
}
