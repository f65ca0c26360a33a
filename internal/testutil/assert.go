package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (w *TestWorkspace) AssertFileExists(relPath string) {
	w.t.Helper()
	if _, err := os.Stat(filepath.Join(w.Path, relPath)); os.IsNotExist(err) {
		w.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (w *TestWorkspace) AssertFileContains(relPath, substr string) {
	w.t.Helper()
	content := w.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		w.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertQueryIRIs evaluates the filter document at filterPath and checks the
// matching entity IRIs, in any order.
func (w *TestWorkspace) AssertQueryIRIs(filterPath string, expected ...string) {
	w.t.Helper()
	result := w.RunCLI("query", filepath.Join(w.Path, filterPath))
	result.MustSucceed(w.t)

	got := result.EntityIRIs()
	want := append([]string(nil), expected...)
	sort.Strings(want)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		w.t.Errorf("query %s: expected %v, got %v\nRaw: %s", filterPath, want, got, result.RawJSON)
	}
}

// EntityIRIs returns the IRIs under data.entities, sorted.
func (r *CLIResult) EntityIRIs() []string {
	var out []string
	for _, item := range r.DataList("entities") {
		if m, ok := item.(map[string]interface{}); ok {
			if iri, ok := m["iri"].(string); ok {
				out = append(out, iri)
			}
		}
	}
	sort.Strings(out)
	return out
}

// AssertResultCount checks that a list in the result has the expected length.
func (r *CLIResult) AssertResultCount(t *testing.T, key string, expected int) {
	t.Helper()
	results := r.DataList(key)
	if len(results) != expected {
		t.Errorf("expected %d %s, got %d\nRaw: %s", expected, key, len(results), r.RawJSON)
	}
}
