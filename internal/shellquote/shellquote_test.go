package shellquote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIfNeeded(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"index", "index"},
		{"/tmp/ontoq/config.toml", "/tmp/ontoq/config.toml"},
		{"", "''"},
		{"my config.toml", "'my config.toml'"},
		{"it's.toml", `'it'\''s.toml'`},
		{"$HOME/x", "'$HOME/x'"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteIfNeeded(tt.in))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "ontoq --config '/a b/c.toml' index", Join("ontoq", "--config", "/a b/c.toml", "index"))
	assert.Equal(t, "", Join())
}
