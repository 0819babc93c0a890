package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cfdroid/internal/apperr"
)

const overlayYAML = `
topics:
  - id: hyperdrive
    title: Hyperdrive
    description: Connection pooling for regional databases
    icon: Database
    category: storage
    overview: Speeds up queries to Postgres from Workers.
    setup_steps:
      - wrangler hyperdrive create my-db --connection-string=...
    related: [d1]
    common_errors:
      - code: "2013"
        message: Connection refused
        fix: Allow Cloudflare IPs on the origin.
  - id: workers
    title: Workers (custom)
    category: Compute
`

func TestParseOverlay(t *testing.T) {
	topics, err := ParseOverlay(strings.NewReader(overlayYAML))
	require.NoError(t, err)
	require.Len(t, topics, 2)

	h := topics[0]
	assert.Equal(t, "hyperdrive", h.ID)
	assert.Equal(t, CategoryStorage, h.Category)
	assert.Equal(t, IconDatabase, h.Icon)
	assert.True(t, IsCommand(h.SetupSteps[0]))
	require.Len(t, h.CommonErrors, 1)
	assert.Equal(t, "Allow Cloudflare IPs on the origin.", h.CommonErrors[0].Fix)
}

func TestParseOverlayErrors(t *testing.T) {
	tests := map[string]string{
		"unknown category": "topics:\n  - id: x\n    title: X\n    category: Quantum\n",
		"unknown key":      "topics:\n  - id: x\n    title: X\n    category: AI\n    colour: red\n",
		"not yaml":         "topics: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOverlay(strings.NewReader(doc))
			var cfgErr *apperr.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "got %v", err)
		})
	}
}

func TestParseOverlayEmpty(t *testing.T) {
	topics, err := ParseOverlay(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestExtend(t *testing.T) {
	base := Default()
	extra, err := ParseOverlay(strings.NewReader(overlayYAML))
	require.NoError(t, err)

	merged, err := base.Extend(extra)
	require.NoError(t, err)

	assert.Equal(t, base.Size()+1, merged.Size())
	w, ok := merged.Lookup("workers")
	require.True(t, ok)
	assert.Equal(t, "Workers (custom)", w.Title)
	assert.Equal(t, "hyperdrive", merged.Topics()[merged.Size()-1].ID)

	related := merged.Related("hyperdrive")
	require.Len(t, related, 1)
	assert.Equal(t, "d1", related[0].ID)

	orig, _ := base.Lookup("workers")
	assert.NotEqual(t, "Workers (custom)", orig.Title, "base catalog is untouched")
}

func TestExtendRejectsInvalidTopics(t *testing.T) {
	_, err := Default().Extend([]Topic{{ID: "no-title", Category: CategoryAI}})
	assert.Error(t, err)
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlayYAML), 0o644))

	topics, err := LoadOverlay(path)
	require.NoError(t, err)
	assert.Len(t, topics, 2)

	_, err = LoadOverlay(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
