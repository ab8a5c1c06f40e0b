package publish

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{Project: "libfoo"}
	m.upsert("1.0.0", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	m.upsert("1.1.0", time.Date(2026, 2, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, m.write(dir))

	loaded, err := loadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "libfoo", loaded.Project)
	require.Len(t, loaded.Versions, 2)
	assert.Equal(t, "1.1.0", loaded.Versions[0].Label, "newest first")
	assert.Equal(t, "1.0.0", loaded.Versions[1].Label)
}

func TestManifestUpsertKeepsExistingTimestamp(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &Manifest{}
	m.upsert("1.0.0", first)
	m.upsert("1.0.0", first.Add(24*time.Hour))
	require.Len(t, m.Versions, 1)
	assert.Equal(t, first, m.Versions[0].PublishedAt)
}

func TestLoadManifestMissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()
	m, err := loadManifest(dir)
	require.NoError(t, err)
	assert.Empty(t, m.Versions)

	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestFile), []byte("{not json"), 0o644))
	m, err = loadManifest(dir)
	require.NoError(t, err)
	assert.Empty(t, m.Versions)
}
