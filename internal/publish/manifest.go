package publish

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// manifestFile is the name of the versions index kept at the branch root.
const manifestFile = "versions.json"

// ManifestEntry records one published version label.
type ManifestEntry struct {
	Label       string    `json:"label"`
	PublishedAt time.Time `json:"published_at"`
}

// Manifest lists published versions, newest first.
type Manifest struct {
	Project  string          `json:"project,omitempty"`
	Versions []ManifestEntry `json:"versions"`
}

// loadManifest reads the manifest from the branch checkout; a missing file
// yields an empty manifest.
func loadManifest(checkoutDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(checkoutDir, manifestFile))
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		// A corrupt manifest is rebuilt rather than failing the publish.
		return &Manifest{}, nil
	}
	return &m, nil
}

// upsert records a label and re-sorts newest first. An existing label keeps
// its original timestamp so re-publishing an unchanged site leaves the
// checkout clean (idempotent per version).
func (m *Manifest) upsert(label string, at time.Time) {
	for i := range m.Versions {
		if m.Versions[i].Label == label {
			return
		}
	}
	m.Versions = append(m.Versions, ManifestEntry{Label: label, PublishedAt: at})
	m.sortNewestFirst()
}

func (m *Manifest) sortNewestFirst() {
	sort.SliceStable(m.Versions, func(i, j int) bool {
		return m.Versions[i].PublishedAt.After(m.Versions[j].PublishedAt)
	})
}

// write persists the manifest at the branch root.
func (m *Manifest) write(checkoutDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(checkoutDir, manifestFile), append(data, '\n'), 0o644)
}
