package doxygen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchDoxyfile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Doxyfile")
	dst := filepath.Join(dir, "Doxyfile.out")
	template := `PROJECT_NAME = "%PROJECT_NAME%"
PROJECT_NUMBER = %PROJECT_VERSION%
OUTPUT_DIRECTORY = %OUTPUT_DIR%
INPUT = %SOURCE_DIR%/include
GENERATE_LATEX = NO
`
	require.NoError(t, os.WriteFile(src, []byte(template), 0o644))

	subs := map[string]string{
		PlaceholderProjectName:    "libfoo",
		PlaceholderProjectVersion: "1.2.3",
		PlaceholderOutputDir:      "/tmp/out",
		PlaceholderSourceDir:      "/src",
	}
	require.NoError(t, PatchDoxyfile(src, dst, subs))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	got := string(data)
	assert.Contains(t, got, `PROJECT_NAME = "libfoo"`)
	assert.Contains(t, got, "PROJECT_NUMBER = 1.2.3")
	assert.Contains(t, got, "OUTPUT_DIRECTORY = /tmp/out")
	assert.Contains(t, got, "INPUT = /src/include")
	// untouched lines survive verbatim
	assert.Contains(t, got, "GENERATE_LATEX = NO")
}

func TestPatchDoxyfileMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	err := PatchDoxyfile(filepath.Join(dir, "absent"), filepath.Join(dir, "out"), nil)
	require.Error(t, err)
}

func TestInspectSiteMissingDir(t *testing.T) {
	_, err := InspectSite(filepath.Join(t.TempDir(), "html"))
	require.Error(t, err)
}

func TestInspectSiteCountsPages(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "classes")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte("<html><head><title>libfoo 1.2.3</title></head></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "classfoo.html"), []byte("<html></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644))

	info, err := InspectSite(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Pages)
	assert.Equal(t, "libfoo 1.2.3", info.Title)
}
