package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/retry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docpub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	src := t.TempDir()
	path := writeConfig(t, "project:\n  source: "+src+"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(src, "README.md"), cfg.Project.Readme)
	assert.Equal(t, filepath.Join(src, "CMakeLists.txt"), cfg.Project.CMake)
	assert.Equal(t, "doxygen", cfg.Doxygen.Binary)
	assert.Equal(t, filepath.Join(src, "Doxyfile"), cfg.Doxygen.Doxyfile)
	assert.Equal(t, "./site", cfg.Doxygen.Output)
	assert.Equal(t, "html", cfg.Doxygen.HTMLDir)
	assert.True(t, cfg.Doxygen.CleanOutput())
	assert.Equal(t, "gh-pages", cfg.Publish.Branch)
	assert.Equal(t, "origin", cfg.Publish.RemoteName)
	assert.True(t, cfg.Publish.KeepsHistory())
	assert.True(t, cfg.Publish.WritesLatestAlias())
	assert.Equal(t, "2s", cfg.Watch.Debounce)
	assert.Equal(t, ":8080", cfg.Watch.Listen)
	assert.Equal(t, "docpub.publish", cfg.Notify.Subject)
	assert.True(t, cfg.History.IsEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("DOCPUB_TEST_TOKEN", "sekrit")
	src := t.TempDir()
	path := writeConfig(t, `project:
  source: `+src+`
publish:
  url: https://example.com/pages.git
  auth:
    type: token
    token: ${DOCPUB_TEST_TOKEN}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Publish.Auth)
	assert.Equal(t, "sekrit", cfg.Publish.Auth.Token)
}

func TestValidate(t *testing.T) {
	src := t.TempDir()
	cfg := &Config{Project: ProjectConfig{Source: src}}
	cfg.applyDefaults()
	require.NoError(t, cfg.Validate())

	// publish requires a URL
	err := cfg.ValidateForPublish()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCategory(err, pkgerrors.CategoryConfig))

	cfg.Publish.URL = "https://example.com/pages.git"
	require.NoError(t, cfg.ValidateForPublish())
}

func TestValidateMissingSource(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCategory(err, pkgerrors.CategoryConfig))

	cfg.Project.Source = filepath.Join(t.TempDir(), "nope")
	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCategory(err, pkgerrors.CategoryConfig))
}

func TestValidateSourceIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg := &Config{Project: ProjectConfig{Source: file}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCategory(err, pkgerrors.CategoryValidation))
}

func TestRetryPolicyDefaults(t *testing.T) {
	var rc RetryConfig
	rc.applyDefaults()
	p := rc.Policy()
	assert.Equal(t, retry.BackoffLinear, p.Mode)
	assert.Equal(t, time.Second, p.Initial)
	assert.Equal(t, 30*time.Second, p.Max)
	assert.Equal(t, 2, p.MaxRetries)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docpub.yaml")
	require.NoError(t, Init(path, false))

	// refuses to overwrite without force
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gh-pages")
}
