package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpub/internal/config"
	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidVersion(t *testing.T) {
	valid := []string{"1.2.3", "0.0.1", "10.20.30", "1.2.3.4"}
	invalid := []string{"", "1.2", "v1.2.3", "1.2.3-rc1", "1.2.3.4.5", "a.b.c"}
	for _, v := range valid {
		assert.True(t, ValidVersion(v), v)
	}
	for _, v := range invalid {
		assert.False(t, ValidVersion(v), v)
	}
}

func TestVersionFromCMake(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "CMakeLists.txt", `cmake_minimum_required(VERSION 3.16)
project(libfoo
    VERSION 2.4.1
    LANGUAGES CXX)
`)
	v, err := VersionFromCMake(path)
	require.NoError(t, err)
	assert.Equal(t, "2.4.1", v)
}

func TestVersionFromCMakeWithCppFix(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "CMakeLists.txt", `PROJECT(libfoo VERSION 2.4.1 LANGUAGES CXX)
SET(VERSION_CPPFIX "7")
`)
	v, err := VersionFromCMake(path)
	require.NoError(t, err)
	assert.Equal(t, "2.4.1.7", v)
}

func TestVersionFromCMakeMissingDeclaration(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "CMakeLists.txt", "add_library(foo foo.cpp)\n")
	_, err := VersionFromCMake(path)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCategory(err, pkgerrors.CategoryConfig))
}

func TestVersionFromCMakeMissingFile(t *testing.T) {
	_, err := VersionFromCMake(filepath.Join(t.TempDir(), "CMakeLists.txt"))
	require.Error(t, err)
}

func TestNameFromReadme(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "README.md", "# libfoo\n\nA fine library.\n")
	name, err := NameFromReadme(path)
	require.NoError(t, err)
	assert.Equal(t, "libfoo", name)
}

func TestNameFromReadmeLaterHeading(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "README.md", "Some intro text.\n\n## The Foo Library\n")
	name, err := NameFromReadme(path)
	require.NoError(t, err)
	assert.Equal(t, "The Foo Library", name)
}

func TestNameFromReadmeNoHeading(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "README.md", "just prose\n")
	_, err := NameFromReadme(path)
	require.Error(t, err)
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"libfoo":          "libfoo",
		"The Foo Library": "the-foo-library",
		"1.2.3":           "1.2.3",
		"Crème Brûlée":    "creme-brulee",
		"  spaced  ":      "spaced",
		"a//b":            "a-b",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestResolvePrecedence(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "README.md", "# libfoo\n")
	writeFile(t, src, "CMakeLists.txt", "project(libfoo VERSION 1.0.0)\n")

	cfg := &config.Config{Project: config.ProjectConfig{
		Source: src,
		Readme: filepath.Join(src, "README.md"),
		CMake:  filepath.Join(src, "CMakeLists.txt"),
	}}

	// cmake extraction
	meta, err := Resolve(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, Metadata{Name: "libfoo", Version: "1.0.0"}, meta)

	// config beats cmake
	cfg.Project.Version = "2.0.0"
	meta, err = Resolve(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", meta.Version)

	// override beats config
	meta, err = Resolve(cfg, "3.0.0")
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", meta.Version)

	// configured name beats readme
	cfg.Project.Name = "renamed"
	meta, err = Resolve(cfg, "3.0.0")
	require.NoError(t, err)
	assert.Equal(t, "renamed", meta.Name)
}

func TestResolveInvalidOverride(t *testing.T) {
	cfg := &config.Config{}
	_, err := Resolve(cfg, "not-a-version")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCategory(err, pkgerrors.CategoryValidation))
}
