package doxygen

import (
	"os"
	"path/filepath"
	"strings"

	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
)

// Doxyfile template placeholders recognized by the patch step.
const (
	PlaceholderProjectName    = "%PROJECT_NAME%"
	PlaceholderProjectVersion = "%PROJECT_VERSION%"
	PlaceholderOutputDir      = "%OUTPUT_DIR%"
	PlaceholderSourceDir      = "%SOURCE_DIR%"
)

// substitutions maps template placeholders to their resolved values for this run.
func (g *Generator) substitutions() map[string]string {
	absOut, err := filepath.Abs(g.cfg.Doxygen.Output)
	if err != nil {
		absOut = g.cfg.Doxygen.Output
	}
	absSrc, err := filepath.Abs(g.cfg.Project.Source)
	if err != nil {
		absSrc = g.cfg.Project.Source
	}
	return map[string]string{
		PlaceholderProjectName:    g.meta.Name,
		PlaceholderProjectVersion: g.meta.Version,
		PlaceholderOutputDir:      absOut,
		PlaceholderSourceDir:      absSrc,
	}
}

// PatchDoxyfile copies the Doxyfile template to dst with placeholders
// substituted. Unknown placeholders pass through untouched.
func PatchDoxyfile(src, dst string, subs map[string]string) error {
	data, err := os.ReadFile(filepath.Clean(src))
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CategoryConfig, pkgerrors.SeverityFatal,
			"Doxyfile not found").WithContext("path", src)
	}

	content := string(data)
	for placeholder, value := range subs {
		content = strings.ReplaceAll(content, placeholder, value)
	}

	if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
		return pkgerrors.WorkspaceError("write_doxyfile", err).WithContext("path", dst)
	}
	return nil
}
