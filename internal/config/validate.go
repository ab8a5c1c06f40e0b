package config

import (
	"os"

	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
)

// Validate checks the invariants every command depends on: the source path
// must name an existing directory.
func (c *Config) Validate() error {
	if c.Project.Source == "" {
		return pkgerrors.ConfigRequired("project.source")
	}
	st, err := os.Stat(c.Project.Source)
	if err != nil {
		return pkgerrors.SourceNotFound(c.Project.Source)
	}
	if !st.IsDir() {
		return pkgerrors.ValidationFailed("project.source", "not a directory").
			WithContext("path", c.Project.Source)
	}
	return nil
}

// ValidateForPublish additionally requires a publish destination.
func (c *Config) ValidateForPublish() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Publish.URL == "" {
		return pkgerrors.ConfigRequired("publish.url")
	}
	return nil
}
