// Package project resolves metadata about the documented source tree: its
// name (from configuration or the README heading) and its version (from
// configuration, an explicit override, or the CMakeLists.txt declaration).
package project

import (
	"log/slog"

	"git.home.luguber.info/inful/docpub/internal/config"
	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/logfields"
)

// Metadata is the resolved identity of the documented project.
type Metadata struct {
	Name    string
	Version string
}

// Resolve determines project name and version. Precedence for the version:
// explicit override > config > CMakeLists.txt. Precedence for the name:
// config > first README heading.
func Resolve(cfg *config.Config, versionOverride string) (Metadata, error) {
	var meta Metadata

	switch {
	case versionOverride != "":
		if !ValidVersion(versionOverride) {
			return meta, pkgerrors.ValidationFailed("version", "invalid version format").
				WithContext("value", versionOverride)
		}
		meta.Version = versionOverride
	case cfg.Project.Version != "":
		if !ValidVersion(cfg.Project.Version) {
			return meta, pkgerrors.ValidationFailed("project.version", "invalid version format").
				WithContext("value", cfg.Project.Version)
		}
		meta.Version = cfg.Project.Version
	default:
		v, err := VersionFromCMake(cfg.Project.CMake)
		if err != nil {
			return meta, err
		}
		meta.Version = v
	}

	if cfg.Project.Name != "" {
		meta.Name = cfg.Project.Name
	} else {
		name, err := NameFromReadme(cfg.Project.Readme)
		if err != nil {
			return meta, err
		}
		meta.Name = name
	}

	slog.Info("Resolved project metadata", logfields.Project(meta.Name), logfields.Version(meta.Version))
	return meta, nil
}
