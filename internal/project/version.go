package project

import (
	"os"
	"path/filepath"
	"regexp"

	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
)

// versionPattern accepts three-part semantic versions with an optional fourth
// component (the C++ ABI fix suffix some projects append).
var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:\.\d+)?$`)

var (
	cmakeProjectVersion = regexp.MustCompile(`(?im)PROJECT\s*\([^)]*VERSION\s+(\d+\.\d+\.\d+)[^)]*\)`)
	cmakeCppFix         = regexp.MustCompile(`SET\s*\(VERSION_CPPFIX\s*"(\d+)"\s*\)`)
)

// ValidVersion reports whether v matches the accepted version format.
func ValidVersion(v string) bool {
	return versionPattern.MatchString(v)
}

// VersionFromCMake extracts the project version from a CMakeLists.txt file.
// The base version comes from the PROJECT(... VERSION x.y.z ...) declaration;
// a SET(VERSION_CPPFIX "n") entry, when present, is appended as a fourth component.
func VersionFromCMake(cmakePath string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(cmakePath))
	if err != nil {
		return "", pkgerrors.MetadataError("version", err).WithContext("path", cmakePath)
	}

	m := cmakeProjectVersion.FindSubmatch(data)
	if m == nil {
		return "", pkgerrors.New(pkgerrors.CategoryConfig, pkgerrors.SeverityFatal,
			"could not extract PROJECT VERSION").WithContext("path", cmakePath)
	}
	version := string(m[1])

	if fix := cmakeCppFix.FindSubmatch(data); fix != nil {
		version = version + "." + string(fix[1])
	}

	if !ValidVersion(version) {
		return "", pkgerrors.ValidationFailed("version", "invalid version format").
			WithContext("value", version)
	}
	return version, nil
}
