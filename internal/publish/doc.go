// Package publish pushes a generated documentation site to a git pages
// branch. The branch is checked out into a scratch workspace, the version
// directory is replaced wholesale, the latest/ alias and versions manifest
// are refreshed, and the result is committed and pushed.
package publish
