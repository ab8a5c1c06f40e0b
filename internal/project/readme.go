package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
)

// NameFromReadme extracts the project name from the first heading of a README file.
func NameFromReadme(readmePath string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(readmePath))
	if err != nil {
		return "", pkgerrors.MetadataError("name", err).WithContext("path", readmePath)
	}

	name := firstHeading(data)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CategoryConfig, pkgerrors.SeverityFatal,
			"could not extract project name from README heading").WithContext("path", readmePath)
	}
	return name, nil
}

// firstHeading walks the Markdown AST and returns the text of the first
// heading node, any level.
func firstHeading(body []byte) string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var heading string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			var sb strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*gmast.Text); ok {
					sb.Write(t.Segment.Value(body))
				}
			}
			heading = strings.TrimSpace(sb.String())
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return heading
}
