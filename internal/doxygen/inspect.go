package doxygen

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
)

// SiteInfo summarizes the generated static site.
type SiteInfo struct {
	Pages int    // number of .html files
	Title string // <title> of index.html, if present
}

// InspectSite verifies the generated html tree exists and is non-empty and
// collects basic statistics. The site content itself stays opaque; only the
// index title is read for reporting.
func InspectSite(siteDir string) (SiteInfo, error) {
	var info SiteInfo

	st, err := os.Stat(siteDir)
	if err != nil || !st.IsDir() {
		return info, pkgerrors.New(pkgerrors.CategoryDoxygen, pkgerrors.SeverityFatal,
			"generator produced no html output").WithContext("path", siteDir)
	}

	err = filepath.WalkDir(siteDir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".html") {
			info.Pages++
		}
		return nil
	})
	if err != nil {
		return info, pkgerrors.WorkspaceError("inspect_site", err).WithContext("path", siteDir)
	}
	if info.Pages == 0 {
		return info, pkgerrors.New(pkgerrors.CategoryDoxygen, pkgerrors.SeverityFatal,
			"generated site contains no html pages").WithContext("path", siteDir)
	}

	// Title extraction is best-effort; a missing or malformed index page is
	// not a failure.
	if title, err := indexTitle(filepath.Join(siteDir, "index.html")); err == nil {
		info.Title = title
	}
	return info, nil
}

// indexTitle parses an html file and returns the text of its <title> element.
func indexTitle(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return "", err
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title, nil
}
