package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PathPolicy controls how relative img[src] and a[href] references are
// treated. URLs, anchors and absolute paths are never touched.
type PathPolicy struct {
	// SourceDir is the directory relative references resolve against.
	SourceDir string
	// Root bounds the references kept when Contain is set.
	Root string
	// Contain drops references resolving outside Root: images are removed
	// and links lose their href.
	Contain bool
	// Absolutize rewrites kept references to file:// URLs.
	Absolutize bool
}

// active reports whether the policy can change anything.
func (p PathPolicy) active() bool {
	return p.SourceDir != "" && (p.Contain || p.Absolutize)
}

// RewritePaths applies p to every relative reference in htmlContent.
// Full documents and fragments are both accepted.
func RewritePaths(htmlContent string, p PathPolicy) (string, error) {
	if !p.active() {
		return htmlContent, nil
	}

	sourceDir, err := filepath.Abs(p.SourceDir)
	if err != nil {
		return "", err
	}
	root := sourceDir
	if p.Root != "" {
		if root, err = filepath.Abs(p.Root); err != nil {
			return "", err
		}
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	w := &rewriter{policy: p, sourceDir: sourceDir, root: root}
	w.walk(doc)
	for _, n := range w.dropped {
		n.Parent.RemoveChild(n)
	}

	return renderHTML(doc, isFragment)
}

type rewriter struct {
	policy    PathPolicy
	sourceDir string
	root      string
	dropped   []*html.Node
}

func (w *rewriter) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			if !w.rewriteAttr(n, "src") {
				w.dropped = append(w.dropped, n)
			}
		case atom.A:
			if !w.rewriteAttr(n, "href") {
				removeAttr(n, "href")
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// rewriteAttr applies the policy to one attribute. It returns false when the
// reference must be dropped.
func (w *rewriter) rewriteAttr(n *html.Node, key string) bool {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}

		ref, suffix := splitReference(attr.Val)
		absPath := filepath.Join(w.sourceDir, filepath.FromSlash(ref))

		if w.policy.Contain && !isPathUnderDir(absPath, w.root) {
			return false
		}
		if w.policy.Absolutize {
			n.Attr[i].Val = pathToFileURL(absPath) + suffix
		}
	}
	return true
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Key != key {
			kept = append(kept, attr)
		}
	}
	n.Attr = kept
}

// splitReference separates a path from its ?query or #fragment suffix.
func splitReference(ref string) (path, suffix string) {
	if i := strings.IndexAny(ref, "?#"); i != -1 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}

// parseHTML parses full documents and body fragments alike.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back; fragments render their children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// isRelativePath reports whether path is a relative filesystem reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}
	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir reports whether absPath equals dir or lies beneath it.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if cleanPath == cleanDir {
		return true
	}
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath, cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
