package features

import (
	"context"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/alnah/go-htmlmin/engine"
	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// URL-valued attributes per element.
var urlAttributes = map[string][]string{
	"a":          {"href"},
	"area":       {"href"},
	"blockquote": {"cite"},
	"button":     {"formaction"},
	"del":        {"cite"},
	"embed":      {"src"},
	"form":       {"action"},
	"frame":      {"src", "longdesc"},
	"iframe":     {"src", "longdesc"},
	"img":        {"src", "longdesc"},
	"input":      {"src", "formaction"},
	"ins":        {"cite"},
	"link":       {"href"},
	"object":     {"data", "codebase"},
	"q":          {"cite"},
	"script":     {"src"},
	"source":     {"src"},
	"track":      {"src"},
	"video":      {"src", "poster"},
	"audio":      {"src"},
}

// srcset candidates: <img srcset> and <source srcset>.
var srcsetElements = map[string]bool{"img": true, "source": true}

const javascriptScheme = "javascript:"

// MinifyURLs rewrites URL attributes relative to the base URL given as the
// feature option, choosing the shortest of root-relative and path-relative
// forms. javascript: URLs are minified with the js engine when it is
// available. Without a valid absolute base URL the tree is unchanged.
func MinifyURLs() *feature.Module {
	return &feature.Module{
		Default: func(ctx context.Context, tree *markup.Tree, _ *feature.Options, featureOpts any) (*markup.Tree, error) {
			base := parseBase(featureOpts)
			if base == nil {
				return tree, nil
			}
			js, hasJS := engine.FromContext(ctx).Lookup(engine.JS)

			tree.Match(func(n *markup.Node) {
				tag := strings.ToLower(n.Tag)
				for i := range n.Attrs {
					a := &n.Attrs[i]
					if a.Bool || a.Value == "" {
						continue
					}
					switch {
					case slices.Contains(urlAttributes[tag], a.Key):
						if hasJS && a.Key == "href" && hasJavascriptScheme(a.Value) {
							code := strings.TrimSpace(a.Value)[len(javascriptScheme):]
							if out, err := js.Minify(code, nil); err == nil {
								a.Value = javascriptScheme + out
							}
							continue
						}
						a.Value = relativeURL(base, a.Value)
					case a.Key == "srcset" && srcsetElements[tag]:
						a.Value = relativeSrcset(base, a.Value)
					}
				}
			})
			return tree, nil
		},
	}
}

func parseBase(featureOpts any) *url.URL {
	var raw string
	switch v := featureOpts.(type) {
	case string:
		raw = v
	case *url.URL:
		if v != nil {
			raw = v.String()
		}
	case map[string]any:
		raw = feature.String(v["base"], "")
	}
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil
	}
	return u
}

func hasJavascriptScheme(v string) bool {
	v = strings.TrimSpace(v)
	return len(v) > len(javascriptScheme) && strings.EqualFold(v[:len(javascriptScheme)], javascriptScheme)
}

// relativeURL returns the shortest URL that resolves against base to the
// same target as raw. URLs on another origin are returned unchanged.
func relativeURL(base *url.URL, raw string) string {
	trimmed := strings.TrimSpace(raw)
	ref, err := url.Parse(trimmed)
	if err != nil || (ref.Scheme != "" && ref.Scheme != "http" && ref.Scheme != "https") {
		return raw
	}
	target := base.ResolveReference(ref)
	if target.User != nil || base.User != nil {
		return raw
	}
	if !strings.EqualFold(target.Scheme, base.Scheme) || !strings.EqualFold(target.Host, base.Host) {
		return raw
	}

	suffix := ""
	if target.RawQuery != "" {
		suffix += "?" + target.RawQuery
	}
	if target.Fragment != "" {
		suffix += "#" + target.EscapedFragment()
	}

	targetPath := target.EscapedPath()
	if targetPath == "" {
		targetPath = "/"
	}
	best := targetPath + suffix

	if rel := relativePath(base.EscapedPath(), targetPath); rel != "" && len(rel+suffix) < len(best) {
		best = rel + suffix
	}
	if len(best) >= len(trimmed) {
		return raw
	}
	return best
}

// relativePath expresses target relative to the directory of basePath.
// It returns "" when no shorter relative form exists.
func relativePath(basePath, target string) string {
	if basePath == "" {
		basePath = "/"
	}
	baseDir := basePath[:strings.LastIndex(basePath, "/")+1]
	if strings.HasPrefix(target, baseDir) {
		rel := target[len(baseDir):]
		if rel == "" {
			return "./"
		}
		if strings.Contains(strings.SplitN(rel, "/", 2)[0], ":") {
			return "./" + rel
		}
		return rel
	}

	baseParts := strings.Split(strings.Trim(baseDir, "/"), "/")
	targetDir, file := path.Split(target)
	targetParts := strings.Split(strings.Trim(targetDir, "/"), "/")
	common := 0
	for common < len(baseParts) && common < len(targetParts) && baseParts[common] == targetParts[common] && baseParts[common] != "" {
		common++
	}
	if common == 0 {
		return ""
	}
	var b strings.Builder
	for range baseParts[common:] {
		b.WriteString("../")
	}
	for _, p := range targetParts[common:] {
		if p != "" {
			b.WriteString(p)
			b.WriteByte('/')
		}
	}
	b.WriteString(file)
	return b.String()
}

// relativeSrcset rewrites the URL of each srcset candidate in place. A
// candidate URL runs to the next whitespace; trailing commas end it. Its
// descriptors run to the next comma outside parentheses. Separators and
// descriptors are copied as written.
func relativeSrcset(base *url.URL, srcset string) string {
	var b strings.Builder
	for i := 0; i < len(srcset); {
		start := i
		for i < len(srcset) && (isWhitespace(rune(srcset[i])) || srcset[i] == ',') {
			i++
		}
		b.WriteString(srcset[start:i])
		if i == len(srcset) {
			break
		}

		start = i
		for i < len(srcset) && !isWhitespace(rune(srcset[i])) {
			i++
		}
		candidate := strings.TrimRight(srcset[start:i], ",")
		b.WriteString(relativeURL(base, candidate))
		b.WriteString(srcset[start+len(candidate) : i])
		if start+len(candidate) < i {
			continue
		}

		start = i
		depth := 0
	descriptors:
		for ; i < len(srcset); i++ {
			switch srcset[i] {
			case '(':
				depth++
			case ')':
				if depth > 0 {
					depth--
				}
			case ',':
				if depth == 0 {
					break descriptors
				}
			}
		}
		b.WriteString(srcset[start:i])
	}
	return b.String()
}
