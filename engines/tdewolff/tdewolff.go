// Package tdewolff registers the css, js and svg engines backed by
// github.com/tdewolff/minify. Import it for its side effects:
//
//	import _ "github.com/alnah/go-htmlmin/engines/tdewolff"
package tdewolff

import (
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/alnah/go-htmlmin/engine"
)

// Media types passed to the minifier.
const (
	MediaCSS = "text/css"
	MediaJS  = "application/javascript"
	MediaSVG = "image/svg+xml"
)

var jsMediaPattern = regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`)

func init() {
	engine.Register(engine.CSS, Opener(MediaCSS))
	engine.Register(engine.JS, Opener(MediaJS))
	engine.Register(engine.SVG, Opener(MediaSVG))
}

// New returns a minifier with the CSS, JS and SVG minifiers registered.
// SVG minification uses the CSS minifier for embedded styles.
func New() *minify.M {
	m := minify.New()
	m.Add(MediaCSS, &css.Minifier{})
	m.AddRegexp(jsMediaPattern, &js.Minifier{})
	m.Add(MediaSVG, &svg.Minifier{})
	return m
}

// Opener returns an engine opener minifying the given media type.
func Opener(mediatype string) engine.Opener {
	return func() (engine.Engine, error) {
		return &minifier{m: New(), mediatype: []byte(mediatype)}, nil
	}
}

type minifier struct {
	m         *minify.M
	mediatype []byte
}

func (e *minifier) Minify(src string, params map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(src))
	if err := e.m.MinifyMimetype(e.mediatype, &b, strings.NewReader(src), params); err != nil {
		return "", err
	}
	return b.String(), nil
}
