// Package markup is the HTML tree consumed and produced by the minifier.
//
// The tree mirrors the shape used by HTML post-processors: a document is an
// ordered [Content] sequence whose items are either element nodes ([*Node])
// or raw markup chunks ([Text]). Comments, doctypes and character data are
// kept verbatim as Text, so a parse/render round trip preserves the source
// byte for byte apart from attribute quoting.
//
// # Parsing and Rendering
//
//	tree, err := markup.ParseString(`<p class="a">Hi<!-- x --></p>`)
//	if err != nil {
//	    return err
//	}
//	out := tree.String()
//
// Parsing uses the tokenizer of golang.org/x/net/html. No implied elements
// (html, head, body) are inserted; unclosed elements are closed at the end
// of their parent, and a small set of optional end tags (li, p, option, ...)
// is closed implicitly.
//
// # Traversal
//
// [Tree.Walk] visits every item in pre-order. The visitor returns the item
// to keep, a replacement, or nil to remove it; children of the returned
// node are visited afterwards.
package markup
