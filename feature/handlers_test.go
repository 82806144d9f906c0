package feature

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-htmlmin/markup"
)

// ---------------------------------------------------------------------------
// TestHandlers_Run - chain order, attribute lowering and removal
// ---------------------------------------------------------------------------

func TestHandlers_Run(t *testing.T) {
	t.Parallel()

	var log []string
	record := func(name string) AttrsHandler {
		return func(attrs markup.Attrs, n *markup.Node) markup.Attrs {
			log = append(log, name+":"+n.Tag)
			return attrs
		}
	}

	var h Handlers
	h.Add(record("first"), nil, nil)
	h.Add(nil, nil, nil)
	h.Add(record("second"), func(content markup.Content, n *markup.Node) markup.Content {
		log = append(log, "content:"+n.Tag)
		return content
	}, func(item markup.Item) markup.Item {
		if text, ok := item.(markup.Text); ok && strings.Contains(string(text), "drop") {
			return nil
		}
		return item
	})

	if len(h.Attrs) != 2 || len(h.Content) != 1 || len(h.Node) != 1 {
		t.Fatalf("chains = %d/%d/%d, want 2/1/1", len(h.Attrs), len(h.Content), len(h.Node))
	}

	inner := &markup.Node{Tag: "span", Attrs: markup.Attrs{}}
	outer := &markup.Node{
		Tag:     "div",
		Attrs:   markup.Attrs{{Key: "ID", Value: "a"}, {Key: "id", Value: "b"}},
		Content: markup.Content{markup.Text("drop me"), inner},
	}
	tree := markup.NewTree(markup.Content{outer})
	h.Run(tree)

	want := []string{"first:div", "second:div", "content:div", "first:span", "second:span"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(markup.Attrs{{Key: "id", Value: "b"}}, outer.Attrs); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
	if got := tree.String(); got != `<div id="b"><span></span></div>` {
		t.Errorf("tree = %q", got)
	}
}

func TestHandlers_Empty(t *testing.T) {
	t.Parallel()

	var h *Handlers
	if !h.Empty() {
		t.Error("nil Handlers not empty")
	}
	h.Run(markup.NewTree(nil))

	var zero Handlers
	tree := markup.NewTree(markup.Content{markup.Text(" x ")})
	zero.Run(tree)
	if got := tree.String(); got != " x " {
		t.Errorf("tree = %q, want unchanged", got)
	}
}
