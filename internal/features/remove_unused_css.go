package features

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

// usedSelectors holds the class names and ids present in a document.
type usedSelectors struct {
	classes map[string]bool
	ids     map[string]bool
}

func collectSelectors(tree *markup.Tree, safelist []string) usedSelectors {
	used := usedSelectors{classes: make(map[string]bool), ids: make(map[string]bool)}
	tree.Match(func(n *markup.Node) {
		for _, a := range n.Attrs {
			switch strings.ToLower(a.Key) {
			case "class":
				for _, c := range strings.FieldsFunc(a.Value, isWhitespace) {
					used.classes[c] = true
				}
			case "id":
				if id := strings.TrimFunc(a.Value, isWhitespace); id != "" {
					used.ids[id] = true
				}
			}
		}
	})
	for _, s := range safelist {
		switch {
		case strings.HasPrefix(s, "."):
			used.classes[s[1:]] = true
		case strings.HasPrefix(s, "#"):
			used.ids[s[1:]] = true
		default:
			used.classes[s] = true
			used.ids[s] = true
		}
	}
	return used
}

// RemoveUnusedCSS drops rules of inline style sheets whose selectors
// reference a class or id that no element of the document carries.
// Selectors inside functional pseudo-classes such as :not() are ignored.
// The {safelist: [...]} option names classes (.x), ids (#x) or bare names
// that are always kept. Style sheets that fail to parse are left unchanged.
func RemoveUnusedCSS() *feature.Module {
	return &feature.Module{
		Default: func(_ context.Context, tree *markup.Tree, _ *feature.Options, featureOpts any) (*markup.Tree, error) {
			used := collectSelectors(tree, feature.Strings(feature.Map(featureOpts), "safelist"))
			tree.Match(func(n *markup.Node) {
				if !markup.IsStyleNode(n) || !isCSSType(n.Attrs.Value("type")) {
					return
				}
				src := markup.ExtractCSS(n)
				out, changed, err := pruneStylesheet(src, used)
				if err != nil || !changed {
					return
				}
				n.Content = markup.Content{markup.Text(out)}
			})
			return tree, nil
		},
	}
}

// cssBlock is an at-rule block being rebuilt.
type cssBlock struct {
	header  string
	body    strings.Builder
	removed bool
}

// pruneStylesheet rewrites src without the rules that cannot match.
// changed is false when every rule was kept.
func pruneStylesheet(src string, used usedSelectors) (out string, changed bool, err error) {
	p := css.NewParser(parse.NewInputString(src), false)
	stack := []*cssBlock{{}}
	var pending []css.Token
	skipping := false

	for {
		gt, _, data := p.Next()
		top := stack[len(stack)-1]

		if skipping {
			if gt == css.EndRulesetGrammar {
				skipping = false
			} else if gt == css.ErrorGrammar {
				return finishPrune(p, stack, changed)
			}
			continue
		}

		switch gt {
		case css.ErrorGrammar:
			return finishPrune(p, stack, changed)
		case css.QualifiedRuleGrammar:
			pending = append(pending, copyTokens(p.Values())...)
			pending = append(pending, css.Token{TokenType: css.CommaToken, Data: []byte(",")})
		case css.BeginRulesetGrammar:
			selectors := splitSelectors(append(pending, copyTokens(p.Values())...))
			pending = nil
			kept := selectors[:0]
			for _, sel := range selectors {
				if used.matches(sel) {
					kept = append(kept, sel)
				}
			}
			if len(kept) == 0 {
				skipping = true
				changed = true
				top.removed = true
				continue
			}
			if len(kept) < len(selectors) {
				changed = true
			}
			for i, sel := range kept {
				if i > 0 {
					top.body.WriteByte(',')
				}
				writeTokens(&top.body, sel)
			}
			top.body.WriteByte('{')
		case css.BeginAtRuleGrammar:
			var header strings.Builder
			header.Write(data)
			writeTokens(&header, p.Values())
			header.WriteByte('{')
			stack = append(stack, &cssBlock{header: header.String()})
		case css.EndAtRuleGrammar:
			if len(stack) == 1 {
				top.body.WriteByte('}')
				continue
			}
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			if top.removed && top.body.Len() == 0 {
				parent.removed = true
				continue
			}
			parent.body.WriteString(top.header)
			parent.body.WriteString(top.body.String())
			parent.body.WriteByte('}')
		case css.EndRulesetGrammar:
			top.body.WriteByte('}')
		case css.AtRuleGrammar:
			top.body.Write(data)
			writeTokens(&top.body, p.Values())
			top.body.WriteByte(';')
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			top.body.Write(data)
			top.body.WriteByte(':')
			writeTokens(&top.body, p.Values())
			top.body.WriteByte(';')
		default:
			top.body.Write(data)
		}
	}
}

func finishPrune(p *css.Parser, stack []*cssBlock, changed bool) (string, bool, error) {
	if err := p.Err(); !errors.Is(err, io.EOF) {
		return "", false, err
	}
	// Close blocks left open by a truncated style sheet.
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		parent := stack[len(stack)-1]
		parent.body.WriteString(top.header)
		parent.body.WriteString(top.body.String())
	}
	return stack[0].body.String(), changed, nil
}

// matches reports whether every class and id the selector requires is
// present in the document.
func (u usedSelectors) matches(selector []css.Token) bool {
	depth := 0
	for i, tok := range selector {
		switch tok.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.HashToken:
			if depth == 0 && !u.ids[string(tok.Data[1:])] {
				return false
			}
		case css.DelimToken:
			if depth == 0 && string(tok.Data) == "." && i+1 < len(selector) &&
				selector[i+1].TokenType == css.IdentToken && !u.classes[string(selector[i+1].Data)] {
				return false
			}
		}
	}
	return true
}

// splitSelectors splits a selector list on top-level commas.
func splitSelectors(tokens []css.Token) [][]css.Token {
	var (
		out   [][]css.Token
		cur   []css.Token
		depth int
	)
	for _, tok := range tokens {
		switch tok.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				out = appendSelector(out, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, tok)
	}
	return appendSelector(out, cur)
}

func appendSelector(list [][]css.Token, sel []css.Token) [][]css.Token {
	for len(sel) > 0 && sel[0].TokenType == css.WhitespaceToken {
		sel = sel[1:]
	}
	for len(sel) > 0 && sel[len(sel)-1].TokenType == css.WhitespaceToken {
		sel = sel[:len(sel)-1]
	}
	if len(sel) == 0 {
		return list
	}
	return append(list, sel)
}

// copyTokens detaches token data from the parser's reused buffers.
func copyTokens(tokens []css.Token) []css.Token {
	out := make([]css.Token, len(tokens))
	for i, tok := range tokens {
		out[i] = css.Token{TokenType: tok.TokenType, Data: parse.Copy(tok.Data)}
	}
	return out
}

func writeTokens(b *strings.Builder, tokens []css.Token) {
	for _, tok := range tokens {
		b.Write(tok.Data)
	}
}
