package htmlcodec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rgonek/richtext-styles/editor"
	"github.com/rgonek/richtext-styles/model"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespacePattern = regexp.MustCompile(`[ \t\r\n\f]+`)

var tagMarks = map[string]string{
	"strong": "bold",
	"b":      "bold",
	"em":     "italic",
	"i":      "italic",
	"s":      "strike",
	"strike": "strike",
	"del":    "strike",
	"code":   "code",
	"u":      "underline",
	"a":      "link",
	"span":   "textStyle",
}

// Parse reads an HTML fragment into a normalized document. Registered global
// attributes are read through their ParseHTML functions.
func Parse(schema *editor.Schema, input string) (model.Doc, error) {
	context := &xhtml.Node{Type: xhtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := xhtml.ParseFragment(strings.NewReader(input), context)
	if err != nil {
		return model.Doc{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	p := &parser{schema: schema}
	doc := model.NewDoc(p.parseBlocks(nodes)...)
	return schema.Normalize(doc), nil
}

type parser struct {
	schema *editor.Schema
}

func (p *parser) parseBlocks(nodes []*xhtml.Node) []model.Node {
	var blocks []model.Node
	var pending []*xhtml.Node

	flush := func() {
		if len(pending) == 0 {
			return
		}
		content := trimInline(p.parseInline(pending, nil))
		pending = nil
		if len(content) > 0 {
			blocks = append(blocks, model.Node{Type: "paragraph", Content: content})
		}
	}

	for _, node := range nodes {
		block, ok := p.parseBlock(node)
		if !ok {
			pending = append(pending, node)
			continue
		}
		flush()
		blocks = append(blocks, block...)
	}
	flush()

	return blocks
}

// parseBlock converts a block-level element. It reports false for inline
// content, which the caller gathers into an implicit paragraph.
func (p *parser) parseBlock(node *xhtml.Node) ([]model.Node, bool) {
	if node.Type != xhtml.ElementNode {
		return nil, false
	}

	switch node.Data {
	case "p":
		return []model.Node{p.textblock("paragraph", node, nil)}, true
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(node.Data[1:])
		return []model.Node{p.textblock("heading", node, model.Attrs{"level": level})}, true
	case "blockquote":
		return []model.Node{p.container("blockquote", node, nil)}, true
	case "ul":
		return []model.Node{p.list("bulletList", node, nil)}, true
	case "ol":
		start := 1
		if value, ok := attr(node, "start"); ok {
			if parsed, err := strconv.Atoi(value); err == nil {
				start = parsed
			}
		}
		return []model.Node{p.list("orderedList", node, model.Attrs{"order": start})}, true
	case "li":
		return []model.Node{p.container("listItem", node, nil)}, true
	case "pre":
		return []model.Node{p.codeBlock(node)}, true
	case "hr":
		return []model.Node{{Type: "horizontalRule", Attrs: p.nodeAttrs("horizontalRule", node, nil)}}, true
	case "img":
		return []model.Node{p.image(node, nil)}, true
	case "div", "section", "article", "main", "header", "footer", "body":
		return p.parseBlocks(children(node)), true
	default:
		return nil, false
	}
}

func (p *parser) textblock(nodeType string, node *xhtml.Node, attrs model.Attrs) model.Node {
	return model.Node{
		Type:    nodeType,
		Attrs:   p.nodeAttrs(nodeType, node, attrs),
		Content: trimInline(p.parseInline(children(node), nil)),
	}
}

func (p *parser) container(nodeType string, node *xhtml.Node, attrs model.Attrs) model.Node {
	return model.Node{
		Type:    nodeType,
		Attrs:   p.nodeAttrs(nodeType, node, attrs),
		Content: p.parseBlocks(children(node)),
	}
}

func (p *parser) list(nodeType string, node *xhtml.Node, attrs model.Attrs) model.Node {
	list := model.Node{Type: nodeType, Attrs: p.nodeAttrs(nodeType, node, attrs)}
	for _, child := range children(node) {
		if child.Type == xhtml.ElementNode && child.Data == "li" {
			list.Content = append(list.Content, p.container("listItem", child, nil))
		}
	}
	return list
}

func (p *parser) codeBlock(node *xhtml.Node) model.Node {
	attrs := model.Attrs{}
	for _, child := range children(node) {
		if child.Type != xhtml.ElementNode || child.Data != "code" {
			continue
		}
		if class, ok := attr(child, "class"); ok {
			for _, name := range strings.Fields(class) {
				if language, found := strings.CutPrefix(name, "language-"); found {
					attrs["language"] = language
				}
			}
		}
	}

	block := model.Node{Type: "codeBlock", Attrs: p.nodeAttrs("codeBlock", node, attrs)}
	if text := textContent(node); text != "" {
		block.Content = []model.Node{{Type: "text", Text: text}}
	}
	return block
}

func (p *parser) image(node *xhtml.Node, marks []model.Mark) model.Node {
	attrs := model.Attrs{}
	for _, key := range []string{"src", "alt", "title"} {
		if value, ok := attr(node, key); ok {
			attrs[key] = value
		}
	}
	return model.Node{Type: "image", Attrs: p.nodeAttrs("image", node, attrs), Marks: marks}
}

func (p *parser) parseInline(nodes []*xhtml.Node, marks []model.Mark) []model.Node {
	var content []model.Node
	for _, node := range nodes {
		switch node.Type {
		case xhtml.TextNode:
			text := whitespacePattern.ReplaceAllString(node.Data, " ")
			if text != "" {
				content = append(content, model.Node{Type: "text", Text: text, Marks: marks})
			}
		case xhtml.ElementNode:
			content = append(content, p.parseInlineElement(node, marks)...)
		}
	}
	return model.JoinText(content)
}

func (p *parser) parseInlineElement(node *xhtml.Node, marks []model.Mark) []model.Node {
	switch node.Data {
	case "br":
		return []model.Node{{Type: "hardBreak"}}
	case "img":
		return []model.Node{p.image(node, marks)}
	}

	markType, ok := tagMarks[node.Data]
	if !ok {
		return p.parseInline(children(node), marks)
	}
	if mark, ok := p.parseMark(markType, node, marks); ok {
		marks = model.AddToSet(marks, mark)
	}
	return p.parseInline(children(node), marks)
}

// parseMark builds the mark for an inline element. A span only becomes a
// textStyle mark when one of its registered attributes has a value; nested
// spans merge into the enclosing one.
func (p *parser) parseMark(markType string, node *xhtml.Node, marks []model.Mark) (model.Mark, bool) {
	attrs := model.Attrs{}
	if markType == "link" {
		href, ok := attr(node, "href")
		if !ok {
			return model.Mark{}, false
		}
		attrs["href"] = href
		if title, ok := attr(node, "title"); ok {
			attrs["title"] = title
		}
	}

	parsed := p.globalAttrs(p.schema.MarkAttributes(markType), node)
	if markType == "textStyle" {
		if !model.HasMeaningfulAttrs(parsed) {
			return model.Mark{}, false
		}
		if outer, ok := model.MarkOfType(marks, markType); ok {
			merged := outer.Attrs.Clone()
			for key, value := range parsed {
				if !model.IsEmptyValue(value) {
					merged[key] = value
				}
			}
			parsed = merged
		}
	}
	for key, value := range parsed {
		attrs[key] = value
	}

	mark, err := p.schema.CreateMark(markType, attrs)
	if err != nil {
		return model.Mark{}, false
	}
	return mark, true
}

func (p *parser) nodeAttrs(nodeType string, node *xhtml.Node, attrs model.Attrs) model.Attrs {
	parsed := p.globalAttrs(p.schema.NodeAttributes(nodeType), node)
	for key, value := range attrs {
		parsed[key] = value
	}
	if len(parsed) == 0 {
		return nil
	}
	return parsed
}

func (p *parser) globalAttrs(attrs []editor.NamedAttribute, node *xhtml.Node) model.Attrs {
	parsed := model.Attrs{}
	for _, named := range attrs {
		if named.Spec.ParseHTML == nil {
			parsed[named.Name] = named.Spec.Default
			continue
		}
		parsed[named.Name] = named.Spec.ParseHTML(node)
	}
	return parsed
}

// trimInline drops leading and trailing whitespace of a textblock.
func trimInline(content []model.Node) []model.Node {
	if len(content) > 0 && content[0].IsText() {
		content[0].Text = strings.TrimLeft(content[0].Text, " ")
		if content[0].Text == "" {
			content = content[1:]
		}
	}
	if last := len(content) - 1; last >= 0 && content[last].IsText() {
		content[last].Text = strings.TrimRight(content[last].Text, " ")
		if content[last].Text == "" {
			content = content[:last]
		}
	}
	return content
}

func children(node *xhtml.Node) []*xhtml.Node {
	var nodes []*xhtml.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		nodes = append(nodes, child)
	}
	return nodes
}

func attr(node *xhtml.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(node *xhtml.Node) string {
	var sb strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return sb.String()
}
