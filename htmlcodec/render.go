package htmlcodec

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgonek/richtext-styles/editor"
	"github.com/rgonek/richtext-styles/model"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var nodeTags = map[string]string{
	"paragraph":      "p",
	"blockquote":     "blockquote",
	"bulletList":     "ul",
	"orderedList":    "ol",
	"listItem":       "li",
	"horizontalRule": "hr",
	"hardBreak":      "br",
	"image":          "img",
}

var markTags = map[string]string{
	"bold":      "strong",
	"italic":    "em",
	"strike":    "s",
	"code":      "code",
	"underline": "u",
	"link":      "a",
	"textStyle": "span",
}

// Render serializes doc to HTML. Registered global attributes are written
// through their RenderHTML functions.
func Render(schema *editor.Schema, doc model.Doc) (string, error) {
	r := &renderer{schema: schema}

	var buf bytes.Buffer
	for _, node := range doc.Content {
		element := r.renderBlock(node)
		if err := xhtml.Render(&buf, element); err != nil {
			return "", fmt.Errorf("failed to render %s node: %w", node.Type, err)
		}
	}
	return buf.String(), nil
}

type renderer struct {
	schema *editor.Schema
}

// renderBlock wraps stray inline nodes at block level in a paragraph.
func (r *renderer) renderBlock(node model.Node) *xhtml.Node {
	if node.IsText() || node.Type == "hardBreak" {
		wrapper := newElement("p")
		r.renderInline(wrapper, []model.Node{node})
		return wrapper
	}
	return r.renderNode(node)
}

func (r *renderer) renderNode(node model.Node) *xhtml.Node {
	if node.Type == "codeBlock" {
		return r.renderCodeBlock(node)
	}

	element := newElement(blockTag(node))
	r.addBuiltinNodeAttrs(element, node)
	r.addGlobalAttrs(element, r.schema.NodeAttributes(node.Type), node.Attrs)

	if node.IsLeaf() {
		return element
	}
	if isTextblock(node.Type) {
		r.renderInline(element, node.Content)
		return element
	}
	for _, child := range node.Content {
		element.AppendChild(r.renderBlock(child))
	}
	return element
}

func (r *renderer) renderCodeBlock(node model.Node) *xhtml.Node {
	pre := newElement("pre")
	r.addGlobalAttrs(pre, r.schema.NodeAttributes(node.Type), node.Attrs)
	code := newElement("code")
	if language, ok := node.Attrs["language"].(string); ok && language != "" {
		setAttr(code, "class", "language-"+language)
	}

	var sb strings.Builder
	for _, child := range node.Content {
		sb.WriteString(child.Text)
	}
	code.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: sb.String()})
	pre.AppendChild(code)
	return pre
}

// renderInline keeps marks shared by consecutive inline nodes open instead of
// closing and reopening them around every node.
func (r *renderer) renderInline(parent *xhtml.Node, content []model.Node) {
	var activeMarks []model.Mark
	stack := []*xhtml.Node{parent}

	for _, node := range content {
		common := 0
		for common < len(activeMarks) && common < len(node.Marks) && activeMarks[common].Equal(node.Marks[common]) {
			common++
		}

		stack = stack[:common+1]
		activeMarks = activeMarks[:common]
		for _, mark := range node.Marks[common:] {
			element := r.renderMark(mark)
			if element == nil {
				element = stack[len(stack)-1]
			} else {
				stack[len(stack)-1].AppendChild(element)
			}
			stack = append(stack, element)
			activeMarks = append(activeMarks, mark)
		}

		top := stack[len(stack)-1]
		if node.IsText() {
			top.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: node.Text})
			continue
		}
		top.AppendChild(r.renderNode(node))
	}
}

// renderMark returns nil for a style mark that renders no attributes, so an
// empty span is never written.
func (r *renderer) renderMark(mark model.Mark) *xhtml.Node {
	tag, ok := markTags[mark.Type]
	if !ok {
		tag = "span"
	}

	element := newElement(tag)
	switch mark.Type {
	case "link":
		if href, ok := mark.Attrs["href"].(string); ok {
			setAttr(element, "href", href)
		}
		if title, ok := mark.Attrs["title"].(string); ok && title != "" {
			setAttr(element, "title", title)
		}
	case "bold", "italic", "strike", "code", "underline", "textStyle":
	default:
		setAttr(element, "data-mark", mark.Type)
	}
	r.addGlobalAttrs(element, r.schema.MarkAttributes(mark.Type), mark.Attrs)

	if mark.Type == "textStyle" && len(element.Attr) == 0 {
		return nil
	}
	return element
}

func (r *renderer) addBuiltinNodeAttrs(element *xhtml.Node, node model.Node) {
	switch node.Type {
	case "image":
		for _, key := range []string{"src", "alt", "title"} {
			if value, ok := node.Attrs[key].(string); ok && value != "" {
				setAttr(element, key, value)
			}
		}
	case "orderedList":
		if start := intAttr(node.Attrs, "order", 1); start != 1 {
			setAttr(element, "start", strconv.Itoa(start))
		}
	case "heading", "paragraph", "blockquote", "bulletList", "listItem", "horizontalRule", "hardBreak":
	default:
		setAttr(element, "data-type", node.Type)
	}
}

func (r *renderer) addGlobalAttrs(element *xhtml.Node, attrs []editor.NamedAttribute, values model.Attrs) {
	for _, attr := range attrs {
		if attr.Spec.RenderHTML == nil {
			continue
		}
		rendered := attr.Spec.RenderHTML(values[attr.Name])
		for _, key := range sortedKeys(rendered) {
			mergeAttr(element, key, rendered[key])
		}
	}
}

func blockTag(node model.Node) string {
	if node.Type == "heading" {
		return "h" + strconv.Itoa(headingLevel(node.Attrs))
	}
	if tag, ok := nodeTags[node.Type]; ok {
		return tag
	}
	return "div"
}

func isTextblock(nodeType string) bool {
	return nodeType == "paragraph" || nodeType == "heading"
}

func headingLevel(attrs model.Attrs) int {
	level := intAttr(attrs, "level", 1)
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return level
}

func intAttr(attrs model.Attrs, key string, def int) int {
	switch value := attrs[key].(type) {
	case int:
		return value
	case float64:
		return int(value)
	case string:
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return def
}

func newElement(tag string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func setAttr(element *xhtml.Node, key, value string) {
	for i := range element.Attr {
		if element.Attr[i].Key == key {
			element.Attr[i].Val = value
			return
		}
	}
	element.Attr = append(element.Attr, xhtml.Attribute{Key: key, Val: value})
}

// mergeAttr joins style and class values instead of overwriting them.
func mergeAttr(element *xhtml.Node, key, value string) {
	for i := range element.Attr {
		if element.Attr[i].Key != key {
			continue
		}
		switch key {
		case "style":
			element.Attr[i].Val = strings.TrimSuffix(strings.TrimSpace(element.Attr[i].Val), ";") + "; " + value
		case "class":
			element.Attr[i].Val += " " + value
		default:
			element.Attr[i].Val = value
		}
		return
	}
	element.Attr = append(element.Attr, xhtml.Attribute{Key: key, Val: value})
}

func sortedKeys(attrs editor.HTMLAttributes) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
