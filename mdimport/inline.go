package mdimport

import (
	"strings"

	"github.com/rgonek/richtext-styles/model"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state) convertInlineChildren(parent ast.Node, stack *markStack) []model.Node {
	var content []model.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		content = append(content, s.convertInlineNode(child, stack)...)
	}
	return model.JoinText(content)
}

func (s *state) convertInlineNode(node ast.Node, stack *markStack) []model.Node {
	switch typed := node.(type) {
	case *ast.Text:
		var content []model.Node
		if value := string(typed.Value(s.source)); value != "" {
			content = append(content, newTextNode(value, stack.current()))
		}

		if typed.HardLineBreak() {
			content = append(content, model.Node{Type: "hardBreak"})
		} else if typed.SoftLineBreak() {
			content = append(content, newTextNode(" ", stack.current()))
		}
		return content

	case *ast.String:
		return []model.Node{newTextNode(string(typed.Value), stack.current())}

	case *ast.Emphasis:
		markType := "italic"
		if typed.Level >= 2 {
			markType = "bold"
		}
		return s.withMark(model.Mark{Type: markType}, typed, stack)

	case *extast.Strikethrough:
		return s.withMark(model.Mark{Type: "strike"}, typed, stack)

	case *ast.CodeSpan:
		return s.withMark(model.Mark{Type: "code"}, typed, stack)

	case *ast.Link:
		href := strings.TrimSpace(string(typed.Destination))
		if href == "" {
			return s.convertInlineChildren(typed, stack)
		}
		mark := model.Mark{Type: "link", Attrs: model.Attrs{"href": href}}
		if title := strings.TrimSpace(string(typed.Title)); title != "" {
			mark.Attrs["title"] = title
		}
		return s.withMark(mark, typed, stack)

	case *ast.AutoLink:
		url := string(typed.URL(s.source))
		mark := model.Mark{Type: "link", Attrs: model.Attrs{"href": url}}
		stack.push(mark)
		content := []model.Node{newTextNode(string(typed.Label(s.source)), stack.current())}
		stack.popByType("link")
		return content

	case *ast.Image:
		attrs := model.Attrs{
			"src": string(typed.Destination),
			"alt": s.plainText(typed),
		}
		if title := strings.TrimSpace(string(typed.Title)); title != "" {
			attrs["title"] = title
		}
		return []model.Node{{Type: "image", Attrs: attrs}}

	case *ast.RawHTML:
		s.addWarning(WarningDroppedFeature, typed.Kind().String(), "inline HTML is not imported")
		return nil

	default:
		if node.HasChildren() {
			return s.convertInlineChildren(node, stack)
		}
		kind := node.Kind().String()
		s.addWarning(WarningUnknownNode, kind, "unsupported markdown inline node: "+kind)
		return nil
	}
}

func (s *state) withMark(mark model.Mark, node ast.Node, stack *markStack) []model.Node {
	stack.push(mark)
	content := s.convertInlineChildren(node, stack)
	stack.popByType(mark.Type)
	return content
}

func (s *state) plainText(node ast.Node) string {
	var sb strings.Builder
	for _, child := range s.convertInlineChildren(node, &markStack{}) {
		sb.WriteString(child.Text)
	}
	return sb.String()
}

func newTextNode(value string, marks []model.Mark) model.Node {
	return model.Node{Type: "text", Text: value, Marks: marks}
}
