package mdimport

import (
	"fmt"
	"strings"

	"github.com/rgonek/richtext-styles/model"
	"github.com/yuin/goldmark/ast"
)

func (s *state) convertBlocks(parent ast.Node) []model.Node {
	var content []model.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if node, ok := s.convertBlockNode(child); ok {
			content = append(content, node)
		}
	}
	return content
}

func (s *state) convertBlockNode(node ast.Node) (model.Node, bool) {
	switch typed := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return s.textblock("paragraph", nil, typed)
	case *ast.Heading:
		return s.textblock("heading", model.Attrs{"level": typed.Level}, typed)
	case *ast.Blockquote:
		return model.Node{Type: "blockquote", Content: s.convertBlocks(typed)}, true
	case *ast.ThematicBreak:
		return model.Node{Type: "horizontalRule"}, true
	case *ast.FencedCodeBlock:
		block := s.codeBlock(typed)
		if language := strings.TrimSpace(string(typed.Language(s.source))); language != "" {
			block.Attrs = model.Attrs{"language": language}
		}
		return block, true
	case *ast.CodeBlock:
		return s.codeBlock(typed), true
	case *ast.List:
		return s.list(typed), true
	default:
		kind := node.Kind().String()
		value := strings.TrimSpace(s.linesText(node))
		if value == "" {
			if node.HasChildren() {
				s.addWarning(WarningDroppedFeature, kind, fmt.Sprintf("dropped markdown block node: %s", kind))
			}
			return model.Node{}, false
		}
		s.addWarning(
			WarningUnknownNode,
			kind,
			fmt.Sprintf("unsupported markdown block node: %s", kind),
		)
		return model.Node{
			Type:    "paragraph",
			Content: []model.Node{{Type: "text", Text: value}},
		}, true
	}
}

func (s *state) textblock(nodeType string, attrs model.Attrs, node ast.Node) (model.Node, bool) {
	content := s.convertInlineChildren(node, &markStack{})
	block := model.Node{Type: nodeType, Attrs: attrs, Content: content}
	if nodeType == "paragraph" && len(content) == 1 && content[0].Type == "image" {
		return content[0], true
	}
	return block, true
}

func (s *state) codeBlock(node ast.Node) model.Node {
	block := model.Node{Type: "codeBlock"}
	value := strings.TrimSuffix(s.linesText(node), "\n")
	if value != "" {
		block.Content = []model.Node{{Type: "text", Text: value}}
	}
	return block
}

func (s *state) list(node *ast.List) model.Node {
	list := model.Node{Type: "bulletList"}
	if node.IsOrdered() {
		list.Type = "orderedList"
		list.Attrs = model.Attrs{"order": node.Start}
	}

	for item := node.FirstChild(); item != nil; item = item.NextSibling() {
		list.Content = append(list.Content, model.Node{
			Type:    "listItem",
			Content: s.convertBlocks(item),
		})
	}
	return list
}

func (s *state) linesText(node ast.Node) string {
	lines := node.Lines()
	if lines == nil {
		return ""
	}

	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(s.source))
	}
	return sb.String()
}
