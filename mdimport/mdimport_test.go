package mdimport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rgonek/richtext-styles/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textNode(value string, marks ...model.Mark) model.Node {
	return model.Node{Type: "text", Text: value, Marks: marks}
}

func paragraph(content ...model.Node) model.Node {
	return model.Node{Type: "paragraph", Content: content}
}

func TestConvertBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []model.Node
	}{
		{
			name:  "heading and paragraph",
			input: "# Title\n\nHello **bold** and *it*\n",
			want: []model.Node{
				{Type: "heading", Attrs: model.Attrs{"level": 1}, Content: []model.Node{textNode("Title")}},
				paragraph(
					textNode("Hello "),
					textNode("bold", model.Mark{Type: "bold"}),
					textNode(" and "),
					textNode("it", model.Mark{Type: "italic"}),
				),
			},
		},
		{
			name:  "bullet list",
			input: "- a\n- b\n",
			want: []model.Node{{
				Type: "bulletList",
				Content: []model.Node{
					{Type: "listItem", Content: []model.Node{paragraph(textNode("a"))}},
					{Type: "listItem", Content: []model.Node{paragraph(textNode("b"))}},
				},
			}},
		},
		{
			name:  "ordered list",
			input: "3. x\n",
			want: []model.Node{{
				Type:    "orderedList",
				Attrs:   model.Attrs{"order": 3},
				Content: []model.Node{{Type: "listItem", Content: []model.Node{paragraph(textNode("x"))}}},
			}},
		},
		{
			name:  "fenced code",
			input: "```go\nx := 1\n```\n",
			want: []model.Node{
				{Type: "codeBlock", Attrs: model.Attrs{"language": "go"}, Content: []model.Node{textNode("x := 1")}},
			},
		},
		{
			name:  "rule and blockquote",
			input: "a\n\n---\n\n> q\n",
			want: []model.Node{
				paragraph(textNode("a")),
				{Type: "horizontalRule"},
				{Type: "blockquote", Content: []model.Node{paragraph(textNode("q"))}},
			},
		},
		{
			name:  "block image",
			input: "![alt text](a.png)\n",
			want: []model.Node{
				{Type: "image", Attrs: model.Attrs{"src": "a.png", "alt": "alt text"}},
			},
		},
		{
			name:  "soft break",
			input: "one\ntwo\n",
			want:  []model.Node{paragraph(textNode("one two"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Convert(tt.input)
			assert.Empty(t, result.Warnings)
			assert.Equal(t, "doc", result.Doc.Type)
			if diff := cmp.Diff(tt.want, result.Doc.Content); diff != "" {
				t.Errorf("content mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertInlineMarks(t *testing.T) {
	result := Convert("~~gone~~ `code` [site](https://example.com \"Example\") <https://go.dev>\n")
	require.Empty(t, result.Warnings)
	require.Len(t, result.Doc.Content, 1)

	want := []model.Node{
		textNode("gone", model.Mark{Type: "strike"}),
		textNode(" "),
		textNode("code", model.Mark{Type: "code"}),
		textNode(" "),
		textNode("site", model.Mark{Type: "link", Attrs: model.Attrs{"href": "https://example.com", "title": "Example"}}),
		textNode(" "),
		textNode("https://go.dev", model.Mark{Type: "link", Attrs: model.Attrs{"href": "https://go.dev"}}),
	}
	if diff := cmp.Diff(want, result.Doc.Content[0].Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertNestedMarks(t *testing.T) {
	result := Convert("***both***\n")

	content := result.Doc.Content[0].Content
	require.Len(t, content, 1)
	assert.Equal(t, "both", content[0].Text)
	assert.ElementsMatch(t, []model.Mark{{Type: "bold"}, {Type: "italic"}}, content[0].Marks)
}

func TestConvertHardBreak(t *testing.T) {
	result := Convert("line one\\\nline two\n")

	content := result.Doc.Content[0].Content
	require.Len(t, content, 3)
	assert.Equal(t, "line one", content[0].Text)
	assert.Equal(t, "hardBreak", content[1].Type)
	assert.Equal(t, "line two", content[2].Text)
}

func TestConvertInlineHTMLWarns(t *testing.T) {
	result := Convert("a <b>x</b>\n")

	require.Len(t, result.Warnings, 2)
	for _, warning := range result.Warnings {
		assert.Equal(t, WarningDroppedFeature, warning.Type)
		assert.Equal(t, "inline HTML is not imported", warning.Message)
	}
	assert.Equal(t, []model.Node{paragraph(textNode("a x"))}, result.Doc.Content)
}

func TestConvertUnsupportedBlockWarns(t *testing.T) {
	result := Convert("| a |\n|---|\n| b |\n")

	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "Table", result.Warnings[0].NodeType)
}

func TestConvertEmpty(t *testing.T) {
	result := Convert("")
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Doc.Content)
}
