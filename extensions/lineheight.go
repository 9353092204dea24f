package extensions

import "github.com/rgonek/richtext-styles/editor"

// DefaultLineHeight is the line height nodes reset to.
const DefaultLineHeight = "normal"

// LineHeight stores a line height on paragraphs and headings and registers
// the setLineHeight and unsetLineHeight commands.
type LineHeight struct {
	*NodeStyle
}

// NewLineHeight creates the line height extension.
func NewLineHeight(opts LineHeightOptions) (*LineHeight, error) {
	def := opts.DefaultLineHeight
	if def == "" {
		def = DefaultLineHeight
	}

	style, err := NewNodeStyle(StyleOptions{
		Name:     "lineHeight",
		Property: "line-height",
		Types:    opts.Types,
		Default:  def,
	})
	if err != nil {
		return nil, err
	}
	return &LineHeight{NodeStyle: style}, nil
}

// SetLineHeight sets the line height of every paragraph and heading in the selection.
func (l *LineHeight) SetLineHeight(lineHeight string) editor.Command {
	return l.Set(lineHeight)
}

// UnsetLineHeight resets the line height to the configured default.
func (l *LineHeight) UnsetLineHeight() editor.Command {
	return l.Unset()
}
