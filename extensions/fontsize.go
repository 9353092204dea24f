package extensions

import "github.com/rgonek/richtext-styles/editor"

// FontSize stores a font size on the textStyle mark and registers the
// setFontSize and unsetFontSize commands.
type FontSize struct {
	*MarkStyle
}

// NewFontSize creates the font size extension.
func NewFontSize(opts FontSizeOptions) (*FontSize, error) {
	style, err := NewMarkStyle(StyleOptions{
		Name:     "fontSize",
		Property: "font-size",
		Types:    opts.Types,
	})
	if err != nil {
		return nil, err
	}
	return &FontSize{MarkStyle: style}, nil
}

// SetFontSize sets the font size of the selected text, e.g. "20px".
func (f *FontSize) SetFontSize(size string) editor.Command {
	return f.Set(size)
}

// UnsetFontSize clears the font size of the selected text.
func (f *FontSize) UnsetFontSize() editor.Command {
	return f.Unset()
}
