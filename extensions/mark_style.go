package extensions

import (
	"github.com/rgonek/richtext-styles/editor"
	"github.com/rgonek/richtext-styles/model"
)

// MarkStyle attaches a style attribute to inline mark types. The attribute
// defaults to nil, so clearing it can drop the mark entirely.
type MarkStyle struct {
	name     string
	property string
	markType string
	types    []string
}

// NewMarkStyle creates a mark style extension from validated options.
func NewMarkStyle(opts StyleOptions) (*MarkStyle, error) {
	opts.Kind = StyleMark
	cfg := opts.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &MarkStyle{
		name:     cfg.Name,
		property: cfg.Property,
		markType: cfg.Types[0],
		types:    append([]string(nil), cfg.Types...),
	}, nil
}

// Name returns the attribute name.
func (s *MarkStyle) Name() string {
	return s.name
}

// Types returns the mark types the attribute is registered on.
func (s *MarkStyle) Types() []string {
	return append([]string(nil), s.types...)
}

// GlobalAttributes registers the attribute with a nil default.
func (s *MarkStyle) GlobalAttributes() []editor.GlobalAttributes {
	return []editor.GlobalAttributes{
		{
			Types: s.Types(),
			Attributes: map[string]editor.AttributeSpec{
				s.name: StyleAttribute(s.property, nil),
			},
		},
	}
}

// Commands returns the set and unset commands keyed by name.
func (s *MarkStyle) Commands() map[string]editor.CommandFactory {
	return map[string]editor.CommandFactory{
		commandName("set", s.name):   setFactory(s.Set),
		commandName("unset", s.name): unsetFactory(s.Unset),
	}
}

// Set applies the style mark with the attribute set to value over the
// selection. The value is stored as given.
func (s *MarkStyle) Set(value string) editor.Command {
	return func(p editor.CommandProps) bool {
		ok, err := p.Chain().
			SetMark(s.markType, model.Attrs{s.name: value}).
			Run()
		return ok && err == nil
	}
}

// Unset clears the attribute and removes style marks left without any
// meaningful attribute.
func (s *MarkStyle) Unset() editor.Command {
	return func(p editor.CommandProps) bool {
		ok, err := p.Chain().
			SetMark(s.markType, model.Attrs{s.name: nil}).
			RemoveEmptyMark(s.markType).
			Run()
		return ok && err == nil
	}
}
