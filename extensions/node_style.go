package extensions

import (
	"github.com/rgonek/richtext-styles/editor"
	"github.com/rgonek/richtext-styles/model"
)

// NodeStyle attaches a style attribute directly to block node types. Unlike
// MarkStyle the attribute always has a value: clearing it writes the
// configured default.
type NodeStyle struct {
	name     string
	property string
	def      string
	types    map[string]bool
	ordered  []string
}

// NewNodeStyle creates a node style extension from validated options.
func NewNodeStyle(opts StyleOptions) (*NodeStyle, error) {
	opts.Kind = StyleNode
	cfg := opts.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	types := make(map[string]bool, len(cfg.Types))
	for _, t := range cfg.Types {
		types[t] = true
	}
	return &NodeStyle{
		name:     cfg.Name,
		property: cfg.Property,
		def:      cfg.Default,
		types:    types,
		ordered:  append([]string(nil), cfg.Types...),
	}, nil
}

// Name returns the attribute name.
func (s *NodeStyle) Name() string {
	return s.name
}

// Default returns the configured default value.
func (s *NodeStyle) Default() string {
	return s.def
}

// Types returns the node types the attribute is registered on.
func (s *NodeStyle) Types() []string {
	return append([]string(nil), s.ordered...)
}

// GlobalAttributes registers the attribute with the configured default.
func (s *NodeStyle) GlobalAttributes() []editor.GlobalAttributes {
	return []editor.GlobalAttributes{
		{
			Types: s.Types(),
			Attributes: map[string]editor.AttributeSpec{
				s.name: StyleAttribute(s.property, s.def),
			},
		},
	}
}

// Commands returns the set and unset commands keyed by name.
func (s *NodeStyle) Commands() map[string]editor.CommandFactory {
	return map[string]editor.CommandFactory{
		commandName("set", s.name):   setFactory(s.Set),
		commandName("unset", s.name): unsetFactory(s.Unset),
	}
}

// Set writes value to every target node intersecting the selection.
func (s *NodeStyle) Set(value string) editor.Command {
	return s.rewrite(value)
}

// Unset writes the configured default to every target node intersecting the
// selection.
func (s *NodeStyle) Unset() editor.Command {
	return s.rewrite(s.def)
}

// rewrite walks the nodes between the selection bounds in document order and
// queues one markup step per target node. Positions come from the document the
// walk reads; the steps do not resize nodes so they stay valid. The pending
// document is walked, or the starting one if the pending steps do not apply.
func (s *NodeStyle) rewrite(value string) editor.Command {
	return func(p editor.CommandProps) bool {
		doc, err := p.Tr.Doc()
		if err != nil {
			doc = p.Tr.Before()
		}

		sel := p.Tr.Selection()
		p.Tr.SetSelection(sel)

		doc.NodesBetween(sel.From, sel.To, func(node model.Node, pos int, _ *model.Node, _ int) bool {
			if s.types[node.Type] {
				p.Tr.SetNodeMarkup(pos, "", node.Attrs.With(s.name, value))
			}
			return true
		})

		if p.Dispatch != nil {
			p.Dispatch(p.Tr)
		}
		return true
	}
}
