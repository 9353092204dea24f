package editor

import (
	"fmt"
	"sort"

	"github.com/rgonek/richtext-styles/model"
	"go.uber.org/zap"
	xhtml "golang.org/x/net/html"
)

// HTMLAttributes are the HTML attributes produced by an attribute renderer.
type HTMLAttributes map[string]string

// AttributeSpec describes one schema attribute: its default value and how it
// is read from and written to HTML.
type AttributeSpec struct {
	Default interface{}
	// ParseHTML reads the value from an element. Nil means the default is used.
	ParseHTML func(element *xhtml.Node) interface{}
	// RenderHTML turns a value into HTML attributes. Returning nil emits nothing.
	RenderHTML func(value interface{}) HTMLAttributes
}

// GlobalAttributes attaches attributes to several node or mark types at once.
type GlobalAttributes struct {
	Types      []string
	Attributes map[string]AttributeSpec
}

// NamedAttribute pairs an attribute spec with its name.
type NamedAttribute struct {
	Name string
	Spec AttributeSpec
}

var builtinNodeTypes = []string{
	"doc",
	"paragraph",
	"heading",
	"blockquote",
	"bulletList",
	"orderedList",
	"listItem",
	"codeBlock",
	"horizontalRule",
	"hardBreak",
	"image",
	"text",
}

var builtinMarkTypes = []string{
	"bold",
	"italic",
	"strike",
	"code",
	"underline",
	"link",
	"textStyle",
}

// Schema is the registry of node types, mark types and the global attributes
// extensions declare on them. It is built once and read-only afterwards.
type Schema struct {
	nodes  map[string]map[string]AttributeSpec
	marks  map[string]map[string]AttributeSpec
	logger *zap.SugaredLogger
}

// NewSchema creates a schema with the built-in node and mark types.
func NewSchema(logger *zap.SugaredLogger) *Schema {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s := &Schema{
		nodes:  make(map[string]map[string]AttributeSpec, len(builtinNodeTypes)),
		marks:  make(map[string]map[string]AttributeSpec, len(builtinMarkTypes)),
		logger: logger,
	}
	for _, name := range builtinNodeTypes {
		s.nodes[name] = map[string]AttributeSpec{}
	}
	for _, name := range builtinMarkTypes {
		s.marks[name] = map[string]AttributeSpec{}
	}
	return s
}

// HasNode reports whether name is a known node type.
func (s *Schema) HasNode(name string) bool {
	_, ok := s.nodes[name]
	return ok
}

// HasMark reports whether name is a known mark type.
func (s *Schema) HasMark(name string) bool {
	_, ok := s.marks[name]
	return ok
}

// AddGlobalAttributes registers attributes on every listed type. Type names
// the schema does not know are skipped, as the host editor does.
func (s *Schema) AddGlobalAttributes(global GlobalAttributes) error {
	for _, typeName := range global.Types {
		attrs, ok := s.nodes[typeName]
		if !ok {
			attrs, ok = s.marks[typeName]
		}
		if !ok {
			s.logger.Warnw("skipping global attributes for unknown type", "type", typeName)
			continue
		}

		for name, spec := range global.Attributes {
			if name == "" {
				return fmt.Errorf("empty attribute name on type %q", typeName)
			}
			if _, exists := attrs[name]; exists {
				return fmt.Errorf("attribute %q already registered on type %q", name, typeName)
			}
			attrs[name] = spec
			s.logger.Debugw("registered global attribute", "type", typeName, "attribute", name)
		}
	}
	return nil
}

// NodeAttributes returns the registered attributes of a node type sorted by name.
func (s *Schema) NodeAttributes(nodeType string) []NamedAttribute {
	return sortedAttributes(s.nodes[nodeType])
}

// MarkAttributes returns the registered attributes of a mark type sorted by name.
func (s *Schema) MarkAttributes(markType string) []NamedAttribute {
	return sortedAttributes(s.marks[markType])
}

func sortedAttributes(attrs map[string]AttributeSpec) []NamedAttribute {
	if len(attrs) == 0 {
		return nil
	}

	named := make([]NamedAttribute, 0, len(attrs))
	for name, spec := range attrs {
		named = append(named, NamedAttribute{Name: name, Spec: spec})
	}
	sort.Slice(named, func(i, j int) bool {
		return named[i].Name < named[j].Name
	})
	return named
}

// CreateMark builds a mark of the given type, filling registered defaults for
// attributes missing from attrs.
func (s *Schema) CreateMark(markType string, attrs model.Attrs) (model.Mark, error) {
	specs, ok := s.marks[markType]
	if !ok {
		return model.Mark{}, fmt.Errorf("unknown mark type %q", markType)
	}
	return model.Mark{Type: markType, Attrs: computeAttrs(specs, attrs)}, nil
}

// Normalize returns a copy of doc where every node and mark carries a value
// for each of its registered attributes.
func (s *Schema) Normalize(doc model.Doc) model.Doc {
	root := s.normalizeNode(doc.Root())
	doc.Content = root.Content
	return doc
}

func (s *Schema) normalizeNode(node model.Node) model.Node {
	if specs := s.nodes[node.Type]; len(specs) > 0 {
		node.Attrs = computeAttrs(specs, node.Attrs)
	}

	if len(node.Marks) > 0 {
		marks := make([]model.Mark, len(node.Marks))
		for i, mark := range node.Marks {
			if specs := s.marks[mark.Type]; len(specs) > 0 {
				mark.Attrs = computeAttrs(specs, mark.Attrs)
			}
			marks[i] = mark
		}
		node.Marks = marks
	}

	if len(node.Content) > 0 {
		content := make([]model.Node, len(node.Content))
		for i, child := range node.Content {
			content[i] = s.normalizeNode(child)
		}
		node.Content = content
	}
	return node
}

func computeAttrs(specs map[string]AttributeSpec, attrs model.Attrs) model.Attrs {
	computed := attrs.Clone()
	if computed == nil {
		computed = model.Attrs{}
	}
	for name, spec := range specs {
		if _, ok := computed[name]; !ok {
			computed[name] = spec.Default
		}
	}
	if len(computed) == 0 {
		return nil
	}
	return computed
}
