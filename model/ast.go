package model

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Attrs is the attribute bag of a node or mark.
type Attrs map[string]interface{}

// Clone returns a shallow copy of the attribute bag.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}

	cloned := make(Attrs, len(a))
	for key, value := range a {
		cloned[key] = value
	}

	return cloned
}

// With returns a shallow copy of the bag with key set to value.
func (a Attrs) With(key string, value interface{}) Attrs {
	cloned := a.Clone()
	if cloned == nil {
		cloned = Attrs{}
	}
	cloned[key] = value
	return cloned
}

// Doc represents the root document node.
type Doc struct {
	Version int    `json:"version,omitempty"`
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`
}

// Node represents any node in the document tree (e.g., paragraph, text, etc.).
type Node struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Content []Node `json:"content,omitempty"`
	Marks   []Mark `json:"marks,omitempty"`
	Attrs   Attrs  `json:"attrs,omitempty"`
}

// Mark represents inline formatting applied to a text node (e.g., bold, textStyle).
type Mark struct {
	Type  string `json:"type"`
	Attrs Attrs  `json:"attrs,omitempty"`
}

// Equal reports whether both marks have the same type and attributes.
func (m Mark) Equal(other Mark) bool {
	if m.Type != other.Type {
		return false
	}
	if len(m.Attrs) == 0 && len(other.Attrs) == 0 {
		return true
	}
	return reflect.DeepEqual(m.Attrs, other.Attrs)
}

// NewDoc returns an empty document.
func NewDoc(content ...Node) Doc {
	return Doc{Type: "doc", Content: content}
}

// Parse decodes a JSON document.
func Parse(input []byte) (Doc, error) {
	var doc Doc
	if err := json.Unmarshal(input, &doc); err != nil {
		return Doc{}, fmt.Errorf("failed to parse document JSON: %w", err)
	}
	if doc.Type == "" {
		doc.Type = "doc"
	}
	if doc.Type != "doc" {
		return Doc{}, fmt.Errorf("unexpected root node type %q", doc.Type)
	}

	return doc, nil
}

// Root returns the document as a tree node.
func (d Doc) Root() Node {
	return Node{Type: d.Type, Content: d.Content}
}
