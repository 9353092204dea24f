// Package mdimport converts GitHub Flavored Markdown into documents.
package mdimport

import (
	"github.com/rgonek/richtext-styles/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Converter converts GFM markdown to documents.
type Converter struct {
	parser goldmark.Markdown
}

type state struct {
	source   []byte
	warnings []Warning
}

// New creates a Markdown importer.
func New() *Converter {
	return &Converter{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Convert parses a markdown document.
func (c *Converter) Convert(markdown string) Result {
	s := &state{source: []byte(markdown)}

	root := c.parser.Parser().Parse(text.NewReader(s.source))
	doc := model.NewDoc(s.convertBlocks(root)...)

	return Result{
		Doc:      doc,
		Warnings: s.warnings,
	}
}

// Convert parses markdown with a default importer.
func Convert(markdown string) Result {
	return New().Convert(markdown)
}

func (s *state) addWarning(warnType WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}
