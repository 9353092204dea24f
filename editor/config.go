package editor

import (
	"fmt"

	"github.com/rgonek/richtext-styles/model"
	"go.uber.org/zap"
)

// Config holds editor configuration.
type Config struct {
	// Content is the initial document. An empty value starts with an empty doc.
	Content model.Doc
	// Selection is the initial selection. Nil places a cursor at the start of
	// the first textblock.
	Selection *Selection
	// Logger receives registration and dispatch logs. Nil disables logging.
	Logger *zap.SugaredLogger
}

func (c Config) applyDefaults() Config {
	if c.Content.Type == "" {
		c.Content.Type = "doc"
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop().Sugar()
	}
	if c.Selection == nil {
		sel := startCursor(c.Content)
		c.Selection = &sel
	}
	return c
}

// clone returns a copy of Config that does not share the selection pointer.
func (c Config) clone() Config {
	cloned := c
	if c.Selection != nil {
		sel := *c.Selection
		cloned.Selection = &sel
	}
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.Content.Type != "doc" {
		return fmt.Errorf("invalid content root type %q", c.Content.Type)
	}
	if c.Selection != nil {
		if err := c.Selection.validate(c.Content); err != nil {
			return fmt.Errorf("invalid selection: %w", err)
		}
	}
	return nil
}

func startCursor(doc model.Doc) Selection {
	if len(doc.Content) > 0 && !doc.Content[0].IsLeaf() {
		return Cursor(1)
	}
	return Cursor(0)
}
