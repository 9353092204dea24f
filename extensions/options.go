package extensions

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/rgonek/richtext-styles/editor"
	"gopkg.in/yaml.v3"
)

// StyleKind selects whether a style attribute lives on marks or on nodes.
type StyleKind string

const (
	StyleMark StyleKind = "mark"
	StyleNode StyleKind = "node"
)

var (
	attributeNamePattern = regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`)
	propertyPattern      = regexp.MustCompile(`^-?[a-z][a-z0-9-]*$`)
)

// StyleOptions declares one style attribute.
type StyleOptions struct {
	Kind     StyleKind `yaml:"kind"`
	Name     string    `yaml:"name"`
	Property string    `yaml:"property,omitempty"`
	Types    []string  `yaml:"types,omitempty"`
	Default  string    `yaml:"default,omitempty"`
}

func (o StyleOptions) applyDefaults() StyleOptions {
	if o.Property == "" {
		o.Property = kebabCase(o.Name)
	}
	if len(o.Types) == 0 {
		switch o.Kind {
		case StyleMark:
			o.Types = []string{"textStyle"}
		case StyleNode:
			o.Types = []string{"paragraph", "heading"}
		}
	}
	o.Types = append([]string(nil), o.Types...)
	return o
}

// Validate checks that option values are valid.
func (o StyleOptions) Validate() error {
	if o.Kind != StyleMark && o.Kind != StyleNode {
		return fmt.Errorf("invalid style kind %q", o.Kind)
	}
	if !attributeNamePattern.MatchString(o.Name) {
		return fmt.Errorf("invalid attribute name %q", o.Name)
	}
	if !propertyPattern.MatchString(o.Property) {
		return fmt.Errorf("invalid style property %q for attribute %q", o.Property, o.Name)
	}
	if len(o.Types) == 0 {
		return fmt.Errorf("attribute %q has no target types", o.Name)
	}
	for _, t := range o.Types {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("attribute %q has an empty target type", o.Name)
		}
	}
	switch o.Kind {
	case StyleMark:
		if o.Default != "" {
			return fmt.Errorf("mark attribute %q cannot declare a default", o.Name)
		}
	case StyleNode:
		if strings.TrimSpace(o.Default) == "" {
			return fmt.Errorf("node attribute %q requires a default", o.Name)
		}
	}
	return nil
}

// FontSizeOptions configures the font size extension.
type FontSizeOptions struct {
	Disabled bool     `yaml:"disabled,omitempty"`
	Types    []string `yaml:"types,omitempty"`
}

// LineHeightOptions configures the line height extension.
type LineHeightOptions struct {
	Disabled          bool     `yaml:"disabled,omitempty"`
	Types             []string `yaml:"types,omitempty"`
	DefaultLineHeight string   `yaml:"defaultLineHeight,omitempty"`
}

// Options is the extension configuration file layout.
type Options struct {
	FontSize   FontSizeOptions   `yaml:"fontSize"`
	LineHeight LineHeightOptions `yaml:"lineHeight"`
	Custom     []StyleOptions    `yaml:"custom,omitempty"`
}

// LoadOptions decodes YAML options. Unknown keys are rejected.
func LoadOptions(data []byte) (Options, error) {
	var opts Options
	if strings.TrimSpace(string(data)) == "" {
		return opts, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse extension options: %w", err)
	}
	return opts, nil
}

// Build creates the configured extensions: font size, line height, then the
// custom styles in file order.
func (o Options) Build() ([]editor.Extension, error) {
	var exts []editor.Extension

	if !o.FontSize.Disabled {
		fontSize, err := NewFontSize(o.FontSize)
		if err != nil {
			return nil, err
		}
		exts = append(exts, fontSize)
	}
	if !o.LineHeight.Disabled {
		lineHeight, err := NewLineHeight(o.LineHeight)
		if err != nil {
			return nil, err
		}
		exts = append(exts, lineHeight)
	}

	for i, custom := range o.Custom {
		var (
			ext editor.Extension
			err error
		)
		switch custom.Kind {
		case StyleMark:
			ext, err = NewMarkStyle(custom)
		case StyleNode:
			ext, err = NewNodeStyle(custom)
		default:
			err = fmt.Errorf("invalid style kind %q", custom.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("custom style %d: %w", i, err)
		}
		exts = append(exts, ext)
	}

	return exts, nil
}

func kebabCase(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
