package extensions

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/rgonek/richtext-styles/editor"
	"github.com/rgonek/richtext-styles/model"
	xhtml "golang.org/x/net/html"
)

// StyleAttribute returns an attribute spec stored as a single inline style
// property. Parsing falls back to def when the element does not set the
// property; rendering emits nothing for empty values.
func StyleAttribute(property string, def interface{}) editor.AttributeSpec {
	return editor.AttributeSpec{
		Default: def,
		ParseHTML: func(element *xhtml.Node) interface{} {
			if value, ok := ParseStyleProperty(elementStyle(element), property); ok {
				return value
			}
			return def
		},
		RenderHTML: func(value interface{}) editor.HTMLAttributes {
			style := RenderStyleProperty(property, value)
			if style == "" {
				return nil
			}
			return editor.HTMLAttributes{"style": style}
		},
	}
}

// ParseStyleProperty returns the value of property in an inline style
// declaration list. Later declarations win, as in the browser, and a
// malformed declaration is skipped without discarding the others.
func ParseStyleProperty(style, property string) (string, bool) {
	value, found := "", false
	for _, chunk := range strings.Split(style, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		// The parser only completes a declaration once it sees a terminator.
		declarations, err := parser.ParseDeclarations(chunk + ";")
		if err != nil {
			continue
		}
		for _, declaration := range declarations {
			if !strings.EqualFold(strings.TrimSpace(declaration.Property), property) {
				continue
			}
			v := strings.TrimSpace(declaration.Value)
			if v == "" {
				continue
			}
			if declaration.Important {
				v += " !important"
			}
			value, found = v, true
		}
	}
	return value, found
}

// RenderStyleProperty renders "<property>: <value>", or "" for empty values.
func RenderStyleProperty(property string, value interface{}) string {
	if model.IsEmptyValue(value) {
		return ""
	}
	return fmt.Sprintf("%s: %v", property, value)
}

func elementStyle(element *xhtml.Node) string {
	if element == nil {
		return ""
	}
	for _, attr := range element.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, "style") {
			return attr.Val
		}
	}
	return ""
}

func commandName(verb, attribute string) string {
	if attribute == "" {
		return verb
	}
	return verb + strings.ToUpper(attribute[:1]) + attribute[1:]
}

func setFactory(build func(value string) editor.Command) editor.CommandFactory {
	return func(args ...string) (editor.Command, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		return build(args[0]), nil
	}
}

func unsetFactory(build func() editor.Command) editor.CommandFactory {
	return func(args ...string) (editor.Command, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("expected no arguments, got %d", len(args))
		}
		return build(), nil
	}
}
