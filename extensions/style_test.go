package extensions

import (
	"testing"

	"github.com/rgonek/richtext-styles/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"
)

func styledElement(style string) *xhtml.Node {
	el := &xhtml.Node{Type: xhtml.ElementNode, Data: "span"}
	if style != "" {
		el.Attr = []xhtml.Attribute{{Key: "style", Val: style}}
	}
	return el
}

func TestParseStyleProperty(t *testing.T) {
	tests := []struct {
		name      string
		style     string
		property  string
		wantValue string
		wantFound bool
	}{
		{name: "single", style: "font-size: 20px", property: "font-size", wantValue: "20px", wantFound: true},
		{name: "among others", style: "color: red; font-size: 1.5em; font-weight: bold", property: "font-size", wantValue: "1.5em", wantFound: true},
		{name: "last wins", style: "line-height: 1; line-height: 2", property: "line-height", wantValue: "2", wantFound: true},
		{name: "case insensitive property", style: "Line-Height: 1.15", property: "line-height", wantValue: "1.15", wantFound: true},
		{name: "trailing semicolon", style: "font-size: 20px;", property: "font-size", wantValue: "20px", wantFound: true},
		{name: "doubled semicolons", style: "font-size: 20px;;", property: "font-size", wantValue: "20px", wantFound: true},
		{name: "empty declaration before valid one", style: "color:; font-size: 3px", property: "font-size", wantValue: "3px", wantFound: true},
		{name: "malformed declaration skipped", style: "font-size 9px; line-height: 2", property: "line-height", wantValue: "2", wantFound: true},
		{name: "empty value keeps earlier one", style: "font-size: 8px; font-size:", property: "font-size", wantValue: "8px", wantFound: true},
		{name: "important", style: "font-size: 20px !important", property: "font-size", wantValue: "20px !important", wantFound: true},
		{name: "missing", style: "color: red", property: "font-size"},
		{name: "empty", style: "", property: "font-size"},
		{name: "blank", style: "   ", property: "font-size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, found := ParseStyleProperty(tt.style, tt.property)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestRenderStyleProperty(t *testing.T) {
	assert.Equal(t, "font-size: 20px", RenderStyleProperty("font-size", "20px"))
	assert.Equal(t, "line-height: 2", RenderStyleProperty("line-height", 2))
	assert.Empty(t, RenderStyleProperty("font-size", nil))
	assert.Empty(t, RenderStyleProperty("font-size", ""))
	assert.Empty(t, RenderStyleProperty("font-size", false))
}

func TestStyleAttributeRoundTrip(t *testing.T) {
	for _, value := range []string{"20px", "1.5em", "12pt", "2", "normal", "150%", "20px !important"} {
		t.Run(value, func(t *testing.T) {
			spec := StyleAttribute("font-size", nil)

			rendered := spec.RenderHTML(value)
			require.Equal(t, editor.HTMLAttributes{"style": "font-size: " + value}, rendered)

			parsed := spec.ParseHTML(styledElement(rendered["style"]))
			assert.Equal(t, value, parsed)
		})
	}
}

func TestStyleAttributeAbsence(t *testing.T) {
	spec := StyleAttribute("font-size", nil)

	assert.Nil(t, spec.RenderHTML(nil))
	assert.Nil(t, spec.RenderHTML(""))
	assert.Nil(t, spec.ParseHTML(styledElement("")))
	assert.Nil(t, spec.ParseHTML(styledElement("color: blue")))
	assert.Nil(t, spec.ParseHTML(nil))
}

func TestStyleAttributeParseFallsBackToDefault(t *testing.T) {
	spec := StyleAttribute("line-height", DefaultLineHeight)

	assert.Equal(t, DefaultLineHeight, spec.Default)
	assert.Equal(t, DefaultLineHeight, spec.ParseHTML(styledElement("")))
	assert.Equal(t, "1.8", spec.ParseHTML(styledElement("text-align: center; line-height: 1.8")))
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "setFontSize", commandName("set", "fontSize"))
	assert.Equal(t, "unsetLineHeight", commandName("unset", "lineHeight"))
	assert.Equal(t, "set", commandName("set", ""))
}
