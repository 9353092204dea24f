package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	data := []byte(`
fontSize:
  types: [textStyle]
lineHeight:
  defaultLineHeight: "1.5"
  types: [paragraph, heading, blockquote]
custom:
  - kind: node
    name: textIndent
    default: "0"
  - kind: mark
    name: letterSpacing
`)

	opts, err := LoadOptions(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"textStyle"}, opts.FontSize.Types)
	assert.Equal(t, "1.5", opts.LineHeight.DefaultLineHeight)
	assert.Equal(t, []string{"paragraph", "heading", "blockquote"}, opts.LineHeight.Types)
	require.Len(t, opts.Custom, 2)
	assert.Equal(t, StyleOptions{Kind: StyleNode, Name: "textIndent", Default: "0"}, opts.Custom[0])
	assert.Equal(t, StyleOptions{Kind: StyleMark, Name: "letterSpacing"}, opts.Custom[1])
}

func TestLoadOptionsEmpty(t *testing.T) {
	opts, err := LoadOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, Options{}, opts)

	opts, err = LoadOptions([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, Options{}, opts)
}

func TestLoadOptionsRejectsUnknownKeys(t *testing.T) {
	_, err := LoadOptions([]byte("fontSize:\n  unit: px\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse extension options")
}

func TestOptionsBuild(t *testing.T) {
	opts := Options{
		LineHeight: LineHeightOptions{DefaultLineHeight: "1.5"},
		Custom: []StyleOptions{
			{Kind: StyleNode, Name: "textIndent", Default: "0"},
			{Kind: StyleMark, Name: "letterSpacing"},
		},
	}

	exts, err := opts.Build()
	require.NoError(t, err)

	var names []string
	for _, ext := range exts {
		names = append(names, ext.Name())
	}
	assert.Equal(t, []string{"fontSize", "lineHeight", "textIndent", "letterSpacing"}, names)

	lineHeight, ok := exts[1].(*LineHeight)
	require.True(t, ok)
	assert.Equal(t, "1.5", lineHeight.Default())

	indent, ok := exts[2].(*NodeStyle)
	require.True(t, ok)
	assert.Equal(t, "text-indent", indent.property)
	assert.Equal(t, []string{"paragraph", "heading"}, indent.Types())
}

func TestOptionsBuildDisabled(t *testing.T) {
	opts := Options{
		FontSize:   FontSizeOptions{Disabled: true},
		LineHeight: LineHeightOptions{Disabled: true},
	}

	exts, err := opts.Build()
	require.NoError(t, err)
	assert.Empty(t, exts)
}

func TestOptionsBuildInvalidCustom(t *testing.T) {
	tests := []struct {
		name    string
		custom  StyleOptions
		wantErr string
	}{
		{
			name:    "mark with default",
			custom:  StyleOptions{Kind: StyleMark, Name: "color", Default: "black"},
			wantErr: `custom style 0: mark attribute "color" cannot declare a default`,
		},
		{
			name:    "node without default",
			custom:  StyleOptions{Kind: StyleNode, Name: "textAlign"},
			wantErr: `custom style 0: node attribute "textAlign" requires a default`,
		},
		{
			name:    "bad name",
			custom:  StyleOptions{Kind: StyleMark, Name: "Font Size"},
			wantErr: `custom style 0: invalid attribute name "Font Size"`,
		},
		{
			name:    "bad property",
			custom:  StyleOptions{Kind: StyleMark, Name: "shadow", Property: "text shadow"},
			wantErr: `custom style 0: invalid style property "text shadow" for attribute "shadow"`,
		},
		{
			name:    "unknown kind",
			custom:  StyleOptions{Kind: "block", Name: "shadow"},
			wantErr: `custom style 0: invalid style kind "block"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Options{Custom: []StyleOptions{tt.custom}}.Build()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestKebabCase(t *testing.T) {
	assert.Equal(t, "font-size", kebabCase("fontSize"))
	assert.Equal(t, "line-height", kebabCase("lineHeight"))
	assert.Equal(t, "color", kebabCase("color"))
	assert.Equal(t, "text-underline-offset", kebabCase("textUnderlineOffset"))
}
