package extensions

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rgonek/richtext-styles/editor"
	"github.com/rgonek/richtext-styles/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloWorld() model.Doc {
	return model.NewDoc(model.Node{
		Type:    "paragraph",
		Content: []model.Node{{Type: "text", Text: "hello world"}},
	})
}

func textStyle(attrs model.Attrs) []model.Mark {
	return []model.Mark{{Type: "textStyle", Attrs: attrs}}
}

func TestSetFontSizeSplitsText(t *testing.T) {
	ed := newStyleEditor(t, helloWorld(), editor.Selection{From: 1, To: 6})

	ok, err := ed.Exec("setFontSize", "20px")
	require.NoError(t, err)
	require.True(t, ok)

	want := []model.Node{
		{Type: "text", Text: "hello", Marks: textStyle(model.Attrs{"fontSize": "20px"})},
		{Type: "text", Text: " world"},
	}
	if diff := cmp.Diff(want, ed.State().Doc.Content[0].Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestSetFontSizeStoresValueVerbatim(t *testing.T) {
	for _, value := range []string{"20px", "1.25rem", "large", "calc(1em + 2px)"} {
		t.Run(value, func(t *testing.T) {
			ed := newStyleEditor(t, helloWorld(), editor.Selection{From: 1, To: 12})

			ok, err := ed.Exec("setFontSize", value)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, textStyle(model.Attrs{"fontSize": value}), ed.State().Doc.Content[0].Content[0].Marks)
		})
	}
}

func TestUnsetFontSizeRemovesEmptyMark(t *testing.T) {
	ed := newStyleEditor(t, helloWorld(), editor.Selection{From: 1, To: 6})

	ok, err := ed.Exec("setFontSize", "20px")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, ed.SetSelection(editor.Selection{From: 1, To: 12}))
	ok, err = ed.Exec("unsetFontSize")
	require.NoError(t, err)
	require.True(t, ok)

	want := []model.Node{{Type: "text", Text: "hello world"}}
	if diff := cmp.Diff(want, ed.State().Doc.Content[0].Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsetFontSizeIsIdempotent(t *testing.T) {
	ed := newStyleEditor(t, helloWorld(), editor.Selection{From: 1, To: 12})

	for i := 0; i < 2; i++ {
		ok, err := ed.Exec("unsetFontSize")
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, helloWorld().Content[0].Content, ed.State().Doc.Content[0].Content)
}

func TestUnsetFontSizeKeepsOtherStyleAttributes(t *testing.T) {
	fs, err := NewFontSize(FontSizeOptions{})
	require.NoError(t, err)
	family, err := NewMarkStyle(StyleOptions{Name: "fontFamily"})
	require.NoError(t, err)
	ed := newStyleEditor(t, helloWorld(), editor.Selection{From: 1, To: 12}, fs, family)

	ok, err := ed.Chain().
		Command(fs.SetFontSize("14px")).
		Command(family.Set("serif")).
		Run()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t,
		textStyle(model.Attrs{"fontSize": "14px", "fontFamily": "serif"}),
		ed.State().Doc.Content[0].Content[0].Marks,
	)

	ok, err = ed.Exec("unsetFontSize")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t,
		textStyle(model.Attrs{"fontSize": nil, "fontFamily": "serif"}),
		ed.State().Doc.Content[0].Content[0].Marks,
	)
}

func TestFontSizeOnCursorUsesStoredMarks(t *testing.T) {
	ed := newStyleEditor(t, helloWorld(), editor.Cursor(3))

	ok, err := ed.Exec("setFontSize", "32px")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, helloWorld().Content[0].Content, ed.State().Doc.Content[0].Content)
	assert.Equal(t, textStyle(model.Attrs{"fontSize": "32px"}), ed.State().StoredMarks)

	ok, err = ed.Exec("unsetFontSize")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, ed.State().StoredMarks)
	assert.Empty(t, ed.State().ActiveMarks())
}

func TestFontSizeProbeDoesNotMutate(t *testing.T) {
	ed := newStyleEditor(t, helloWorld(), editor.Selection{From: 1, To: 12})
	before := ed.State()

	ok, err := ed.CanExec("setFontSize", "20px")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, before, ed.State())
}

func TestFontSizeNoOps(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		ed := newStyleEditor(t, model.NewDoc(), editor.Cursor(0))

		ok, err := ed.Exec("unsetFontSize")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, ed.State().Doc.Content)
	})

	t.Run("selection without text", func(t *testing.T) {
		ed := newStyleEditor(t, mixedDoc(), editor.Selection{From: 8, To: 9})
		before := ed.State().Doc

		ok, err := ed.Exec("setFontSize", "20px")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, before, ed.State().Doc)
	})
}

func TestFontSizeRegistration(t *testing.T) {
	fs, err := NewFontSize(FontSizeOptions{})
	require.NoError(t, err)

	assert.Equal(t, "fontSize", fs.Name())
	assert.Equal(t, []string{"textStyle"}, fs.Types())

	globals := fs.GlobalAttributes()
	require.Len(t, globals, 1)
	spec, ok := globals[0].Attributes["fontSize"]
	require.True(t, ok)
	assert.Nil(t, spec.Default)
	assert.Equal(t, editor.HTMLAttributes{"style": "font-size: 20px"}, spec.RenderHTML("20px"))
}
