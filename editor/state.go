package editor

import (
	"fmt"

	"github.com/rgonek/richtext-styles/model"
)

// Selection is a half-open [From, To) range in the document's position space.
type Selection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Cursor returns a collapsed selection at pos.
func Cursor(pos int) Selection {
	return Selection{From: pos, To: pos}
}

// Empty reports whether the selection is collapsed.
func (s Selection) Empty() bool {
	return s.From == s.To
}

func (s Selection) validate(doc model.Doc) error {
	if s.From < 0 || s.To < s.From || s.To > doc.ContentSize() {
		return fmt.Errorf("%w: selection [%d, %d) outside document of size %d", model.ErrInvalidPosition, s.From, s.To, doc.ContentSize())
	}
	return nil
}

// State is an immutable snapshot of the editor: document, selection and the
// marks that will apply to text typed at a collapsed cursor.
type State struct {
	Doc         model.Doc
	Selection   Selection
	StoredMarks []model.Mark
}

// Apply returns the state produced by tr. Either every step applies or the
// state is left unchanged and an error is returned.
func (s State) Apply(tr *Transaction) (State, error) {
	doc, err := tr.Doc()
	if err != nil {
		return s, err
	}
	if err := tr.selection.validate(doc); err != nil {
		return s, err
	}

	next := State{
		Doc:       doc,
		Selection: tr.selection,
	}
	switch {
	case tr.storedMarksSet:
		next.StoredMarks = tr.storedMarks
	case len(tr.steps) == 0 && tr.selection == s.Selection:
		next.StoredMarks = s.StoredMarks
	}
	return next, nil
}

// ActiveMarks returns the marks at the selection head: stored marks when set,
// otherwise the marks of the text around a collapsed cursor.
func (s State) ActiveMarks() []model.Mark {
	if s.StoredMarks != nil {
		return s.StoredMarks
	}
	return s.Doc.MarksAt(s.Selection.From)
}
