package editor

import (
	"errors"
	"fmt"

	"github.com/rgonek/richtext-styles/model"
)

// ErrAlreadyDispatched is returned when a transaction is committed twice.
var ErrAlreadyDispatched = errors.New("transaction already dispatched")

// Step is one position-addressed edit. Steps in this package never change the
// size of a node, so positions taken from the document a transaction started
// from stay valid for every later step.
type Step interface {
	Apply(doc model.Doc) (model.Doc, error)
}

// SetNodeMarkupStep replaces the type and attributes of the node at Pos.
type SetNodeMarkupStep struct {
	Pos   int
	Type  string
	Attrs model.Attrs
}

func (s SetNodeMarkupStep) Apply(doc model.Doc) (model.Doc, error) {
	updated, err := doc.UpdateNodeAt(s.Pos, func(node model.Node) model.Node {
		if s.Type != "" {
			node.Type = s.Type
		}
		node.Attrs = s.Attrs.Clone()
		return node
	})
	if err != nil {
		return model.Doc{}, fmt.Errorf("set node markup: %w", err)
	}
	return updated, nil
}

// AddMarkStep adds Mark to all text in [From, To), replacing marks of the same type.
type AddMarkStep struct {
	From int
	To   int
	Mark model.Mark
}

func (s AddMarkStep) Apply(doc model.Doc) (model.Doc, error) {
	if err := (Selection{From: s.From, To: s.To}).validate(doc); err != nil {
		return model.Doc{}, fmt.Errorf("add mark %q: %w", s.Mark.Type, err)
	}
	return doc.MapTextMarks(s.From, s.To, func(marks []model.Mark) []model.Mark {
		return model.AddToSet(marks, s.Mark)
	}), nil
}

// RemoveMarkStep removes marks of MarkType from all text in [From, To).
type RemoveMarkStep struct {
	From     int
	To       int
	MarkType string
}

func (s RemoveMarkStep) Apply(doc model.Doc) (model.Doc, error) {
	if err := (Selection{From: s.From, To: s.To}).validate(doc); err != nil {
		return model.Doc{}, fmt.Errorf("remove mark %q: %w", s.MarkType, err)
	}
	return doc.MapTextMarks(s.From, s.To, func(marks []model.Mark) []model.Mark {
		return model.RemoveFromSet(marks, s.MarkType)
	}), nil
}

// Transaction accumulates steps against the document it was created from.
// Steps are only applied when the document is requested or the transaction is
// committed, so a rejected transaction leaves nothing behind.
type Transaction struct {
	before         model.Doc
	steps          []Step
	selection      Selection
	storedMarks    []model.Mark
	storedMarksSet bool
	dispatched     bool

	cached    *model.Doc
	cachedErr error
}

func newTransaction(state State) *Transaction {
	return &Transaction{
		before:      state.Doc,
		selection:   state.Selection,
		storedMarks: state.StoredMarks,
	}
}

// Before returns the document the transaction started from.
func (tr *Transaction) Before() model.Doc {
	return tr.before
}

// Steps returns the accumulated steps in the order they were added.
func (tr *Transaction) Steps() []Step {
	return append([]Step(nil), tr.steps...)
}

// DocChanged reports whether the transaction holds any step.
func (tr *Transaction) DocChanged() bool {
	return len(tr.steps) > 0
}

// Selection returns the selection the transaction will leave behind.
func (tr *Transaction) Selection() Selection {
	return tr.selection
}

// Dispatched reports whether the transaction has been committed.
func (tr *Transaction) Dispatched() bool {
	return tr.dispatched
}

// SetSelection sets the selection to restore once the transaction is applied.
func (tr *Transaction) SetSelection(selection Selection) *Transaction {
	tr.selection = selection
	return tr
}

// SetNodeMarkup replaces the attributes (and, if nodeType is not empty, the
// type) of the node starting at pos.
func (tr *Transaction) SetNodeMarkup(pos int, nodeType string, attrs model.Attrs) *Transaction {
	return tr.addStep(SetNodeMarkupStep{Pos: pos, Type: nodeType, Attrs: attrs.Clone()})
}

// AddMark adds mark to the text in [from, to).
func (tr *Transaction) AddMark(from, to int, mark model.Mark) *Transaction {
	mark.Attrs = mark.Attrs.Clone()
	return tr.addStep(AddMarkStep{From: from, To: to, Mark: mark})
}

// RemoveMark removes marks of markType from the text in [from, to).
func (tr *Transaction) RemoveMark(from, to int, markType string) *Transaction {
	return tr.addStep(RemoveMarkStep{From: from, To: to, MarkType: markType})
}

// StoredMarks returns the stored marks the transaction will leave behind.
func (tr *Transaction) StoredMarks() []model.Mark {
	return tr.storedMarks
}

// SetStoredMarks replaces the marks applied to the next typed text.
func (tr *Transaction) SetStoredMarks(marks []model.Mark) *Transaction {
	tr.storedMarks = marks
	tr.storedMarksSet = true
	return tr
}

// AddStoredMark adds mark to the stored marks, starting from marks when no
// stored marks are set yet.
func (tr *Transaction) AddStoredMark(mark model.Mark, current []model.Mark) *Transaction {
	base := tr.storedMarks
	if base == nil {
		base = current
	}
	return tr.SetStoredMarks(model.AddToSet(base, mark))
}

// RemoveStoredMark drops marks of markType from the stored marks.
func (tr *Transaction) RemoveStoredMark(markType string, current []model.Mark) *Transaction {
	base := tr.storedMarks
	if base == nil {
		base = current
	}
	marks := model.RemoveFromSet(base, markType)
	if marks == nil {
		marks = []model.Mark{}
	}
	return tr.SetStoredMarks(marks)
}

func (tr *Transaction) addStep(step Step) *Transaction {
	tr.steps = append(tr.steps, step)
	tr.cached = nil
	tr.cachedErr = nil
	return tr
}

// Doc applies the accumulated steps to the starting document and returns the
// result. The receiver's starting document is never modified.
func (tr *Transaction) Doc() (model.Doc, error) {
	if tr.cached != nil || tr.cachedErr != nil {
		if tr.cachedErr != nil {
			return model.Doc{}, tr.cachedErr
		}
		return *tr.cached, nil
	}

	doc := tr.before
	for i, step := range tr.steps {
		next, err := step.Apply(doc)
		if err != nil {
			tr.cachedErr = fmt.Errorf("step %d: %w", i, err)
			return model.Doc{}, tr.cachedErr
		}
		doc = next
	}
	tr.cached = &doc
	return doc, nil
}
