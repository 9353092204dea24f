package editor

import "github.com/rgonek/richtext-styles/model"

// SetMark applies a mark of markType with attrs merged over the attributes of
// any existing mark of that type. On a collapsed selection the mark is added
// to the stored marks so it applies to text typed next.
func SetMark(markType string, attrs map[string]interface{}) Command {
	return func(p CommandProps) bool {
		if p.Schema == nil || !p.Schema.HasMark(markType) {
			return false
		}
		doc, err := p.Tr.Doc()
		if err != nil {
			return false
		}

		sel := p.Tr.Selection()
		if sel.Empty() {
			current := activeMarks(p.Tr, doc)
			var base model.Attrs
			if existing, ok := model.MarkOfType(current, markType); ok {
				base = existing.Attrs
			}
			mark, err := p.Schema.CreateMark(markType, mergeAttrs(base, attrs))
			if err != nil {
				return false
			}
			p.Tr.AddStoredMark(mark, current)
			return true
		}

		applied := true
		doc.NodesBetween(sel.From, sel.To, func(node model.Node, pos int, _ *model.Node, _ int) bool {
			if !node.IsText() {
				return true
			}

			var base model.Attrs
			if existing, ok := model.MarkOfType(node.Marks, markType); ok {
				base = existing.Attrs
			}
			mark, err := p.Schema.CreateMark(markType, mergeAttrs(base, attrs))
			if err != nil {
				applied = false
				return false
			}
			p.Tr.AddMark(max(pos, sel.From), min(pos+node.NodeSize(), sel.To), mark)
			return true
		})
		return applied
	}
}

// RemoveEmptyMark removes marks of markType whose attributes are all empty
// from the selection, or from the stored marks on a collapsed selection.
func RemoveEmptyMark(markType string) Command {
	return func(p CommandProps) bool {
		doc, err := p.Tr.Doc()
		if err != nil {
			return false
		}

		sel := p.Tr.Selection()
		if sel.Empty() {
			current := activeMarks(p.Tr, doc)
			if mark, ok := model.MarkOfType(current, markType); ok && !model.HasMeaningfulAttrs(mark.Attrs) {
				p.Tr.RemoveStoredMark(markType, current)
			}
			return true
		}

		doc.NodesBetween(sel.From, sel.To, func(node model.Node, pos int, _ *model.Node, _ int) bool {
			if !node.IsText() {
				return true
			}
			if mark, ok := model.MarkOfType(node.Marks, markType); ok && !model.HasMeaningfulAttrs(mark.Attrs) {
				p.Tr.RemoveMark(max(pos, sel.From), min(pos+node.NodeSize(), sel.To), markType)
			}
			return true
		})
		return true
	}
}

func activeMarks(tr *Transaction, doc model.Doc) []model.Mark {
	if marks := tr.StoredMarks(); marks != nil {
		return marks
	}
	return doc.MarksAt(tr.Selection().From)
}

func mergeAttrs(base model.Attrs, attrs map[string]interface{}) model.Attrs {
	merged := base.Clone()
	if merged == nil {
		merged = make(model.Attrs, len(attrs))
	}
	for key, value := range attrs {
		merged[key] = value
	}
	return merged
}
