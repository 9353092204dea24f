package mdimport

import "github.com/rgonek/richtext-styles/model"

type markStack struct {
	items []model.Mark
}

func (s *markStack) push(mark model.Mark) {
	s.items = append(s.items, model.Mark{Type: mark.Type, Attrs: mark.Attrs.Clone()})
}

func (s *markStack) popByType(markType string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Type != markType {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}

	return false
}

func (s *markStack) current() []model.Mark {
	if len(s.items) == 0 {
		return nil
	}

	marks := make([]model.Mark, 0, len(s.items))
	for _, mark := range s.items {
		marks = append(marks, model.Mark{Type: mark.Type, Attrs: mark.Attrs.Clone()})
	}

	return marks
}
