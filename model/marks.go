package model

// MarkOfType returns the first mark of the given type in the set.
func MarkOfType(marks []Mark, markType string) (Mark, bool) {
	for _, mark := range marks {
		if mark.Type == markType {
			return mark, true
		}
	}
	return Mark{}, false
}

// AddToSet returns a new set containing mark. A mark of the same type is
// replaced in place, otherwise mark is appended.
func AddToSet(marks []Mark, mark Mark) []Mark {
	result := make([]Mark, 0, len(marks)+1)
	replaced := false
	for _, existing := range marks {
		if existing.Type == mark.Type {
			if !replaced {
				result = append(result, mark)
				replaced = true
			}
			continue
		}
		result = append(result, existing)
	}
	if !replaced {
		result = append(result, mark)
	}
	return result
}

// RemoveFromSet returns a new set without marks of the given type.
func RemoveFromSet(marks []Mark, markType string) []Mark {
	var result []Mark
	for _, existing := range marks {
		if existing.Type != markType {
			result = append(result, existing)
		}
	}
	return result
}

// SameMarkSet reports whether both sets hold equal marks in the same order.
func SameMarkSet(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// IsEmptyValue reports whether an attribute value carries no styling.
func IsEmptyValue(value interface{}) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case bool:
		return !typed
	default:
		return false
	}
}

// HasMeaningfulAttrs reports whether any attribute value is non-empty.
func HasMeaningfulAttrs(attrs Attrs) bool {
	for _, value := range attrs {
		if !IsEmptyValue(value) {
			return true
		}
	}
	return false
}
