package attribute

import "fmt"

// IndexOutOfRangeError is returned when a position does not address an item.
type IndexOutOfRangeError struct {
	Kind  Kind
	Index int
	Size  int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.Kind, e.Index, e.Size)
}

// DuplicateItemError is returned when an add or edit would leave two items
// that are the same in one list. Its message is shown to the user as is.
type DuplicateItemError struct {
	Kind Kind
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("This %s already exists in the patient's %s list", e.Kind, e.Kind)
}

// Is matches any DuplicateItemError of the same kind, or of any kind when the
// target kind is empty.
func (e *DuplicateItemError) Is(target error) bool {
	t, ok := target.(*DuplicateItemError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}
