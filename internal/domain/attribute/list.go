// Package attribute implements the ordered, duplicate-free per-patient lists
// (tasks, conditions, medications, remarks, tags) that nurse commands address
// by position.
package attribute

import (
	"fmt"
	"strings"
)

// Kind names the attribute a list holds. It selects user-facing wording for
// errors and listings.
type Kind string

const (
	KindTask       Kind = "task"
	KindCondition  Kind = "condition"
	KindMedication Kind = "medication"
	KindRemark     Kind = "remark"
	KindTag        Kind = "tag"
)

// Kinds lists every attribute kind in display order.
var Kinds = []Kind{KindTask, KindCondition, KindMedication, KindRemark, KindTag}

// Item is the capability an attribute value needs to live in a List:
// structural equality and a display form.
type Item[T any] interface {
	Equal(other T) bool
	String() string
}

// SameFunc reports whether two items count as duplicates of each other.
type SameFunc[T any] func(a, b T) bool

// List is an immutable ordered sequence of attribute items. Every mutating
// method returns a new List and leaves the receiver untouched, so values taken
// before a command runs stay valid for undo and result reporting.
type List[T Item[T]] struct {
	kind  Kind
	same  SameFunc[T]
	items []T
}

// NewList builds a list of the given kind. same decides duplicates; when nil,
// structural equality is used. Duplicate seed items are rejected.
func NewList[T Item[T]](kind Kind, same SameFunc[T], items ...T) (List[T], error) {
	l := List[T]{kind: kind, same: same}
	for _, item := range items {
		next, err := l.Add(item)
		if err != nil {
			return List[T]{}, err
		}
		l = next
	}
	return l, nil
}

// Kind returns the attribute kind of the list.
func (l List[T]) Kind() Kind {
	return l.kind
}

// Size returns the number of items.
func (l List[T]) Size() int {
	return len(l.items)
}

// IsEmpty reports whether the list has no items.
func (l List[T]) IsEmpty() bool {
	return len(l.items) == 0
}

// Items returns a copy of the items in order.
func (l List[T]) Items() []T {
	return append([]T(nil), l.items...)
}

// Get returns the item at index.
func (l List[T]) Get(index int) (T, error) {
	if err := l.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return l.items[index], nil
}

// Contains reports whether an item that is the same as item exists.
func (l List[T]) Contains(item T) bool {
	return l.indexOfSame(item, -1) >= 0
}

// Add returns a new list with item appended.
func (l List[T]) Add(item T) (List[T], error) {
	if l.Contains(item) {
		return l, &DuplicateItemError{Kind: l.kind}
	}
	items := make([]T, len(l.items), len(l.items)+1)
	copy(items, l.items)
	return l.with(append(items, item)), nil
}

// Edit returns a new list with the item at index replaced. Replacing an item
// with one the same as itself is allowed.
func (l List[T]) Edit(index int, item T) (List[T], error) {
	if err := l.checkIndex(index); err != nil {
		return l, err
	}
	if l.indexOfSame(item, index) >= 0 {
		return l, &DuplicateItemError{Kind: l.kind}
	}
	items := l.Items()
	items[index] = item
	return l.with(items), nil
}

// Delete returns a new list without the item at index. Later items shift down
// by one.
func (l List[T]) Delete(index int) (List[T], error) {
	if err := l.checkIndex(index); err != nil {
		return l, err
	}
	items := make([]T, 0, len(l.items)-1)
	items = append(items, l.items[:index]...)
	items = append(items, l.items[index+1:]...)
	return l.with(items), nil
}

// Equal reports whether both lists hold structurally equal items in the same
// order.
func (l List[T]) Equal(other List[T]) bool {
	if l.kind != other.kind || len(l.items) != len(other.items) {
		return false
	}
	for i := range l.items {
		if !l.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// String renders a 1-based numbered listing, one item per line.
func (l List[T]) String() string {
	var b strings.Builder
	for i, item := range l.items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item.String())
	}
	return b.String()
}

func (l List[T]) with(items []T) List[T] {
	return List[T]{kind: l.kind, same: l.same, items: items}
}

func (l List[T]) checkIndex(index int) error {
	if index < 0 || index >= len(l.items) {
		return &IndexOutOfRangeError{Kind: l.kind, Index: index, Size: len(l.items)}
	}
	return nil
}

// indexOfSame returns the position of an item the same as item, ignoring
// position skip, or -1.
func (l List[T]) indexOfSame(item T, skip int) int {
	for i, existing := range l.items {
		if i == skip {
			continue
		}
		if l.isSame(existing, item) {
			return i
		}
	}
	return -1
}

func (l List[T]) isSame(a, b T) bool {
	if l.same != nil {
		return l.same(a, b)
	}
	return a.Equal(b)
}
