package wlsrest

import "iter"

// Items is a one-shot, forward-only sequence over the members of a
// collection. Iterate the resource again for a fresh sequence.
type Items struct {
	objects []*Object
	pos     int
}

func newItems(objects []*Object) *Items {
	return &Items{objects: objects}
}

// Next returns the next resource, or false when the sequence is exhausted.
func (it *Items) Next() (*Object, bool) {
	if it.pos >= len(it.objects) {
		return nil, false
	}
	obj := it.objects[it.pos]
	it.pos++
	return obj, true
}

// Len returns the total number of items, consumed or not.
func (it *Items) Len() int {
	return len(it.objects)
}

// All yields the remaining items, consuming them.
func (it *Items) All() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for {
			obj, ok := it.Next()
			if !ok || !yield(obj) {
				return
			}
		}
	}
}
