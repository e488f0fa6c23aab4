package runtime

// Array is the ordered-sequence payload: a double-ended queue of Values
// with indexed random access and amortized O(1) pushes at both ends.
//
// Elements are stored in two slices: front holds prepended elements in
// reverse order, back holds appended elements in order. Logical index i
// maps to front[len(front)-1-i] when i < len(front), otherwise to
// back[i-len(front)].
//
// An Array takes ownership of one reference to every inserted Value and
// releases the elements when the owning cell is freed. Not synchronized.
type Array struct {
	front []Value
	back  []Value
}

// NewArray creates an array owning the given elements, in order.
func NewArray(elems ...Value) *Array {
	a := &Array{}
	a.back = append(a.back, elems...)
	return a
}

// Len returns the element count.
func (a *Array) Len() int {
	return len(a.front) + len(a.back)
}

// slot returns the storage for logical index i with no bounds validation.
func (a *Array) slot(i int) *Value {
	if i < len(a.front) {
		return &a.front[len(a.front)-1-i]
	}
	return &a.back[i-len(a.front)]
}

func (a *Array) check(op string, i int) {
	if checksEnabled.Load() && (i < 0 || i >= a.Len()) {
		fail(op, "index %d out of range [0,%d)", i, a.Len())
	}
}

// At returns the element at position i. Bounds are validated only in
// checked mode; in unchecked mode a violation is whatever the underlying
// slice access does. The result is borrowed: Retain it to keep it past
// the array's lifetime.
func (a *Array) At(i int) Value {
	a.check("Array.At", i)
	return *a.slot(i)
}

// Ref returns a writable reference to the element at position i. The
// pointer is invalidated by later pushes.
func (a *Array) Ref(i int) *Value {
	a.check("Array.Ref", i)
	return a.slot(i)
}

// Set replaces the element at position i, releasing the previous element
// and taking ownership of v.
func (a *Array) Set(i int, v Value) {
	a.check("Array.Set", i)
	s := a.slot(i)
	s.Release()
	*s = v
}

// PushBack appends v, taking ownership of one reference.
func (a *Array) PushBack(v Value) {
	a.back = append(a.back, v)
}

// PushFront prepends v, taking ownership of one reference.
func (a *Array) PushFront(v Value) {
	a.front = append(a.front, v)
}
