package runtime

// ForwardRef is the indirection cell for recursive bindings. It lets a
// binding be referenced (captured by closures, stored in structures)
// before its defining expression has been evaluated: the ref is created
// holding the undefined Value, shared wherever the binding is used, and
// assigned exactly once when the real value is computed. Every holder
// then observes the assigned value.
//
// Reading or invoking a ForwardRef before assignment is a contract
// violation, identical to using the undefined Value.
type ForwardRef struct {
	slot *Value
}

// NewForwardRef creates a forward reference holding the undefined Value.
func NewForwardRef() *ForwardRef {
	return &ForwardRef{slot: new(Value)}
}

// Deref returns the current contents of the slot. The result is borrowed;
// Retain it to keep it.
func (r *ForwardRef) Deref() Value {
	return *r.slot
}

// Call invokes the contained value as a unary function. Recursive
// closures call themselves through this before the assignment that closes
// the cycle has happened to execute them.
func (r *ForwardRef) Call(arg Value) Value {
	return r.slot.Call(arg)
}

// Run invokes the contained value as an effect thunk.
func (r *ForwardRef) Run() Value {
	return r.slot.Run()
}

// Set replaces the slot contents, releasing the previous value and taking
// ownership of v. The identity of the ForwardRef is unchanged: existing
// holders observe v on their next read.
func (r *ForwardRef) Set(v Value) {
	r.slot.Release()
	*r.slot = v
}
