package runtime

import (
	"math"
	"sync/atomic"
)

// Value represents a Lumen value: the result of every compiled expression.
//
// A Value is a handle on a shared, reference-counted cell holding exactly
// one payload kind, fixed at construction. Copying the handle in Go does
// not touch the count: generated code calls Retain for each new owner and
// Release when an owner is done. The zero Value is the undefined sentinel
// and owns nothing.
//
// Count updates are atomic and safe across goroutines. Mutation of a
// shared container's contents is not synchronized; a container must be
// treated as owned by a single logical thread unless the embedding
// program adds its own locking.
type Value struct {
	c *cell
}

// Kind identifies which payload a cell holds. A cell's kind never changes
// after construction; reassignment semantics go through ForwardRef.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindArray
	KindDict
	KindFn
	KindEffFn
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	case KindFn:
		return "fn"
	case KindEffFn:
		return "effect"
	case KindOpaque:
		return "opaque"
	default:
		return "invalid"
	}
}

// Fn is the unary function payload: the compiled form of a Lumen function
// of one argument.
type Fn func(Value) Value

// EffFn is the nullary effect-thunk payload: a deferred, possibly impure
// computation.
type EffFn func() Value

// Disposable payloads are notified when the last reference to their cell
// is released. Used by opaque foreign payloads that own external
// resources.
type Disposable interface {
	Dispose()
}

// cell is the shared box behind a Value. data is the erased payload; kind
// records which payload was chosen at construction.
type cell struct {
	refs atomic.Int32
	kind Kind
	data any
}

func newCell(k Kind, data any) Value {
	c := &cell{kind: k, data: data}
	c.refs.Store(1)
	return Value{c: c}
}

// free releases container elements and notifies Disposable payloads. Runs
// exactly once, when the count reaches zero. Reference cycles never reach
// zero and leak for the process lifetime; that is an accepted limitation.
func (c *cell) free() {
	switch c.kind {
	case KindArray:
		a := c.data.(*Array)
		for i := 0; i < a.Len(); i++ {
			a.slot(i).Release()
		}
	case KindDict:
		d := c.data.(*Dict)
		for i := range d.entries {
			d.entries[i].val.Release()
		}
	}
	if disp, ok := c.data.(Disposable); ok {
		disp.Dispose()
	}
	c.data = nil
}

// ---------------------------------------------------------------------------
// Reference counting
// ---------------------------------------------------------------------------

// Retain adds an owner and returns v. Retaining the undefined Value is a
// no-op.
func (v Value) Retain() Value {
	if v.c != nil {
		v.c.refs.Add(1)
	}
	return v
}

// Release drops an owner. When the last owner releases, the payload is
// freed: container elements are released recursively and Disposable
// payloads are notified. Releasing the undefined Value is a no-op.
func (v Value) Release() {
	if v.c == nil {
		return
	}
	n := v.c.refs.Add(-1)
	if n == 0 {
		v.c.free()
	} else if n < 0 && checksEnabled.Load() {
		fail("Value.Release", "over-released %s value", v.c.kind)
	}
}

// Refs returns the current reference count. Diagnostic only; the count
// can change concurrently.
func (v Value) Refs() int32 {
	if v.c == nil {
		return 0
	}
	return v.c.refs.Load()
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// Undefined returns the empty Value: no payload, valid and distinguishable
// from every constructed value.
func Undefined() Value {
	return Value{}
}

// FromInt creates an int Value.
func FromInt(n int32) Value {
	return newCell(KindInt, n)
}

// FromInt64 narrows n to the runtime's 32-bit signed representation. In
// checked mode an out-of-range n faults; in unchecked mode it truncates
// deterministically (modulo 2^32, reinterpreted as signed).
func FromInt64(n int64) Value {
	if checksEnabled.Load() && (n < math.MinInt32 || n > math.MaxInt32) {
		fail("FromInt64", "integer out of range: %d", n)
	}
	return newCell(KindInt, int32(n))
}

// FromUint64 narrows n like FromInt64 does.
func FromUint64(n uint64) Value {
	if checksEnabled.Load() && n > math.MaxInt32 {
		fail("FromUint64", "integer out of range: %d", n)
	}
	return newCell(KindInt, int32(uint32(n)))
}

// TryFromInt64 creates an int Value, returning false if n does not fit the
// 32-bit representation. Never faults, regardless of policy.
func TryFromInt64(n int64) (Value, bool) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return Value{}, false
	}
	return newCell(KindInt, int32(n)), true
}

// FromFloat64 creates a float Value.
func FromFloat64(f float64) Value {
	return newCell(KindFloat, f)
}

// FromBool creates a bool Value.
func FromBool(b bool) Value {
	return newCell(KindBool, b)
}

// FromString creates a string Value. Strings are immutable by convention.
func FromString(s string) Value {
	return newCell(KindString, s)
}

// FromArray creates an array Value owning a. The array takes no copy;
// callers hand over the elements' references along with it.
func FromArray(a *Array) Value {
	return newCell(KindArray, a)
}

// FromDict creates a dict Value owning d.
func FromDict(d *Dict) Value {
	return newCell(KindDict, d)
}

// FromFn wraps a unary function as a Value. FromFn and FromEffFn are two
// distinct named constructors; the caller states the arity rather than
// relying on signature matching.
func FromFn(f Fn) Value {
	return newCell(KindFn, f)
}

// FromEffFn wraps a nullary effect thunk as a Value.
func FromEffFn(f EffFn) Value {
	return newCell(KindEffFn, f)
}

// ---------------------------------------------------------------------------
// Kind inspection
// ---------------------------------------------------------------------------

// Kind returns the payload kind v holds.
func (v Value) Kind() Kind {
	if v.c == nil {
		return KindUndefined
	}
	return v.c.kind
}

// IsUndefined returns true if v is the empty sentinel.
func (v Value) IsUndefined() bool {
	return v.c == nil
}

// IsInt returns true if v holds an int payload.
func (v Value) IsInt() bool { return v.Kind() == KindInt }

// IsFloat returns true if v holds a float payload.
func (v Value) IsFloat() bool { return v.Kind() == KindFloat }

// IsBool returns true if v holds a bool payload.
func (v Value) IsBool() bool { return v.Kind() == KindBool }

// IsString returns true if v holds a string payload.
func (v Value) IsString() bool { return v.Kind() == KindString }

// IsArray returns true if v holds an array payload.
func (v Value) IsArray() bool { return v.Kind() == KindArray }

// IsDict returns true if v holds a dict payload.
func (v Value) IsDict() bool { return v.Kind() == KindDict }

// IsFn returns true if v holds a unary function payload.
func (v Value) IsFn() bool { return v.Kind() == KindFn }

// IsEffFn returns true if v holds an effect-thunk payload.
func (v Value) IsEffFn() bool { return v.Kind() == KindEffFn }

// ---------------------------------------------------------------------------
// Payload access
// ---------------------------------------------------------------------------

func (v Value) payload() any {
	if v.c == nil {
		return nil
	}
	return v.c.data
}

// Int returns the int payload. In checked mode a non-int Value faults; in
// unchecked mode the caller's contract is trusted.
func (v Value) Int() int32 {
	if checksEnabled.Load() && v.Kind() != KindInt {
		fail("Value.Int", "not an int (%s)", v.Kind())
	}
	return v.c.data.(int32)
}

// Float64 returns the float payload.
func (v Value) Float64() float64 {
	if checksEnabled.Load() && v.Kind() != KindFloat {
		fail("Value.Float64", "not a float (%s)", v.Kind())
	}
	return v.c.data.(float64)
}

// Bool returns the bool payload.
func (v Value) Bool() bool {
	if checksEnabled.Load() && v.Kind() != KindBool {
		fail("Value.Bool", "not a bool (%s)", v.Kind())
	}
	return v.c.data.(bool)
}

// Str returns the string payload. Named Str rather than String so that a
// mismatched fmt.Stringer call cannot fault.
func (v Value) Str() string {
	if checksEnabled.Load() && v.Kind() != KindString {
		fail("Value.Str", "not a string (%s)", v.Kind())
	}
	return v.c.data.(string)
}

// Array returns the array payload.
func (v Value) Array() *Array {
	a, ok := v.payload().(*Array)
	if !ok {
		fail("Value.Array", "not an array (%s)", v.Kind())
	}
	return a
}

// Dict returns the dict payload.
func (v Value) Dict() *Dict {
	d, ok := v.payload().(*Dict)
	if !ok {
		fail("Value.Dict", "not a dict (%s)", v.Kind())
	}
	return d
}

// Fn returns the unary function payload.
func (v Value) Fn() Fn {
	f, ok := v.payload().(Fn)
	if !ok {
		fail("Value.Fn", "not a unary function (%s)", v.Kind())
	}
	return f
}

// EffFn returns the effect-thunk payload.
func (v Value) EffFn() EffFn {
	f, ok := v.payload().(EffFn)
	if !ok {
		fail("Value.EffFn", "not an effect thunk (%s)", v.Kind())
	}
	return f
}

// ---------------------------------------------------------------------------
// Invocation
// ---------------------------------------------------------------------------

// Call invokes the unary function payload with arg. Calling a value that
// does not hold a unary function is a contract violation owed by the
// compiler; it faults in both policy modes.
func (v Value) Call(arg Value) Value {
	return v.Fn()(arg)
}

// Run invokes the effect-thunk payload.
func (v Value) Run() Value {
	return v.EffFn()()
}

// ---------------------------------------------------------------------------
// Indexing
// ---------------------------------------------------------------------------

// Key returns the value stored under key in the dict payload. The key must
// exist: checked mode faults on a missing key, unchecked mode returns the
// undefined Value. The result is borrowed; Retain it to keep it.
func (v Value) Key(key string) Value {
	return v.Dict().Get(key)
}

// KeyRef returns a writable reference to the entry under key in the dict
// payload, inserting an empty entry when absent.
func (v Value) KeyRef(key string) *Value {
	return v.Dict().Ref(key)
}

// At returns the element at position i in the array payload. Bounds are
// validated only in checked mode. The result is borrowed.
func (v Value) At(i int) Value {
	return v.Array().At(i)
}

// AtRef returns a writable reference to the element at position i in the
// array payload.
func (v Value) AtRef(i int) *Value {
	return v.Array().Ref(i)
}
