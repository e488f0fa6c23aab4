package runtime

import "math"

// Box wraps a native payload in a new Value. It is the universal
// construction path for payloads the typed constructors do not cover:
// known payload types get the matching kind, anything else is stored as
// an opaque foreign payload, retrievable only through Unbox.
func Box(payload any) Value {
	switch p := payload.(type) {
	case nil:
		return Value{}
	case int32:
		return FromInt(p)
	case int:
		return FromInt64(int64(p))
	case int64:
		return FromInt64(p)
	case uint64:
		return FromUint64(p)
	case float64:
		return FromFloat64(p)
	case bool:
		return FromBool(p)
	case string:
		return FromString(p)
	case *Array:
		return FromArray(p)
	case *Dict:
		return FromDict(p)
	case Fn:
		return FromFn(p)
	case func(Value) Value:
		return FromFn(p)
	case EffFn:
		return FromEffFn(p)
	case func() Value:
		return FromEffFn(p)
	default:
		return newCell(KindOpaque, p)
	}
}

// Unbox reinterprets a Value's erased storage as T. Correctness is the
// caller's (the compiler's) responsibility: in checked mode a mismatched
// reinterpretation faults, in unchecked mode it is asserted directly.
//
// Applied to an already-native T, Unbox is the identity, so generated
// code can be agnostic about whether a value has been unwrapped.
func Unbox[T any](b any) T {
	if v, ok := b.(Value); ok {
		if checksEnabled.Load() {
			p, ok := v.payload().(T)
			if !ok {
				fail("Unbox", "payload is %s, not %T", v.Kind(), p)
			}
			return p
		}
		return v.payload().(T)
	}
	if checksEnabled.Load() {
		p, ok := b.(T)
		if !ok {
			fail("Unbox", "native %T is not %T", b, p)
		}
		return p
	}
	return b.(T)
}

// ArrayLength returns the element count of a sequence Value, narrowed to
// the runtime's signed integer representation. Checked mode faults when
// the count does not fit; unchecked mode truncates like FromInt64.
func ArrayLength(v Value) int32 {
	return narrowLength(int64(Unbox[*Array](v).Len()))
}

func narrowLength(n int64) int32 {
	if checksEnabled.Load() && n > math.MaxInt32 {
		fail("ArrayLength", "length out of range: %d", n)
	}
	return int32(n)
}
