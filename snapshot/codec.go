// Package snapshot serializes data-only value trees and persists them for
// debugging and golden tests of generated programs.
package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/lumen-lang/lumen/runtime"
)

// cborEncMode uses canonical mode for deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// wireValue is the CBOR shape of one node in a value tree. Dict entries
// are parallel Keys/Vals slices so insertion order survives the round
// trip.
type wireValue struct {
	Kind uint8 `cbor:"k"`
	Int  int32 `cbor:"i,omitempty"`
	// Float is never omitted: omitempty would drop -0.0 (it compares
	// equal to zero) and lose the sign bit on the round trip.
	Float float64      `cbor:"f"`
	Bool  bool         `cbor:"b,omitempty"`
	Str   string       `cbor:"s,omitempty"`
	Elems []*wireValue `cbor:"e,omitempty"`
	Keys  []string     `cbor:"n,omitempty"`
	Vals  []*wireValue `cbor:"v,omitempty"`
}

// Marshal encodes a data-only value tree to canonical CBOR bytes.
// Function, effect-thunk, and opaque payloads have no wire form and
// return an error.
func Marshal(v runtime.Value) ([]byte, error) {
	w, err := toWire(v)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(w)
}

// Unmarshal decodes CBOR bytes into a freshly owned value tree. The
// caller releases the result.
func Unmarshal(data []byte) (runtime.Value, error) {
	var w wireValue
	if err := cbor.Unmarshal(data, &w); err != nil {
		return runtime.Value{}, fmt.Errorf("snapshot: unmarshal value: %w", err)
	}
	return fromWire(&w)
}

func toWire(v runtime.Value) (*wireValue, error) {
	switch v.Kind() {
	case runtime.KindUndefined:
		return &wireValue{Kind: uint8(runtime.KindUndefined)}, nil
	case runtime.KindInt:
		return &wireValue{Kind: uint8(runtime.KindInt), Int: v.Int()}, nil
	case runtime.KindFloat:
		return &wireValue{Kind: uint8(runtime.KindFloat), Float: v.Float64()}, nil
	case runtime.KindBool:
		return &wireValue{Kind: uint8(runtime.KindBool), Bool: v.Bool()}, nil
	case runtime.KindString:
		return &wireValue{Kind: uint8(runtime.KindString), Str: v.Str()}, nil
	case runtime.KindArray:
		a := v.Array()
		w := &wireValue{Kind: uint8(runtime.KindArray)}
		for i := 0; i < a.Len(); i++ {
			elem, err := toWire(a.At(i))
			if err != nil {
				return nil, err
			}
			w.Elems = append(w.Elems, elem)
		}
		return w, nil
	case runtime.KindDict:
		d := v.Dict()
		w := &wireValue{Kind: uint8(runtime.KindDict)}
		for _, key := range d.Keys() {
			val, err := toWire(d.Get(key))
			if err != nil {
				return nil, err
			}
			w.Keys = append(w.Keys, key)
			w.Vals = append(w.Vals, val)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("snapshot: %s payload has no wire form", v.Kind())
	}
}

func fromWire(w *wireValue) (runtime.Value, error) {
	switch runtime.Kind(w.Kind) {
	case runtime.KindUndefined:
		return runtime.Undefined(), nil
	case runtime.KindInt:
		return runtime.FromInt(w.Int), nil
	case runtime.KindFloat:
		return runtime.FromFloat64(w.Float), nil
	case runtime.KindBool:
		return runtime.FromBool(w.Bool), nil
	case runtime.KindString:
		return runtime.FromString(w.Str), nil
	case runtime.KindArray:
		a := runtime.NewArray()
		for _, elem := range w.Elems {
			v, err := fromWire(elem)
			if err != nil {
				return runtime.Value{}, err
			}
			a.PushBack(v)
		}
		return runtime.FromArray(a), nil
	case runtime.KindDict:
		if len(w.Keys) != len(w.Vals) {
			return runtime.Value{}, fmt.Errorf("snapshot: dict has %d keys but %d values", len(w.Keys), len(w.Vals))
		}
		d := runtime.NewDict()
		for i, key := range w.Keys {
			if d.Has(key) {
				return runtime.Value{}, fmt.Errorf("snapshot: duplicate dict key %q", key)
			}
			v, err := fromWire(w.Vals[i])
			if err != nil {
				return runtime.Value{}, err
			}
			d.Set(key, v)
		}
		return runtime.FromDict(d), nil
	default:
		return runtime.Value{}, fmt.Errorf("snapshot: invalid wire kind %d", w.Kind)
	}
}
