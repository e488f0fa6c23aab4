package runtime

import "testing"

func TestArrayPushBothEnds(t *testing.T) {
	a := NewArray(FromInt(2))
	a.PushFront(FromInt(1))
	a.PushBack(FromInt(3))
	a.PushFront(FromInt(0))

	want := []int32{0, 1, 2, 3}
	if a.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", a.Len(), len(want))
	}
	for i, n := range want {
		if got := a.At(i).Int(); got != n {
			t.Errorf("At(%d) = %d, want %d", i, got, n)
		}
	}
}

func TestArraySetReleasesPrevious(t *testing.T) {
	disposed := 0
	a := NewArray(Box(&disposeCounter{n: &disposed}))

	a.Set(0, FromInt(1))
	if disposed != 1 {
		t.Errorf("previous element disposed %d times, want 1", disposed)
	}
	if got := a.At(0).Int(); got != 1 {
		t.Errorf("At(0) = %d, want 1", got)
	}
}

func TestArrayRefWritesInPlace(t *testing.T) {
	a := NewArray(FromInt(1), FromInt(2))
	*a.Ref(1) = FromInt(20)
	if got := a.At(1).Int(); got != 20 {
		t.Errorf("At(1) = %d, want 20", got)
	}
}

func TestArrayBoundsChecked(t *testing.T) {
	withChecks(t, true)
	a := NewArray(FromInt(1))
	mustFault(t, func() { a.At(1) })
	mustFault(t, func() { a.At(-1) })
	mustFault(t, func() { a.Ref(1) })
	mustFault(t, func() { a.Set(1, FromInt(2)) })
}

func TestArrayInterleavedPushOrder(t *testing.T) {
	a := NewArray()
	for i := 0; i < 50; i++ {
		a.PushBack(FromInt(int32(i)))
		a.PushFront(FromInt(int32(-i - 1)))
	}
	if a.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", a.Len())
	}
	if got := a.At(0).Int(); got != -50 {
		t.Errorf("At(0) = %d, want -50", got)
	}
	if got := a.At(49).Int(); got != -1 {
		t.Errorf("At(49) = %d, want -1", got)
	}
	if got := a.At(99).Int(); got != 49 {
		t.Errorf("At(99) = %d, want 49", got)
	}
}

func BenchmarkArrayAt(b *testing.B) {
	a := NewArray()
	for i := 0; i < 64; i++ {
		a.PushBack(FromInt(int32(i)))
	}
	for i := 0; i < b.N; i++ {
		_ = a.At(i & 63)
	}
}
