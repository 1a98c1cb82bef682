// Copyright 2025 Certen Protocol

package field

import "testing"

func TestHashDeterministic(t *testing.T) {
	a := Hash(New(1), New(2), New(3))
	b := Hash(New(1), New(2), New(3))
	if !a.Equal(b) {
		t.Fatalf("Hash not deterministic: %v != %v", a, b)
	}
}

func TestHashDistinguishesInputs(t *testing.T) {
	a := Hash(New(1), New(2))
	b := Hash(New(2), New(1))
	if a.Equal(b) {
		t.Fatalf("Hash did not distinguish element order")
	}
}

func TestHashVariesWithLength(t *testing.T) {
	a := Hash(New(1), New(2))
	b := Hash(New(1), New(2), New(0))
	if a.Equal(b) {
		t.Fatalf("Hash collided across different-length inputs due to padding")
	}
}

func TestMerge2Deterministic(t *testing.T) {
	left := WordFromUint64s(1, 2, 3, 4)
	right := WordFromUint64s(5, 6, 7, 8)
	a := Merge2(left, right)
	b := Merge2(left, right)
	if !a.Equal(b) {
		t.Fatalf("Merge2 not deterministic")
	}
	if Merge2(right, left).Equal(a) {
		t.Fatalf("Merge2 not order-sensitive")
	}
}

func TestHashWordsMatchesFlattenedHash(t *testing.T) {
	w := WordFromUint64s(10, 20, 30, 40)
	got := HashWords(w)
	want := Hash(w[0], w[1], w[2], w[3])
	if !got.Equal(want) {
		t.Fatalf("HashWords != Hash of flattened elements")
	}
}
