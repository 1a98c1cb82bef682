// Copyright 2025 Certen Protocol

package field

import "testing"

func TestAddSubRoundTrip(t *testing.T) {
	a := New(12345)
	b := New(67890)
	sum := a.Add(b)
	if got := sum.Sub(b); !got.Equal(a) {
		t.Fatalf("(a+b)-b = %v, want %v", got, a)
	}
}

func TestAddWraps(t *testing.T) {
	a := New(Modulus - 1)
	b := New(2)
	got := a.Add(b)
	if !got.Equal(New(1)) {
		t.Fatalf("Add wraparound = %v, want 1", got)
	}
}

func TestMulByZeroAndOne(t *testing.T) {
	a := New(424242)
	if !a.Mul(Zero).Equal(Zero) {
		t.Fatalf("a*0 != 0")
	}
	if !a.Mul(One).Equal(a) {
		t.Fatalf("a*1 != a")
	}
}

func TestMulNearModulus(t *testing.T) {
	a := New(Modulus - 1) // -1
	b := New(Modulus - 1) // -1
	got := a.Mul(b)       // (-1)*(-1) = 1
	if !got.Equal(One) {
		t.Fatalf("(-1)*(-1) = %v, want 1", got)
	}
}

func TestSquareMatchesMul(t *testing.T) {
	a := New(98765)
	if !a.Square().Equal(a.Mul(a)) {
		t.Fatalf("Square() != Mul(a,a)")
	}
}

func TestExpZeroIsOne(t *testing.T) {
	a := New(555)
	if !a.Exp(0).Equal(One) {
		t.Fatalf("a^0 != 1")
	}
}

func TestInverse(t *testing.T) {
	a := New(13579)
	inv := a.Inverse()
	if !a.Mul(inv).Equal(One) {
		t.Fatalf("a * a^-1 != 1")
	}
}

func TestInverseZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Inverse() of zero did not panic")
		}
	}()
	Zero.Inverse()
}

func TestBytesRoundTrip(t *testing.T) {
	a := New(0xDEADBEEF)
	b := a.Bytes()
	got, err := SetBytes(b[:])
	if err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	if !got.Equal(a) {
		t.Fatalf("round trip = %v, want %v", got, a)
	}
}

func TestSetBytesRejectsNonCanonical(t *testing.T) {
	var b [8]byte
	for i := range b {
		b[i] = 0xFF
	}
	if _, err := SetBytes(b[:]); err != ErrNotCanonical {
		t.Fatalf("SetBytes(max bytes) err = %v, want ErrNotCanonical", err)
	}
}

func TestSetBytesRejectsWrongLength(t *testing.T) {
	if _, err := SetBytes([]byte{1, 2, 3}); err == nil {
		t.Fatalf("SetBytes(3 bytes) did not error")
	}
}

func TestNewReducesOverflow(t *testing.T) {
	got := New(Modulus)
	if !got.Equal(Zero) {
		t.Fatalf("New(Modulus) = %v, want 0", got)
	}
}
