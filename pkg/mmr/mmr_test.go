// Copyright 2025 Certen Protocol

package mmr

import (
	"testing"

	"github.com/certen/zk-block-prover/pkg/field"
)

func leafN(n uint64) field.Word {
	return field.WordFromUint64s(n, 0, 0, 0)
}

func TestChainLength(t *testing.T) {
	m := New()
	for i := uint64(0); i < 5; i++ {
		m.Add(leafN(i))
	}
	if m.ChainLength() != 5 {
		t.Fatalf("ChainLength() = %d, want 5", m.ChainLength())
	}
}

func TestRootChangesOnAppend(t *testing.T) {
	m := New()
	m.Add(leafN(1))
	r1 := m.Root()
	m.Add(leafN(2))
	r2 := m.Root()
	if r1.Equal(r2) {
		t.Fatalf("root did not change after append")
	}
}

func TestOpenProofVerifies(t *testing.T) {
	m := New()
	for i := uint64(0); i < 7; i++ {
		m.Add(leafN(i))
	}
	proof, err := m.OpenProof(3)
	if err != nil {
		t.Fatalf("OpenProof: %v", err)
	}
	p := NewPartial()
	for i := uint64(0); i < 7; i++ {
		p.Add(leafN(i), i == 3)
	}
	if !p.Verify(m.Root(), leafN(3), proof) {
		t.Fatalf("Verify() = false for a valid proof")
	}
}

func TestPartialMmrUntrack(t *testing.T) {
	p := NewPartial()
	idx := p.Add(leafN(42), true)
	if !p.IsTracked(idx) {
		t.Fatalf("leaf not tracked after Add(track=true)")
	}
	p.Untrack(idx)
	if p.IsTracked(idx) {
		t.Fatalf("leaf still tracked after Untrack")
	}
	if _, err := p.Proof(idx); err != ErrLeafNotTracked {
		t.Fatalf("Proof() after untrack err = %v, want ErrLeafNotTracked", err)
	}
}

func TestProofOnUntrackedLeafFails(t *testing.T) {
	p := NewPartial()
	p.Add(leafN(1), false)
	if _, err := p.Proof(0); err != ErrLeafNotTracked {
		t.Fatalf("Proof() on untracked leaf err = %v, want ErrLeafNotTracked", err)
	}
}
