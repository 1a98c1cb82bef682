// Copyright 2025 Certen Protocol

package domain

import (
	"testing"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
)

func testNullifier(v uint64) model.Nullifier {
	return model.Nullifier(field.WordFromUint64s(v, 0, 0, 0))
}

func TestNullifierTreeMarkSpent(t *testing.T) {
	n := testNullifier(42)
	idx := nullifierIndex(n)
	leaves := map[uint64]field.Word{idx: field.EmptyWord}
	path := witnessPathFor(t, NullifierTreeDepth, leaves, idx)

	tree, err := NewNullifierTreeFromWitnesses([]model.NullifierWitness{
		{Nullifier: n, Value: field.EmptyWord, MerklePath: path},
	})
	if err != nil {
		t.Fatalf("NewNullifierTreeFromWitnesses: %v", err)
	}

	prev, err := tree.MarkSpent(n, 100)
	if err != nil {
		t.Fatalf("MarkSpent: %v", err)
	}
	if !prev.IsEmpty() {
		t.Fatalf("previous value = %v, want empty (unspent)", prev)
	}
}

func TestNullifierWitnessDetectsDoubleSpend(t *testing.T) {
	w := model.NullifierWitness{
		Nullifier: testNullifier(1),
		Value:     model.NullifierSpentValue(5),
	}
	if !w.IsSpent() {
		t.Fatalf("IsSpent() = false for a non-empty witness value")
	}
	if w.SpentAtBlock() != 5 {
		t.Fatalf("SpentAtBlock() = %d, want 5", w.SpentAtBlock())
	}
}
