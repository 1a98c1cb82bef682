// Copyright 2025 Certen Protocol

package domain

import (
	"testing"

	"github.com/certen/zk-block-prover/pkg/field"
)

func TestBlockNoteTreeEmptyBatchContributesEmptyRoot(t *testing.T) {
	tree := NewBlockNoteTree([][]field.Word{{}, {field.WordFromUint64s(1, 0, 0, 0)}})
	if !tree.BatchRoot(0).Equal(field.EmptyWord) {
		t.Fatalf("empty batch root = %v, want empty word", tree.BatchRoot(0))
	}
	if tree.BatchRoot(1).Equal(field.EmptyWord) {
		t.Fatalf("non-empty batch root should not equal the empty word")
	}
}

func TestBlockNoteTreeRootDeterministic(t *testing.T) {
	batches := [][]field.Word{
		{field.WordFromUint64s(1, 0, 0, 0), field.WordFromUint64s(2, 0, 0, 0)},
		{field.WordFromUint64s(3, 0, 0, 0)},
	}
	r1 := NewBlockNoteTree(batches).Root()
	r2 := NewBlockNoteTree(batches).Root()
	if !r1.Equal(r2) {
		t.Fatalf("BlockNoteTree root not deterministic")
	}
}

func TestBlockNoteTreeEmptyBlockRoot(t *testing.T) {
	tree := NewBlockNoteTree(nil)
	empty := NewBlockNoteTree(nil)
	if !tree.Root().Equal(empty.Root()) {
		t.Fatalf("two empty-block note trees produced different roots")
	}
}
