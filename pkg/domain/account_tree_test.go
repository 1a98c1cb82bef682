// Copyright 2025 Certen Protocol

package domain

import (
	"testing"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
	"github.com/certen/zk-block-prover/pkg/smt"
)

// emptySiblingRoot returns the root of an all-empty subtree of the
// given depth, recursively merging the empty word with itself.
func emptySiblingRoot(depth uint8) field.Word {
	root := field.EmptyWord
	for i := uint8(0); i < depth; i++ {
		root = field.Merge2(root, root)
	}
	return root
}

// witnessPathFor builds the authentication path for a single tracked
// leaf in a tree that is otherwise entirely empty: every sibling at
// every level is an empty subtree's root. This holds for every caller
// in this package's tests, each of which tracks at most one leaf index
// (fixed-depth trees like AccountTreeDepth/NullifierTreeDepth are far
// too wide to materialize leaf-by-leaf in a test).
func witnessPathFor(t *testing.T, depth uint8, leaves map[uint64]field.Word, index uint64) field.MerklePath {
	t.Helper()
	path := make(field.MerklePath, depth)
	for l := uint8(0); l < depth; l++ {
		path[l] = emptySiblingRoot(l)
	}
	return path
}

func testAccountId(t *testing.T, prefix uint64) model.AccountId {
	t.Helper()
	id, err := model.NewAccountId(prefix, uint64(1)<<40)
	if err != nil {
		t.Fatalf("NewAccountId: %v", err)
	}
	return id
}

func TestAccountTreeInsertAndRoot(t *testing.T) {
	prefix := uint64(7)
	id := testAccountId(t, prefix)
	commitment := field.WordFromUint64s(1, 2, 3, 4)
	leaves := map[uint64]field.Word{prefix: commitment}
	path := witnessPathFor(t, AccountTreeDepth, leaves, prefix)

	tree, err := NewAccountTreeFromWitnesses([]model.AccountWitness{
		{Id: id, StateCommitment: commitment, MerklePath: path},
	})
	if err != nil {
		t.Fatalf("NewAccountTreeFromWitnesses: %v", err)
	}

	newCommitment := field.WordFromUint64s(9, 9, 9, 9)
	old, err := tree.Insert(id, newCommitment)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !old.Equal(commitment) {
		t.Fatalf("Insert returned %v, want %v", old, commitment)
	}
}

func TestAccountTreeDuplicatePrefixOnCreation(t *testing.T) {
	prefix := uint64(11)
	idA := testAccountId(t, prefix)
	idB, err := model.NewAccountId(prefix, uint64(2)<<40)
	if err != nil {
		t.Fatalf("NewAccountId: %v", err)
	}
	commitment := field.WordFromUint64s(1, 0, 0, 0)
	leaves := map[uint64]field.Word{prefix: commitment}
	path := witnessPathFor(t, AccountTreeDepth, leaves, prefix)

	witnesses := []model.AccountWitness{
		{Id: idA, StateCommitment: commitment, MerklePath: path},
		{Id: idB, StateCommitment: commitment, MerklePath: path},
	}
	if _, err := NewAccountTreeFromWitnesses(witnesses); err != ErrDuplicateIdPrefix {
		t.Fatalf("err = %v, want ErrDuplicateIdPrefix", err)
	}
}

func TestAccountTreeInsertUntrackedFails(t *testing.T) {
	tree, err := NewAccountTreeFromWitnesses(nil)
	if err != nil {
		t.Fatalf("NewAccountTreeFromWitnesses: %v", err)
	}
	id := testAccountId(t, 1)
	if _, err := tree.Insert(id, field.EmptyWord); err != smt.ErrTreeRootConflict {
		t.Fatalf("err = %v, want ErrTreeRootConflict", err)
	}
}
