// Copyright 2025 Certen Protocol

package model

import "github.com/certen/zk-block-prover/pkg/field"

// AccountWitness proves an account's current state commitment under a
// prior block's account root. A new account's witness carries the
// empty word as its state commitment.
type AccountWitness struct {
	Id              AccountId
	StateCommitment field.Word
	MerklePath      field.MerklePath
}

// NullifierWitness proves, under a prior block's nullifier root, that a
// nullifier has value EMPTY (unspent). A non-empty value encodes the
// block number at which it was spent.
type NullifierWitness struct {
	Nullifier  Nullifier
	Value      field.Word
	MerklePath field.MerklePath
}

// IsSpent reports whether this witness shows the nullifier already spent.
func (w NullifierWitness) IsSpent() bool {
	return !w.Value.IsEmpty()
}

// SpentAtBlock decodes the block number a spent nullifier was consumed
// at; only meaningful when IsSpent() is true.
func (w NullifierWitness) SpentAtBlock() uint64 {
	return uint64(w.Value[0])
}

// NullifierSpentValue encodes the [block_num, 0, 0, 0] value the
// nullifier tree stores once a nullifier is marked spent.
func NullifierSpentValue(blockNum uint64) field.Word {
	return field.WordFromUint64s(blockNum, 0, 0, 0)
}

// NoteInclusionProof proves a note ID was present in some past block's
// note root.
type NoteInclusionProof struct {
	BlockNum     uint64
	IndexInBlock uint64
	MerklePath   field.MerklePath
}
