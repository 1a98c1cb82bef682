// Copyright 2025 Certen Protocol

package domain

import (
	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
	"github.com/certen/zk-block-prover/pkg/smt"
)

// NullifierTreeDepth is the depth used for the generic Smt's 64-bit
// projection of a nullifier key (see pkg/smt's package doc for why a
// general Smt keyed by a word hash is implemented on the same
// fixed-depth generic tree as SimpleSmt).
const NullifierTreeDepth = 64

// nullifierIndex projects a Nullifier's leading field element into a
// 64-bit path index; this is the same projection the real protocol's
// 64-level Smt leaves use for its initial path prior to per-leaf
// collision handling, which this simplified model does not implement
// (see DESIGN.md).
func nullifierIndex(n model.Nullifier) uint64 {
	w := n.Word()
	return uint64(w[0])
}

// NullifierTree is an Smt keyed by nullifier; value = [block_num,0,0,0]
// once spent, empty while unspent.
type NullifierTree struct {
	tree *smt.Tree
}

// NewNullifierTreeFromWitnesses builds a partial nullifier tree from a
// set of nullifier witnesses.
func NewNullifierTreeFromWitnesses(witnesses []model.NullifierWitness) (*NullifierTree, error) {
	smtWitnesses := make([]smt.Witness, 0, len(witnesses))
	for _, w := range witnesses {
		smtWitnesses = append(smtWitnesses, smt.Witness{
			Index: nullifierIndex(w.Nullifier),
			Value: w.Value,
			Path:  w.MerklePath,
		})
	}
	tree, _, err := smt.FromWitnesses(NullifierTreeDepth, smtWitnesses)
	if err != nil {
		return nil, err
	}
	return &NullifierTree{tree: tree}, nil
}

// Root returns the nullifier tree's current root.
func (t *NullifierTree) Root() field.Word {
	return t.tree.Root()
}

// IsTracked reports whether a nullifier has a witness.
func (t *NullifierTree) IsTracked(n model.Nullifier) bool {
	return t.tree.IsTracked(nullifierIndex(n))
}

// MarkSpent inserts the spending block number for a nullifier,
// returning the witness value observed before the insert (so callers
// can detect a double-spend by checking it was non-empty).
func (t *NullifierTree) MarkSpent(n model.Nullifier, blockNum uint64) (field.Word, error) {
	return t.tree.Insert(nullifierIndex(n), model.NullifierSpentValue(blockNum))
}

// Open returns the current value and path tracked at a nullifier.
func (t *NullifierTree) Open(n model.Nullifier) (field.Word, field.MerklePath, error) {
	return t.tree.Open(nullifierIndex(n))
}
