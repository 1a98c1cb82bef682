// Copyright 2025 Certen Protocol
//
// Package domain implements the protocol's three domain-specific trees
// (spec.md §4.2) on top of the generic partial tree in pkg/smt: the
// account tree keyed by account-ID prefix, the nullifier tree keyed by
// nullifier, and the two-level block note tree. It also wraps pkg/mmr
// into PartialBlockchain, the selected-headers view batches and blocks
// authenticate references against.
package domain

import (
	"errors"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
	"github.com/certen/zk-block-prover/pkg/smt"
)

// AccountTreeDepth is the fixed depth of the account tree (SimpleSmt<64>).
const AccountTreeDepth = 64

// ErrDuplicateIdPrefix is raised when two distinct account IDs collide
// on their 64-bit prefix: two witnesses at construction, or an Insert
// that targets a prefix tracked under a different account ID.
var ErrDuplicateIdPrefix = errors.New("domain: duplicate account id prefix")

// ErrTreeRootConflict mirrors smt.ErrTreeRootConflict at the domain layer.
var ErrTreeRootConflict = smt.ErrTreeRootConflict

// AccountTree is a SimpleSmt<64> keyed by account-ID prefix.
type AccountTree struct {
	tree  *smt.Tree
	owner map[uint64]model.AccountId // prefix -> the full ID currently tracked there
}

// NewAccountTreeFromWitnesses builds a partial account tree from a set
// of per-account witnesses. Two witnesses whose account IDs collide on
// prefix is ErrDuplicateIdPrefix.
func NewAccountTreeFromWitnesses(witnesses []model.AccountWitness) (*AccountTree, error) {
	owner := make(map[uint64]model.AccountId, len(witnesses))
	smtWitnesses := make([]smt.Witness, 0, len(witnesses))
	for _, w := range witnesses {
		prefix := w.Id.Prefix()
		if existing, ok := owner[prefix]; ok && existing != w.Id {
			return nil, ErrDuplicateIdPrefix
		}
		owner[prefix] = w.Id
		smtWitnesses = append(smtWitnesses, smt.Witness{
			Index: prefix,
			Value: w.StateCommitment,
			Path:  w.MerklePath,
		})
	}

	tree, _, err := smt.FromWitnesses(AccountTreeDepth, smtWitnesses)
	if err != nil {
		return nil, err
	}
	return &AccountTree{tree: tree, owner: owner}, nil
}

// Root returns the account tree's current root.
func (t *AccountTree) Root() field.Word {
	return t.tree.Root()
}

// IsTracked reports whether a prefix has a witness.
func (t *AccountTree) IsTracked(prefix uint64) bool {
	return t.tree.IsTracked(prefix)
}

// Insert updates the state commitment tracked at id's prefix. If a
// *different* account ID already occupies that prefix, the insert is
// rejected with ErrDuplicateIdPrefix (an attempted collision); if the
// prefix was never tracked, ErrTreeRootConflict.
func (t *AccountTree) Insert(id model.AccountId, newStateCommitment field.Word) (field.Word, error) {
	prefix := id.Prefix()
	if existing, ok := t.owner[prefix]; ok && existing != id {
		return field.EmptyWord, ErrDuplicateIdPrefix
	}
	old, err := t.tree.Insert(prefix, newStateCommitment)
	if err != nil {
		return field.EmptyWord, err
	}
	t.owner[prefix] = id
	return old, nil
}

// Open returns the current value and path tracked at a prefix.
func (t *AccountTree) Open(prefix uint64) (field.Word, field.MerklePath, error) {
	return t.tree.Open(prefix)
}
