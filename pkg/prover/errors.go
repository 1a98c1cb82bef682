// Copyright 2025 Certen Protocol
//
// Package prover implements LocalBlockProver: the state transition that
// applies a validated ProposedBlock against partial versions of the
// account and nullifier trees and emits a ProvenBlock. Errors here
// mirror pkg/batch and pkg/block's tagged-variant style.
package prover

import (
	"fmt"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
)

// StaleAccountTreeRoot is raised when the partial account tree built
// from the supplied AccountWitnesses does not hash to
// prev_block_header.account_root: the witnesses were taken against an
// older block than the one this ProposedBlock claims to extend.
type StaleAccountTreeRoot struct {
	Computed field.Word
	Expected field.Word
}

func (e *StaleAccountTreeRoot) Error() string {
	return fmt.Sprintf("prover: partial account tree root %x != prev block account root %x", e.Computed.Bytes(), e.Expected.Bytes())
}

// StaleNullifierTreeRoot is raised when the partial nullifier tree
// built from the supplied NullifierWitnesses does not hash to
// prev_block_header.nullifier_root.
type StaleNullifierTreeRoot struct {
	Computed field.Word
	Expected field.Word
}

func (e *StaleNullifierTreeRoot) Error() string {
	return fmt.Sprintf("prover: partial nullifier tree root %x != prev block nullifier root %x", e.Computed.Bytes(), e.Expected.Bytes())
}

// AccountWitnessTracking wraps a failure building or updating the
// partial account tree that is not an account-level state-transition
// error: two supplied witnesses collided on prefix (building the tree),
// or an insert touched a prefix the tree does not track at all. It also
// wraps any failure building the partial nullifier tree from the
// supplied NullifierWitnesses (for example two witnesses that disagree
// on a shared node).
type AccountWitnessTracking struct {
	Source error
}

func (e *AccountWitnessTracking) Error() string {
	return fmt.Sprintf("prover: account witness tracking failure: %v", e.Source)
}

func (e *AccountWitnessTracking) Unwrap() error { return e.Source }

// AccountIdPrefixDuplicate is raised when an account update's insert
// targets a prefix already tracked under a *different* account ID: an
// attempted collision with an existing account (spec.md scenario S11).
type AccountIdPrefixDuplicate struct {
	AccountId model.AccountId
	Prefix    uint64
}

func (e *AccountIdPrefixDuplicate) Error() string {
	return fmt.Sprintf("prover: account %s collides with an existing account at prefix %#x", e.AccountId.String(), e.Prefix)
}

// NullifierWitnessRootMismatch is raised when marking a nullifier spent
// touches a nullifier the partial nullifier tree does not track: no
// NullifierWitness was supplied for a nullifier the block claims to
// create.
type NullifierWitnessRootMismatch struct {
	Nullifier model.Nullifier
}

func (e *NullifierWitnessRootMismatch) Error() string {
	return fmt.Sprintf("prover: no tracked nullifier witness for %x", e.Nullifier.Word().Bytes())
}

// BlockNoteTreeConstructionFailed is raised when a batch's erasure-applied
// output notes exceed the protocol's configured per-batch output note
// limit, which the block note tree's contiguous-leaf level cannot
// exceed without violating the fixed proof-circuit width it feeds.
type BlockNoteTreeConstructionFailed struct {
	BatchIndex int
	Count      int
	Limit      uint32
}

func (e *BlockNoteTreeConstructionFailed) Error() string {
	return fmt.Sprintf("prover: block note tree construction failed: batch %d has %d output notes, limit %d", e.BatchIndex, e.Count, e.Limit)
}
