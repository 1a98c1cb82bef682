// Copyright 2025 Certen Protocol
//
// Package block implements ProposedBlock: composing a set of batches
// into a block, re-running cross-batch versions of the batch-level
// checks and adding block-specific checks tied to the previous block
// header. Errors here mirror pkg/batch's tagged-variant style, carrying
// the identifying datum a caller needs to localize the fault.
package block

import (
	"fmt"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
)

// TooManyBatches is raised when more than the protocol's
// MaxBatchesPerBlock limit is supplied.
type TooManyBatches struct {
	Count int
	Limit int
}

func (e *TooManyBatches) Error() string {
	return fmt.Sprintf("block: %d batches exceeds limit of %d", e.Count, e.Limit)
}

// DuplicateBatch is raised when two supplied batches share a batch ID.
type DuplicateBatch struct {
	BatchId field.Word
}

func (e *DuplicateBatch) Error() string {
	return fmt.Sprintf("block: duplicate batch %x", e.BatchId.Bytes())
}

// TimestampDoesNotIncreaseMonotonically is raised when the block's
// timestamp does not strictly exceed the previous block's.
type TimestampDoesNotIncreaseMonotonically struct {
	Timestamp     uint64
	PrevTimestamp uint64
}

func (e *TimestampDoesNotIncreaseMonotonically) Error() string {
	return fmt.Sprintf("block: timestamp %d does not exceed previous block's timestamp %d", e.Timestamp, e.PrevTimestamp)
}

// ChainLengthNotEqualToPreviousBlockNumber is raised when the partial
// blockchain's tracked length disagrees with the previous header's
// block number.
type ChainLengthNotEqualToPreviousBlockNumber struct {
	ChainLength       uint64
	PrevBlockNum      uint64
}

func (e *ChainLengthNotEqualToPreviousBlockNumber) Error() string {
	return fmt.Sprintf("block: partial blockchain length %d != previous block number %d", e.ChainLength, e.PrevBlockNum)
}

// ChainRootNotEqualToPreviousBlockChainCommitment is raised when the
// header tracked for the previous block number does not match the
// previous block header supplied to this constructor.
type ChainRootNotEqualToPreviousBlockChainCommitment struct {
	BlockNum uint64
}

func (e *ChainRootNotEqualToPreviousBlockChainCommitment) Error() string {
	return fmt.Sprintf("block: partial blockchain's view of block %d disagrees with prev_block_header", e.BlockNum)
}

// BatchReferenceBlockMissingFromChain is raised when a batch's
// reference block is newer than the previous block, or absent from the
// partial blockchain.
type BatchReferenceBlockMissingFromChain struct {
	BatchId  field.Word
	BlockNum uint64
}

func (e *BatchReferenceBlockMissingFromChain) Error() string {
	return fmt.Sprintf("block: batch %x reference block %d missing from chain", e.BatchId.Bytes(), e.BlockNum)
}

// ExpiredBatch is raised when a batch would already be expired at the
// block it is being composed into.
type ExpiredBatch struct {
	BatchId  field.Word
	ExpirationBlockNum uint64
	AtBlockNum         uint64
}

func (e *ExpiredBatch) Error() string {
	return fmt.Sprintf("block: batch %x expired at block %d (would seal at block %d)", e.BatchId.Bytes(), e.ExpirationBlockNum, e.AtBlockNum)
}

// DuplicateInputNote is raised when the same nullifier is consumed by
// more than one batch in the block.
type DuplicateInputNote struct {
	Nullifier    model.Nullifier
	FirstBatchId  field.Word
	SecondBatchId field.Word
}

func (e *DuplicateInputNote) Error() string {
	return fmt.Sprintf("block: duplicate input note nullifier %x (batches %x and %x)",
		e.Nullifier.Word().Bytes(), e.FirstBatchId.Bytes(), e.SecondBatchId.Bytes())
}

// DuplicateOutputNote is raised when the same note ID is produced by
// more than one batch in the block.
type DuplicateOutputNote struct {
	NoteId        model.NoteId
	FirstBatchId  field.Word
	SecondBatchId field.Word
}

func (e *DuplicateOutputNote) Error() string {
	return fmt.Sprintf("block: duplicate output note %x (batches %x and %x)",
		e.NoteId.Word().Bytes(), e.FirstBatchId.Bytes(), e.SecondBatchId.Bytes())
}

// UnauthenticatedInputNoteBlockNotInPartialBlockchain mirrors
// pkg/batch's variant of the same name, raised at block scope.
type UnauthenticatedInputNoteBlockNotInPartialBlockchain struct {
	NoteId   model.NoteId
	BlockNum uint64
}

func (e *UnauthenticatedInputNoteBlockNotInPartialBlockchain) Error() string {
	return fmt.Sprintf("block: note %x inclusion proof references block %d, not in partial blockchain",
		e.NoteId.Word().Bytes(), e.BlockNum)
}

// UnauthenticatedNoteAuthenticationFailed mirrors pkg/batch's variant,
// raised at block scope.
type UnauthenticatedNoteAuthenticationFailed struct {
	NoteId   model.NoteId
	BlockNum uint64
}

func (e *UnauthenticatedNoteAuthenticationFailed) Error() string {
	return fmt.Sprintf("block: note %x inclusion proof failed verification against block %d note root",
		e.NoteId.Word().Bytes(), e.BlockNum)
}

// UnauthenticatedNoteConsumed is raised when a still-unauthenticated
// input note has neither a supplied inclusion proof nor an
// earlier-batch-in-this-block output note to erase it against.
type UnauthenticatedNoteConsumed struct {
	Nullifier model.Nullifier
}

func (e *UnauthenticatedNoteConsumed) Error() string {
	return fmt.Sprintf("block: unauthenticated note consumed without proof or same-block erasure: nullifier %x", e.Nullifier.Word().Bytes())
}

// NullifierProofMissing is raised when a surviving input-note nullifier
// has no NullifierWitness in block_inputs.
type NullifierProofMissing struct {
	Nullifier model.Nullifier
}

func (e *NullifierProofMissing) Error() string {
	return fmt.Sprintf("block: no nullifier witness supplied for %x", e.Nullifier.Word().Bytes())
}

// NullifierSpent is raised when a nullifier's witness value is already
// non-empty (it was spent at an earlier block).
type NullifierSpent struct {
	Nullifier    model.Nullifier
	SpentAtBlock uint64
}

func (e *NullifierSpent) Error() string {
	return fmt.Sprintf("block: nullifier %x already spent at block %d", e.Nullifier.Word().Bytes(), e.SpentAtBlock)
}

// MissingAccountWitness is raised when an account touched by some batch
// has no AccountWitness in block_inputs.
type MissingAccountWitness struct {
	AccountId model.AccountId
}

func (e *MissingAccountWitness) Error() string {
	return fmt.Sprintf("block: no account witness supplied for %s", e.AccountId.String())
}

// InconsistentAccountStateTransition is raised when the witness's state
// commitment does not match the initial state commitment claimed by the
// first batch touching that account. It is also raised when a later
// batch's initial commitment for the account neither continues from the
// aggregated final commitment so far nor repeats the aggregated initial
// one; StateCommitment then holds that aggregated final commitment.
type InconsistentAccountStateTransition struct {
	AccountId                   model.AccountId
	StateCommitment             field.Word
	RemainingStateCommitments   []field.Word
}

func (e *InconsistentAccountStateTransition) Error() string {
	return fmt.Sprintf("block: account %s state transition inconsistent at commitment %x",
		e.AccountId.String(), e.StateCommitment.Bytes())
}

// ConflictingBatchesUpdateSameAccount is raised when two batches both
// claim to update the same account from the same initial commitment but
// diverge on the final commitment.
type ConflictingBatchesUpdateSameAccount struct {
	AccountId              model.AccountId
	InitialStateCommitment field.Word
	FirstBatchId           field.Word
	SecondBatchId          field.Word
}

func (e *ConflictingBatchesUpdateSameAccount) Error() string {
	return fmt.Sprintf("block: batches %x and %x both update account %s from %x but diverge",
		e.FirstBatchId.Bytes(), e.SecondBatchId.Bytes(), e.AccountId.String(), e.InitialStateCommitment.Bytes())
}
