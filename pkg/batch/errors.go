// Copyright 2025 Certen Protocol
//
// Batch package errors. The teacher's pkg/batch/errors.go used plain
// package-level sentinel errors (errors.New), adequate for its coarse
// anchor-submission failures; this package's errors carry an
// identifying datum (a transaction ID, nullifier, account ID, or block
// number) so a caller can localize the fault.

package batch

import (
	"errors"
	"fmt"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
)

// ErrEmptyTransactionBatch is returned when New is given zero transactions.
var ErrEmptyTransactionBatch = errors.New("batch: empty transaction batch")

// DuplicateTransaction is raised when the same transaction ID appears
// twice in one batch.
type DuplicateTransaction struct {
	TxId field.Word
}

func (e *DuplicateTransaction) Error() string {
	return fmt.Sprintf("batch: duplicate transaction %x", e.TxId.Bytes())
}

// ExpiredTransaction is raised when a transaction's expiration block
// number has already passed at the batch's reference block.
type ExpiredTransaction struct {
	TxId                   field.Word
	ExpirationBlockNum     uint64
	BatchReferenceBlockNum uint64
}

func (e *ExpiredTransaction) Error() string {
	return fmt.Sprintf("batch: transaction %x expired at block %d (batch reference block %d)",
		e.TxId.Bytes(), e.ExpirationBlockNum, e.BatchReferenceBlockNum)
}

// TxReferenceBlockNotInPartialBlockchain is raised when a transaction's
// reference block is not contained in the partial blockchain view.
type TxReferenceBlockNotInPartialBlockchain struct {
	TxId     field.Word
	BlockNum uint64
}

func (e *TxReferenceBlockNotInPartialBlockchain) Error() string {
	return fmt.Sprintf("batch: transaction %x reference block %d not in partial blockchain",
		e.TxId.Bytes(), e.BlockNum)
}

// TxReferenceBlockCommitmentMismatch is raised when a transaction's
// reference block commitment disagrees with the header tracked for
// that block number in the partial blockchain.
type TxReferenceBlockCommitmentMismatch struct {
	TxId     field.Word
	BlockNum uint64
}

func (e *TxReferenceBlockCommitmentMismatch) Error() string {
	return fmt.Sprintf("batch: transaction %x reference block %d commitment mismatch",
		e.TxId.Bytes(), e.BlockNum)
}

// AccountUpdateInitialStateMismatch is raised when two transactions
// touching the same account, in appearance order, do not chain:
// tx_{k+1}.initial_state_commitment != tx_k.final_state_commitment.
type AccountUpdateInitialStateMismatch struct {
	AccountId       model.AccountId
	ExpectedInitial field.Word
	ActualInitial   field.Word
	TxId            field.Word
}

func (e *AccountUpdateInitialStateMismatch) Error() string {
	return fmt.Sprintf("batch: account %s update chain broken at tx %x (expected initial %x, got %x)",
		e.AccountId.String(), e.TxId.Bytes(), e.ExpectedInitial.Bytes(), e.ActualInitial.Bytes())
}

// DuplicateInputNote is raised when the same nullifier is consumed by
// more than one transaction in the batch.
type DuplicateInputNote struct {
	Nullifier  model.Nullifier
	FirstTxId  field.Word
	SecondTxId field.Word
}

func (e *DuplicateInputNote) Error() string {
	return fmt.Sprintf("batch: duplicate input note nullifier %x (transactions %x and %x)",
		e.Nullifier.Word().Bytes(), e.FirstTxId.Bytes(), e.SecondTxId.Bytes())
}

// DuplicateOutputNote is raised when the same note ID is produced by
// more than one transaction in the batch.
type DuplicateOutputNote struct {
	NoteId     model.NoteId
	FirstTxId  field.Word
	SecondTxId field.Word
}

func (e *DuplicateOutputNote) Error() string {
	return fmt.Sprintf("batch: duplicate output note %x (transactions %x and %x)",
		e.NoteId.Word().Bytes(), e.FirstTxId.Bytes(), e.SecondTxId.Bytes())
}

// UnauthenticatedInputNoteBlockNotInPartialBlockchain is raised when a
// supplied note-inclusion proof references a block absent from the
// partial blockchain view.
type UnauthenticatedInputNoteBlockNotInPartialBlockchain struct {
	NoteId   model.NoteId
	BlockNum uint64
}

func (e *UnauthenticatedInputNoteBlockNotInPartialBlockchain) Error() string {
	return fmt.Sprintf("batch: note %x inclusion proof references block %d, not in partial blockchain",
		e.NoteId.Word().Bytes(), e.BlockNum)
}

// UnauthenticatedNoteAuthenticationFailed is raised when a supplied
// note-inclusion proof's Merkle path does not verify against the
// referenced block's note root.
type UnauthenticatedNoteAuthenticationFailed struct {
	NoteId   model.NoteId
	BlockNum uint64
}

func (e *UnauthenticatedNoteAuthenticationFailed) Error() string {
	return fmt.Sprintf("batch: note %x inclusion proof failed verification against block %d note root",
		e.NoteId.Word().Bytes(), e.BlockNum)
}
