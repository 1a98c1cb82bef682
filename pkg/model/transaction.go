// Copyright 2025 Certen Protocol

package model

import "github.com/certen/zk-block-prover/pkg/field"

// AccountUpdateDetails carries whatever delta information the prover
// needs to replay this transaction's effect on its account; the core
// treats it as opaque payload.
type AccountUpdateDetails struct {
	Payload field.Word
}

// ProvenTransaction is a single already-proven state transition against
// exactly one account, as produced externally (spec.md §3).
type ProvenTransaction struct {
	Id                       field.Word
	AccountId                AccountId
	InitialStateCommitment   field.Word
	FinalStateCommitment     field.Word
	InputNotes               []InputNoteRef
	OutputNotes              []OutputNoteRef
	ReferenceBlockNum        uint64
	ReferenceBlockCommitment field.Word
	ExpirationBlockNum       uint64
	ExecutionProof           field.Word
	AccountUpdateDetails     AccountUpdateDetails
}

// IsNoop reports whether this transaction left the account's state
// commitment unchanged.
func (tx ProvenTransaction) IsNoop() bool {
	return tx.InitialStateCommitment.Equal(tx.FinalStateCommitment)
}

// AccountUpdate is the aggregated per-account transition carried by a
// batch or block: the first transaction's initial state through the
// last transaction's final state.
type AccountUpdate struct {
	AccountId              AccountId
	InitialStateCommitment field.Word
	FinalStateCommitment   field.Word
	Details                []AccountUpdateDetails
}

// ProvenBatch is the immutable result of validating a ProposedBatch.
type ProvenBatch struct {
	Id                       field.Word
	ReferenceBlockNum        uint64
	ReferenceBlockCommitment field.Word
	AccountUpdates           []AccountUpdate
	InputNotes               []InputNoteRef
	OutputNotes              []OutputNoteRef
	BatchExpirationBlockNum  uint64
	Transactions             []ProvenTransaction
}

// ProvenBlock is the final output of LocalBlockProver.Prove.
type ProvenBlock struct {
	Header             BlockHeader
	UpdatedAccounts    []AccountUpdate
	CreatedNullifiers  map[Nullifier]uint64
	OutputNoteBatches  [][]OutputNoteRef
	Transactions       []ProvenTransaction
}
