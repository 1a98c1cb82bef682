// Copyright 2025 Certen Protocol

package model

import "github.com/certen/zk-block-prover/pkg/field"

// ProposedBlock is the result of validating a set of batches against
// BlockInputs: a block-shaped aggregate that LocalBlockProver applies
// against the domain trees to produce a ProvenBlock. It carries the
// witnesses its prover stage needs rather than holding a back-reference
// into the BlockInputs it was built from.
type ProposedBlock struct {
	BlockNum        uint64
	Timestamp       uint64
	PrevBlockHeader BlockHeader
	// ChainCommitment is the partial blockchain's root as observed at
	// proposal time (inputs.PartialBlockchain.ChainCommitment()), already
	// including prev_block_header as its latest tracked leaf. The prover
	// stage carries this through unchanged into the new block header
	// rather than re-deriving it from a blockchain view it is not given.
	ChainCommitment field.Word

	AccountUpdates []AccountUpdate
	// NullifiersToCreate maps each surviving input-note nullifier to the
	// block number it is being spent at (this block's number).
	NullifiersToCreate map[Nullifier]uint64
	// OutputNoteBatches holds one erasure-applied output-note list per
	// referenced batch, in batch order, feeding BlockNoteTree directly.
	OutputNoteBatches [][]OutputNoteRef
	Batches           []ProvenBatch

	AccountWitnesses   map[AccountId]AccountWitness
	NullifierWitnesses map[Nullifier]NullifierWitness
}

// IsEmpty reports whether this is the zero-batch "empty block" case.
func (b ProposedBlock) IsEmpty() bool {
	return len(b.Batches) == 0
}
