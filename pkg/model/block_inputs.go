// Copyright 2025 Certen Protocol

package model

import "github.com/certen/zk-block-prover/pkg/field"

// BlockInputs bundles everything a ProposedBlock needs beyond the
// batches themselves: the previous block header, enough of the chain
// to authenticate references, and the witnesses required to validate
// and later apply account/nullifier updates and unauthenticated notes.
type BlockInputs struct {
	PrevBlockHeader           BlockHeader
	PartialBlockchain         PartialBlockchainView
	AccountWitnesses          map[AccountId]AccountWitness
	NullifierWitnesses        map[Nullifier]NullifierWitness
	UnauthenticatedNoteProofs map[NoteId]NoteInclusionProof
}

// PartialBlockchainView is the subset of pkg/domain's PartialBlockchain
// surface the model package needs to reference without importing it
// (which would create an import cycle, since pkg/domain imports
// pkg/model for AccountId/Nullifier/NoteId key types).
type PartialBlockchainView interface {
	ChainLength() uint64
	ContainsBlock(blockNum uint64) bool
	ChainCommitment() field.Word
	Header(blockNum uint64) (BlockHeader, bool)
}
