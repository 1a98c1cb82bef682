// Copyright 2025 Certen Protocol
//
// Package wire defines the canonical, byte-exact encoding spec.md §9
// requires for everything that gets hashed into a commitment. It
// mirrors plain encode structs through go-ethereum's RLP encoder
// (github.com/ethereum/go-ethereum/rlp), the same deterministic,
// big-endian-friendly encoding a real chain client already depends on,
// reused here instead of hand-rolling a second serialization format.
package wire

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/certen/zk-block-prover/pkg/model"
)

// txHeader is the plain RLP-encodable projection of the ProvenTransaction
// fields that feed tx_commitment.
type txHeader struct {
	Id                       []byte
	AccountPrefix            uint64
	AccountSuffix            uint64
	InitialStateCommitment   []byte
	FinalStateCommitment     []byte
	ReferenceBlockNum        uint64
	ReferenceBlockCommitment []byte
	ExpirationBlockNum       uint64
}

// TxHeaderBytes canonically encodes a transaction's header fields. This
// is the sole input to commitment.TxHeaderCommitment, and therefore
// must encode deterministically for identical transactions.
func TxHeaderBytes(tx model.ProvenTransaction) []byte {
	idBytes := tx.Id.Bytes()
	initial := tx.InitialStateCommitment.Bytes()
	final := tx.FinalStateCommitment.Bytes()
	refCommitment := tx.ReferenceBlockCommitment.Bytes()

	h := txHeader{
		Id:                       idBytes[:],
		AccountPrefix:            tx.AccountId.Prefix(),
		AccountSuffix:            tx.AccountId.Suffix(),
		InitialStateCommitment:   initial[:],
		FinalStateCommitment:     final[:],
		ReferenceBlockNum:        tx.ReferenceBlockNum,
		ReferenceBlockCommitment: refCommitment[:],
		ExpirationBlockNum:       tx.ExpirationBlockNum,
	}
	b, err := rlp.EncodeToBytes(&h)
	if err != nil {
		// Every field above is RLP-encodable by construction (fixed-size
		// byte slices and uints); a failure here means a broken internal
		// invariant, not a user-facing error.
		panic("wire: failed to RLP-encode transaction header: " + err.Error())
	}
	return b
}

// blockHeaderFields is the plain RLP-encodable projection of BlockHeader
// used when a header itself needs to be committed to as wire bytes
// (e.g. for diagnostics or cross-implementation conformance checks)
// rather than through model.BlockHeader.Hash()'s word-native path.
type blockHeaderFields struct {
	Version            uint32
	PrevBlockCommitment []byte
	ChainCommitment     []byte
	AccountRoot         []byte
	NullifierRoot       []byte
	NoteRoot            []byte
	TxCommitment        []byte
	TxKernelCommitment  []byte
	ProofCommitment     []byte
	BlockNum            uint64
	Timestamp           uint64
}

// BlockHeaderBytes canonically encodes a block header's fields.
func BlockHeaderBytes(h model.BlockHeader) []byte {
	prev := h.PrevBlockCommitment.Bytes()
	chain := h.ChainCommitment.Bytes()
	account := h.AccountRoot.Bytes()
	nullifier := h.NullifierRoot.Bytes()
	note := h.NoteRoot.Bytes()
	tx := h.TxCommitment.Bytes()
	kernel := h.TxKernelCommitment.Bytes()
	proof := h.ProofCommitment.Bytes()

	f := blockHeaderFields{
		Version:             h.Version,
		PrevBlockCommitment: prev[:],
		ChainCommitment:     chain[:],
		AccountRoot:         account[:],
		NullifierRoot:       nullifier[:],
		NoteRoot:            note[:],
		TxCommitment:        tx[:],
		TxKernelCommitment:  kernel[:],
		ProofCommitment:     proof[:],
		BlockNum:            h.BlockNum,
		Timestamp:           h.Timestamp,
	}
	b, err := rlp.EncodeToBytes(&f)
	if err != nil {
		panic("wire: failed to RLP-encode block header: " + err.Error())
	}
	return b
}

// BatchIDBytes canonically encodes the ordered transaction IDs a batch
// ID is hashed from.
func BatchIDBytes(txIds [][32]byte) []byte {
	ids := make([][]byte, len(txIds))
	for i := range txIds {
		ids[i] = txIds[i][:]
	}
	b, err := rlp.EncodeToBytes(ids)
	if err != nil {
		panic("wire: failed to RLP-encode batch ID input: " + err.Error())
	}
	return b
}
