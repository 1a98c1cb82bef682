// Copyright 2025 Certen Protocol

package model

import "github.com/certen/zk-block-prover/pkg/field"

// TxKernelCommitment is a protocol-version constant identifying the
// transaction kernel program every proven transaction in this protocol
// version was executed against.
var TxKernelCommitment = field.WordFromUint64s(0x5458, 0x4B45, 0x524E, 0x454C) // "TXKERNEL"

// BlockHeader is the sealed commitment produced by the block prover.
type BlockHeader struct {
	Version              uint32
	PrevBlockCommitment   field.Word
	ChainCommitment       field.Word
	AccountRoot           field.Word
	NullifierRoot         field.Word
	NoteRoot              field.Word
	TxCommitment          field.Word
	TxKernelCommitment    field.Word
	ProofCommitment       field.Word
	BlockNum              uint64
	Timestamp             uint64
}

// Hash commits to every header field; it is the value extended into
// the chain's partial blockchain as the next leaf.
func (h BlockHeader) Hash() field.Word {
	return field.HashWords(
		field.WordFromUint64s(uint64(h.Version), 0, 0, 0),
		h.PrevBlockCommitment,
		h.ChainCommitment,
		h.AccountRoot,
		h.NullifierRoot,
		h.NoteRoot,
		h.TxCommitment,
		h.TxKernelCommitment,
		h.ProofCommitment,
		field.WordFromUint64s(h.BlockNum, h.Timestamp, 0, 0),
	)
}
