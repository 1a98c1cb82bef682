// Copyright 2025 Certen Protocol
//
// Package commitment computes the protocol's deterministic hashes
// (transaction header, batch ID, block header extensions) per spec.md
// §9: "All serialization used for hashing ... must be byte-exact."
// This rewrites the teacher's original pkg/commitment/commitment.go
// (SHA256 over canonicalized JSON) to instead hash RLP-encoded wire
// structs through the protocol's own field hash, since this domain is
// word-based, not byte-based JSON documents.
package commitment

import (
	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
	"github.com/certen/zk-block-prover/pkg/wire"
)

// TxHeaderCommitment hashes a single transaction's canonical header
// bytes into one word, the per-transaction unit combined into TxCommitment.
func TxHeaderCommitment(tx model.ProvenTransaction) field.Word {
	return HashBytes(wire.TxHeaderBytes(tx))
}

// TxCommitment hashes, in order of appearance in the block, the
// per-transaction header commitments:
// tx_commitment = hash(concat(TxHeaderCommitment(tx)...)).
func TxCommitment(txs []model.ProvenTransaction) field.Word {
	words := make([]field.Word, len(txs))
	for i, tx := range txs {
		words[i] = TxHeaderCommitment(tx)
	}
	return field.HashWords(words...)
}

// BatchId hashes the RLP-canonical encoding of the batch's transaction
// IDs in order: batch_id = hash(wire.BatchIDBytes(tx.id for tx in batch)).
func BatchId(txs []model.ProvenTransaction) field.Word {
	ids := make([][32]byte, len(txs))
	for i, tx := range txs {
		ids[i] = tx.Id.Bytes()
	}
	return HashBytes(wire.BatchIDBytes(ids))
}

// HashBytes folds an arbitrary byte slice down to field elements
// (8 bytes each, big-endian, reduced modulo the field's modulus) before
// hashing, so non-word-shaped wire bytes (e.g. RLP output, a proof's
// serialized bytes) can still be committed to with the same hash
// primitive as everything else.
func HashBytes(b []byte) field.Word {
	elements := make([]field.Element, 0, (len(b)+7)/8)
	for i := 0; i < len(b); i += 8 {
		end := i + 8
		if end > len(b) {
			end = len(b)
		}
		chunk := make([]byte, 8)
		copy(chunk[8-(end-i):], b[i:end])
		var v uint64
		for _, bb := range chunk {
			v = v<<8 | uint64(bb)
		}
		elements = append(elements, field.New(v))
	}
	return field.Hash(elements...)
}
