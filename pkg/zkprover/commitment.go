// Copyright 2025 Certen Protocol

package zkprover

import (
	"math/big"
	"sort"

	"github.com/consensys/gnark-crypto/ecc"

	"github.com/certen/zk-block-prover/pkg/model"
)

// bn254ScalarField is the BN254 curve's scalar field modulus, the native
// field BlockTransitionCircuit's variables live in.
var bn254ScalarField = ecc.BN254.ScalarField()

// packWord reduces a 32-byte root down to a single BN254 scalar field
// element, the same "treat the hash as one big.Int, reduce mod the
// circuit's field" approach the teacher's CreateWitnessFromBLSData uses
// for its pubkey commitment (pkg/crypto/bls_zkp/prover.go).
func packWord(b [32]byte) *big.Int {
	v := new(big.Int).SetBytes(b[:])
	return v.Mod(v, bn254ScalarField)
}

// accountDeltaCommitment folds a block's account updates into a single
// field element: commitment = sum(final_state_commitment_i * 7^i), the
// same fixed-coefficient polynomial commitment style the teacher uses
// for its pubkey/signature commitments (computePubkeyCommitment).
func accountDeltaCommitment(updates []model.AccountUpdate) *big.Int {
	sorted := make([]model.AccountUpdate, len(updates))
	copy(sorted, updates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].AccountId.Prefix() < sorted[j].AccountId.Prefix() })

	commitment := new(big.Int)
	r := big.NewInt(7)
	power := new(big.Int).SetInt64(1)
	for _, u := range sorted {
		word := packWord(u.FinalStateCommitment.Bytes())
		term := new(big.Int).Mul(word, power)
		commitment.Add(commitment, term)
		power.Mul(power, r)
	}
	return commitment.Mod(commitment, bn254ScalarField)
}

// nullifierInsertCommitment folds a block's newly-created nullifiers
// into a single field element, keyed on the nullifier value itself
// (ordered deterministically) rather than the block number they were
// spent at, since the latter is already reflected by the header it
// belongs to.
func nullifierInsertCommitment(nullifiers map[model.Nullifier]uint64) *big.Int {
	words := make([][32]byte, 0, len(nullifiers))
	for n := range nullifiers {
		words = append(words, n.Word().Bytes())
	}
	sort.Slice(words, func(i, j int) bool {
		for k := 0; k < 32; k++ {
			if words[i][k] != words[j][k] {
				return words[i][k] < words[j][k]
			}
		}
		return false
	})

	commitment := new(big.Int)
	r := big.NewInt(7)
	power := new(big.Int).SetInt64(1)
	for _, w := range words {
		term := new(big.Int).Mul(packWord(w), power)
		commitment.Add(commitment, term)
		power.Mul(power, r)
	}
	return commitment.Mod(commitment, bn254ScalarField)
}
