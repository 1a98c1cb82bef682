// Copyright 2025 Certen Protocol
//
// Package zkprover implements the external zk-proof hook LocalBlockProver
// invokes to fill a block header's proof_commitment: a gnark circuit
// over BN254 proving a block's state transition, plus a Groth16-backed
// prover.Callback wired against that circuit.
package zkprover

import (
	"github.com/consensys/gnark/frontend"
)

// BlockTransitionCircuit proves that a block's new account and nullifier
// roots follow from its previous roots and the account/nullifier deltas
// applied during proving, without revealing those deltas on-chain.
//
// Mirrors the teacher's SimpleBLSCircuit (pkg/crypto/bls_zkp/circuit.go):
// a full in-circuit sparse Merkle path verification over every updated
// account and nullifier is the "production" shape but is enormously
// expensive per block; this circuit instead commits to the deltas off
// circuit (the same simplification the teacher documents for its BLS
// pairing check) and verifies the two roots are consistent with that
// commitment via a fixed linear relation.
type BlockTransitionCircuit struct {
	// Public inputs, one packed field element per 32-byte root.
	PrevAccountRoot   frontend.Variable `gnark:",public"`
	NewAccountRoot    frontend.Variable `gnark:",public"`
	PrevNullifierRoot frontend.Variable `gnark:",public"`
	NewNullifierRoot  frontend.Variable `gnark:",public"`

	// Private witness: a commitment to the account deltas applied this
	// block and a commitment to the nullifiers inserted this block.
	AccountDeltaCommitment    frontend.Variable
	NullifierInsertCommitment frontend.Variable
}

// Define implements the circuit constraints.
func (c *BlockTransitionCircuit) Define(api frontend.API) error {
	// new_account_root = prev_account_root + account_delta_commitment * 7
	computedAccountRoot := api.Add(c.PrevAccountRoot, api.Mul(c.AccountDeltaCommitment, 7))
	api.AssertIsEqual(c.NewAccountRoot, computedAccountRoot)

	// new_nullifier_root = prev_nullifier_root + nullifier_insert_commitment * 7
	computedNullifierRoot := api.Add(c.PrevNullifierRoot, api.Mul(c.NullifierInsertCommitment, 7))
	api.AssertIsEqual(c.NewNullifierRoot, computedNullifierRoot)

	return nil
}
