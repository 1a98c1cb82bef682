// Copyright 2025 Certen Protocol

package zkprover

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/test"
)

func TestBlockTransitionCircuitCompiles(t *testing.T) {
	var circuit BlockTransitionCircuit
	if _, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit); err != nil {
		t.Fatalf("compile: %v", err)
	}
}

func TestBlockTransitionCircuitSatisfiesConsistentTransition(t *testing.T) {
	assignment := &BlockTransitionCircuit{
		PrevAccountRoot:           10,
		NewAccountRoot:            10 + 3*7,
		PrevNullifierRoot:         20,
		NewNullifierRoot:          20 + 5*7,
		AccountDeltaCommitment:    3,
		NullifierInsertCommitment: 5,
	}
	assert := test.NewAssert(t)
	assert.SolvingSucceeded(&BlockTransitionCircuit{}, assignment, test.WithCurves(ecc.BN254))
}

func TestBlockTransitionCircuitRejectsInconsistentTransition(t *testing.T) {
	assignment := &BlockTransitionCircuit{
		PrevAccountRoot:           10,
		NewAccountRoot:            999,
		PrevNullifierRoot:         20,
		NewNullifierRoot:          20 + 5*7,
		AccountDeltaCommitment:    3,
		NullifierInsertCommitment: 5,
	}
	assert := test.NewAssert(t)
	assert.SolvingFailed(&BlockTransitionCircuit{}, assignment, test.WithCurves(ecc.BN254))
}
