// Copyright 2025 Certen Protocol

package zkprover

import (
	"context"
	"testing"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
	"github.com/certen/zk-block-prover/pkg/prover"
)

func testWitnesses(t *testing.T) prover.Witnesses {
	t.Helper()
	acct, err := model.NewAccountId(1, uint64(1)<<40)
	if err != nil {
		t.Fatalf("NewAccountId: %v", err)
	}
	n := model.Nullifier(field.WordFromUint64s(9, 0, 0, 0))

	update := model.AccountUpdate{
		AccountId:              acct,
		InitialStateCommitment: field.EmptyWord,
		FinalStateCommitment:   field.WordFromUint64s(42, 0, 0, 0),
	}

	return prover.Witnesses{
		PrevAccountRoot:    field.WordFromUint64s(1, 1, 1, 1),
		NewAccountRoot:     field.WordFromUint64s(1, 1, 1, 1),
		PrevNullifierRoot:  field.WordFromUint64s(2, 2, 2, 2),
		NewNullifierRoot:   field.WordFromUint64s(2, 2, 2, 2),
		AccountUpdates:     []model.AccountUpdate{update},
		NullifiersToCreate: map[model.Nullifier]uint64{n: 3},
	}
}

func TestGroth16CallbackProveProducesProof(t *testing.T) {
	t.Skip("exercises a real Groth16 trusted setup and proving run; skipped to keep unit tests fast, see TestBlockTransitionCircuitSatisfiesConsistentTransition for constraint coverage")

	cb := NewGroth16Callback()
	w := testWitnesses(t)
	proof, err := cb.Prove(context.Background(), w)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(proof.Bytes) == 0 {
		t.Fatalf("expected non-empty proof bytes")
	}
	if err := cb.VerifyLocally(proof); err != nil {
		t.Fatalf("VerifyLocally: %v", err)
	}
}
