// Copyright 2025 Certen Protocol

package zkprover

import (
	"context"
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/prover"
)

// Groth16Callback is a prover.Callback backed by a Groth16 proof of
// BlockTransitionCircuit over BN254. Grounded on the teacher's
// BLSZKProver (pkg/crypto/bls_zkp/prover.go): a mutex-guarded struct
// holding a compiled constraint system plus a proving/verification key
// pair, compiled and set up once and reused across calls.
type Groth16Callback struct {
	mu sync.Mutex

	setupOnce sync.Once
	setupErr  error
	cs        constraint.ConstraintSystem
	pk        groth16.ProvingKey
	vk        groth16.VerifyingKey
}

// NewGroth16Callback constructs a Groth16Callback. The trusted setup
// (circuit compilation plus groth16.Setup) is deferred to the first
// Prove, VerifyLocally or SaveKeys call rather than run eagerly here.
func NewGroth16Callback() *Groth16Callback {
	return &Groth16Callback{}
}

func (g *Groth16Callback) ensureSetup() error {
	g.setupOnce.Do(func() {
		var circuit BlockTransitionCircuit
		cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
		if err != nil {
			g.setupErr = fmt.Errorf("zkprover: compile circuit: %w", err)
			return
		}
		pk, vk, err := groth16.Setup(cs)
		if err != nil {
			g.setupErr = fmt.Errorf("zkprover: groth16 setup: %w", err)
			return
		}
		g.cs, g.pk, g.vk = cs, pk, vk
	})
	return g.setupErr
}

// Prove generates a Groth16 proof of BlockTransitionCircuit for the
// block transition described by w. Assignable to prover.Callback.
func (g *Groth16Callback) Prove(ctx context.Context, w prover.Witnesses) (prover.Proof, error) {
	if err := g.ensureSetup(); err != nil {
		return prover.Proof{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	prevAccount := packWord(w.PrevAccountRoot.Bytes())
	newAccount := packWord(w.NewAccountRoot.Bytes())
	prevNullifier := packWord(w.PrevNullifierRoot.Bytes())
	newNullifier := packWord(w.NewNullifierRoot.Bytes())
	accountDelta := accountDeltaCommitment(w.AccountUpdates)
	nullifierInsert := nullifierInsertCommitment(w.NullifiersToCreate)

	assignment := &BlockTransitionCircuit{
		PrevAccountRoot:           prevAccount,
		NewAccountRoot:            newAccount,
		PrevNullifierRoot:         prevNullifier,
		NewNullifierRoot:          newNullifier,
		AccountDeltaCommitment:    accountDelta,
		NullifierInsertCommitment: nullifierInsert,
	}

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return prover.Proof{}, fmt.Errorf("zkprover: build witness: %w", err)
	}

	proof, err := groth16.Prove(g.cs, g.pk, witness)
	if err != nil {
		return prover.Proof{}, fmt.Errorf("zkprover: prove: %w", err)
	}

	proofBytes, err := marshalProof(proof)
	if err != nil {
		return prover.Proof{}, err
	}

	return prover.Proof{
		Bytes: proofBytes,
		PublicInputs: []field.Word{
			w.PrevAccountRoot,
			w.NewAccountRoot,
			w.PrevNullifierRoot,
			w.NewNullifierRoot,
		},
	}, nil
}

// VerifyLocally re-verifies a proof this callback produced against its
// own verification key, for tests that want to check proof validity
// without a separate verifier component.
func (g *Groth16Callback) VerifyLocally(p prover.Proof) error {
	if err := g.ensureSetup(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(p.PublicInputs) != 4 {
		return fmt.Errorf("zkprover: expected 4 public inputs, got %d", len(p.PublicInputs))
	}
	assignment := &BlockTransitionCircuit{
		PrevAccountRoot:   packWord(p.PublicInputs[0].Bytes()),
		NewAccountRoot:    packWord(p.PublicInputs[1].Bytes()),
		PrevNullifierRoot: packWord(p.PublicInputs[2].Bytes()),
		NewNullifierRoot:  packWord(p.PublicInputs[3].Bytes()),
	}
	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("zkprover: build public witness: %w", err)
	}
	proof, err := unmarshalProof(p.Bytes)
	if err != nil {
		return err
	}
	return groth16.Verify(proof, g.vk, publicWitness)
}
