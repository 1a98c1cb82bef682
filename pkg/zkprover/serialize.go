// Copyright 2025 Certen Protocol

package zkprover

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
)

// marshalProof serializes a gnark Groth16 proof to bytes for embedding
// in a prover.Proof, mirroring the teacher's SaveKeys/pk.WriteTo pattern
// of using gnark's own io.WriterTo implementations rather than a custom
// wire format.
func marshalProof(proof groth16.Proof) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("zkprover: serialize proof: %w", err)
	}
	return buf.Bytes(), nil
}

// unmarshalProof deserializes bytes produced by marshalProof back into
// a gnark Groth16 proof over BN254.
func unmarshalProof(b []byte) (groth16.Proof, error) {
	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("zkprover: deserialize proof: %w", err)
	}
	return proof, nil
}
