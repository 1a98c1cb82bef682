// Copyright 2025 Certen Protocol

package zkprover

import (
	"fmt"
	"io"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
)

// SaveKeys writes the compiled constraint system, proving key, and
// verification key to the given paths, mirroring the teacher's
// BLSZKProver.SaveKeys. Running the trusted setup is expensive; this
// lets cmd/zkprover-setup run it once and ship the artifacts.
func (g *Groth16Callback) SaveKeys(csPath, pkPath, vkPath string) error {
	if err := g.ensureSetup(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := writeTo(csPath, g.cs); err != nil {
		return fmt.Errorf("zkprover: write constraint system: %w", err)
	}
	if err := writeTo(pkPath, g.pk); err != nil {
		return fmt.Errorf("zkprover: write proving key: %w", err)
	}
	if err := writeTo(vkPath, g.vk); err != nil {
		return fmt.Errorf("zkprover: write verification key: %w", err)
	}
	return nil
}

// LoadKeys constructs a Groth16Callback from previously saved setup
// artifacts instead of running groth16.Setup, mirroring the teacher's
// BLSZKProver.InitializeFromKeys.
func LoadKeys(csPath, pkPath, vkPath string) (*Groth16Callback, error) {
	g := &Groth16Callback{
		cs: groth16.NewCS(ecc.BN254),
		pk: groth16.NewProvingKey(ecc.BN254),
		vk: groth16.NewVerifyingKey(ecc.BN254),
	}
	if err := readFrom(csPath, g.cs); err != nil {
		return nil, fmt.Errorf("zkprover: read constraint system: %w", err)
	}
	if err := readFrom(pkPath, g.pk); err != nil {
		return nil, fmt.Errorf("zkprover: read proving key: %w", err)
	}
	if err := readFrom(vkPath, g.vk); err != nil {
		return nil, fmt.Errorf("zkprover: read verification key: %w", err)
	}
	// Mark the setup as already done so ensureSetup never re-runs it.
	g.setupOnce.Do(func() {})
	return g, nil
}

func writeTo(path string, v io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = v.WriteTo(f)
	return err
}

func readFrom(path string, v io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = v.ReadFrom(f)
	return err
}
