// Copyright 2025 Certen Protocol
//
// zkprover-setup runs BlockTransitionCircuit's Groth16 trusted setup once
// and writes the constraint system, proving key, and verification key to
// disk so a Groth16Callback built with zkprover.LoadKeys doesn't need to
// run the setup on every process start.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/certen/zk-block-prover/pkg/zkprover"
)

func main() {
	csPath := flag.String("cs", "block_transition.cs", "path to write the compiled constraint system")
	pkPath := flag.String("pk", "block_transition.pk", "path to write the Groth16 proving key")
	vkPath := flag.String("vk", "block_transition.vk", "path to write the Groth16 verification key")
	flag.Parse()

	cb := zkprover.NewGroth16Callback()
	if err := cb.SaveKeys(*csPath, *pkPath, *vkPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s, %s, %s\n", *csPath, *pkPath, *vkPath)
}
