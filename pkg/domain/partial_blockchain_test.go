// Copyright 2025 Certen Protocol

package domain

import (
	"testing"

	"github.com/certen/zk-block-prover/pkg/model"
)

func TestPartialBlockchainContainsBlock(t *testing.T) {
	pb := NewPartialBlockchain()
	header := model.BlockHeader{BlockNum: 1, Timestamp: 1}
	pb.AddBlock(header)

	if !pb.ContainsBlock(1) {
		t.Fatalf("ContainsBlock(1) = false right after AddBlock")
	}
	if pb.ContainsBlock(2) {
		t.Fatalf("ContainsBlock(2) = true for a block never added")
	}
}

func TestPartialBlockchainForgetRemovesBothViews(t *testing.T) {
	pb := NewPartialBlockchain()
	header := model.BlockHeader{BlockNum: 1, Timestamp: 1}
	pb.AddBlock(header)
	pb.Forget(1)

	if pb.ContainsBlock(1) {
		t.Fatalf("ContainsBlock(1) = true after Forget")
	}
	if _, ok := pb.Header(1); ok {
		t.Fatalf("Header(1) still present after Forget")
	}
}

func TestPartialBlockchainChainLength(t *testing.T) {
	pb := NewPartialBlockchain()
	pb.AddBlock(model.BlockHeader{BlockNum: 1})
	pb.AddBlock(model.BlockHeader{BlockNum: 2})
	if pb.ChainLength() != 2 {
		t.Fatalf("ChainLength() = %d, want 2", pb.ChainLength())
	}
}
