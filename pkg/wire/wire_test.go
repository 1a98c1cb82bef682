// Copyright 2025 Certen Protocol

package wire

import (
	"bytes"
	"testing"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
)

func sampleTx(t *testing.T) model.ProvenTransaction {
	t.Helper()
	id, err := model.NewAccountId(1, uint64(1)<<40)
	if err != nil {
		t.Fatalf("NewAccountId: %v", err)
	}
	return model.ProvenTransaction{
		Id:                       field.WordFromUint64s(1, 2, 3, 4),
		AccountId:                id,
		InitialStateCommitment:   field.WordFromUint64s(5, 6, 7, 8),
		FinalStateCommitment:     field.WordFromUint64s(9, 10, 11, 12),
		ReferenceBlockNum:        3,
		ReferenceBlockCommitment: field.WordFromUint64s(13, 14, 15, 16),
		ExpirationBlockNum:       10,
	}
}

func TestTxHeaderBytesDeterministic(t *testing.T) {
	tx := sampleTx(t)
	a := TxHeaderBytes(tx)
	b := TxHeaderBytes(tx)
	if !bytes.Equal(a, b) {
		t.Fatalf("TxHeaderBytes not deterministic")
	}
}

func TestTxHeaderBytesVariesWithContent(t *testing.T) {
	tx1 := sampleTx(t)
	tx2 := sampleTx(t)
	tx2.ExpirationBlockNum = 99
	if bytes.Equal(TxHeaderBytes(tx1), TxHeaderBytes(tx2)) {
		t.Fatalf("TxHeaderBytes did not change with differing expiration")
	}
}

func TestBlockHeaderBytesDeterministic(t *testing.T) {
	h := model.BlockHeader{BlockNum: 1, Timestamp: 10}
	if !bytes.Equal(BlockHeaderBytes(h), BlockHeaderBytes(h)) {
		t.Fatalf("BlockHeaderBytes not deterministic")
	}
}

func TestBatchIDBytesDeterministic(t *testing.T) {
	ids := [][32]byte{field.WordFromUint64s(1, 0, 0, 0).Bytes(), field.WordFromUint64s(2, 0, 0, 0).Bytes()}
	a := BatchIDBytes(ids)
	b := BatchIDBytes(ids)
	if !bytes.Equal(a, b) {
		t.Fatalf("BatchIDBytes not deterministic")
	}
}

func TestBatchIDBytesOrderSensitive(t *testing.T) {
	id1 := field.WordFromUint64s(1, 0, 0, 0).Bytes()
	id2 := field.WordFromUint64s(2, 0, 0, 0).Bytes()
	a := BatchIDBytes([][32]byte{id1, id2})
	b := BatchIDBytes([][32]byte{id2, id1})
	if bytes.Equal(a, b) {
		t.Fatalf("BatchIDBytes is not order-sensitive")
	}
}
