// Copyright 2025 Certen Protocol

package commitment

import (
	"testing"

	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
)

func sampleTx(t *testing.T, id uint64) model.ProvenTransaction {
	t.Helper()
	accID, err := model.NewAccountId(1, uint64(1)<<40)
	if err != nil {
		t.Fatalf("NewAccountId: %v", err)
	}
	return model.ProvenTransaction{
		Id:                     field.WordFromUint64s(id, 0, 0, 0),
		AccountId:              accID,
		ReferenceBlockNum:      1,
		ExpirationBlockNum:     10,
		InitialStateCommitment: field.EmptyWord,
		FinalStateCommitment:   field.EmptyWord,
	}
}

func TestBatchIdOrderSensitive(t *testing.T) {
	tx1 := sampleTx(t, 1)
	tx2 := sampleTx(t, 2)
	a := BatchId([]model.ProvenTransaction{tx1, tx2})
	b := BatchId([]model.ProvenTransaction{tx2, tx1})
	if a.Equal(b) {
		t.Fatalf("BatchId is not order-sensitive")
	}
}

func TestBatchIdDeterministic(t *testing.T) {
	txs := []model.ProvenTransaction{sampleTx(t, 1), sampleTx(t, 2)}
	a := BatchId(txs)
	b := BatchId(txs)
	if !a.Equal(b) {
		t.Fatalf("BatchId not deterministic")
	}
}

func TestTxCommitmentDeterministic(t *testing.T) {
	txs := []model.ProvenTransaction{sampleTx(t, 1), sampleTx(t, 2)}
	a := TxCommitment(txs)
	b := TxCommitment(txs)
	if !a.Equal(b) {
		t.Fatalf("TxCommitment not deterministic")
	}
}
