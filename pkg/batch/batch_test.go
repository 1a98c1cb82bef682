// Copyright 2025 Certen Protocol

package batch

import (
	"testing"

	"github.com/certen/zk-block-prover/pkg/domain"
	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/model"
)

func testChain(t *testing.T) (*domain.PartialBlockchain, model.BlockHeader) {
	t.Helper()
	pb := domain.NewPartialBlockchain()
	header := model.BlockHeader{BlockNum: 1, Timestamp: 100}
	pb.AddBlock(header)
	return pb, header
}

func testAccount(t *testing.T, prefix uint64) model.AccountId {
	t.Helper()
	id, err := model.NewAccountId(prefix, uint64(1)<<40)
	if err != nil {
		t.Fatalf("NewAccountId: %v", err)
	}
	return id
}

func baseTx(t *testing.T, id uint64, acct model.AccountId, header model.BlockHeader) model.ProvenTransaction {
	t.Helper()
	return model.ProvenTransaction{
		Id:                       field.WordFromUint64s(id, 0, 0, 0),
		AccountId:                acct,
		InitialStateCommitment:   field.EmptyWord,
		FinalStateCommitment:     field.WordFromUint64s(id, 1, 0, 0),
		ReferenceBlockNum:        header.BlockNum,
		ReferenceBlockCommitment: header.Hash(),
		ExpirationBlockNum:       header.BlockNum + 10,
	}
}

func TestEmptyTransactionBatchRejected(t *testing.T) {
	pb, header := testChain(t)
	_, err := New(nil, header, pb, nil, nil)
	if err != ErrEmptyTransactionBatch {
		t.Fatalf("got %v, want ErrEmptyTransactionBatch", err)
	}
}

func TestDuplicateTransactionRejected(t *testing.T) {
	pb, header := testChain(t)
	acct := testAccount(t, 1)
	tx := baseTx(t, 1, acct, header)
	_, err := New([]model.ProvenTransaction{tx, tx}, header, pb, nil, nil)
	if _, ok := err.(*DuplicateTransaction); !ok {
		t.Fatalf("got %v (%T), want *DuplicateTransaction", err, err)
	}
}

func TestExpiredTransactionRejected(t *testing.T) {
	pb, header := testChain(t)
	acct := testAccount(t, 1)
	tx := baseTx(t, 1, acct, header)
	tx.ExpirationBlockNum = header.BlockNum
	_, err := New([]model.ProvenTransaction{tx}, header, pb, nil, nil)
	if _, ok := err.(*ExpiredTransaction); !ok {
		t.Fatalf("got %v (%T), want *ExpiredTransaction", err, err)
	}
}

func TestAccountUpdateAggregationChains(t *testing.T) {
	pb, header := testChain(t)
	acct := testAccount(t, 1)
	tx0 := baseTx(t, 1, acct, header)
	tx0.InitialStateCommitment = field.WordFromUint64s(0, 0, 0, 0)
	tx0.FinalStateCommitment = field.WordFromUint64s(1, 0, 0, 0)
	tx1 := baseTx(t, 2, acct, header)
	tx1.InitialStateCommitment = field.WordFromUint64s(1, 0, 0, 0)
	tx1.FinalStateCommitment = field.WordFromUint64s(2, 0, 0, 0)

	b, err := New([]model.ProvenTransaction{tx0, tx1}, header, pb, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(b.AccountUpdates) != 1 {
		t.Fatalf("AccountUpdates len = %d, want 1", len(b.AccountUpdates))
	}
	u := b.AccountUpdates[0]
	if !u.InitialStateCommitment.Equal(tx0.InitialStateCommitment) || !u.FinalStateCommitment.Equal(tx1.FinalStateCommitment) {
		t.Fatalf("aggregated update does not span tx0.initial -> tx1.final")
	}
}

func TestAccountUpdateInitialStateMismatchRejected(t *testing.T) {
	pb, header := testChain(t)
	acct := testAccount(t, 1)
	tx0 := baseTx(t, 1, acct, header)
	tx0.FinalStateCommitment = field.WordFromUint64s(1, 0, 0, 0)
	tx1 := baseTx(t, 2, acct, header)
	tx1.InitialStateCommitment = field.WordFromUint64s(99, 0, 0, 0) // does not chain from tx0's final

	_, err := New([]model.ProvenTransaction{tx0, tx1}, header, pb, nil, nil)
	if _, ok := err.(*AccountUpdateInitialStateMismatch); !ok {
		t.Fatalf("got %v (%T), want *AccountUpdateInitialStateMismatch", err, err)
	}
}

func TestDuplicateInputNoteAcrossTransactionsRejected(t *testing.T) {
	pb, header := testChain(t)
	acctA := testAccount(t, 1)
	acctB := testAccount(t, 2)
	nullifier := model.Nullifier(field.WordFromUint64s(7, 7, 7, 7))

	tx0 := baseTx(t, 1, acctA, header)
	tx0.InputNotes = []model.InputNoteRef{{Nullifier: nullifier, NoteId: model.NoteId(field.WordFromUint64s(1, 0, 0, 0)), Authenticated: true}}
	tx1 := baseTx(t, 2, acctB, header)
	tx1.InputNotes = []model.InputNoteRef{{Nullifier: nullifier, NoteId: model.NoteId(field.WordFromUint64s(2, 0, 0, 0)), Authenticated: true}}

	_, err := New([]model.ProvenTransaction{tx0, tx1}, header, pb, nil, nil)
	if _, ok := err.(*DuplicateInputNote); !ok {
		t.Fatalf("got %v (%T), want *DuplicateInputNote", err, err)
	}
}

func TestErasureOfCircularNote(t *testing.T) {
	pb, header := testChain(t)
	acct := testAccount(t, 1)
	noteId := model.NoteId(field.WordFromUint64s(5, 0, 0, 0))

	creator := baseTx(t, 1, acct, header)
	creator.OutputNotes = []model.OutputNoteRef{{NoteId: noteId}}
	consumer := baseTx(t, 2, acct, header)
	consumer.InitialStateCommitment = creator.FinalStateCommitment
	consumer.InputNotes = []model.InputNoteRef{{NoteId: noteId, Nullifier: model.Nullifier(field.WordFromUint64s(9, 0, 0, 0)), Authenticated: false}}

	b, err := New([]model.ProvenTransaction{creator, consumer}, header, pb, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(b.InputNotes) != 0 {
		t.Fatalf("InputNotes = %v, want empty after erasure", b.InputNotes)
	}
	if len(b.OutputNotes) != 0 {
		t.Fatalf("OutputNotes = %v, want empty after erasure", b.OutputNotes)
	}
}

func TestOutputNotesSortedById(t *testing.T) {
	pb, header := testChain(t)
	acct := testAccount(t, 1)
	tx := baseTx(t, 1, acct, header)
	tx.OutputNotes = []model.OutputNoteRef{
		{NoteId: model.NoteId(field.WordFromUint64s(9, 0, 0, 0))},
		{NoteId: model.NoteId(field.WordFromUint64s(1, 0, 0, 0))},
	}
	b, err := New([]model.ProvenTransaction{tx}, header, pb, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(b.OutputNotes) != 2 || !b.OutputNotes[0].NoteId.Equal(model.NoteId(field.WordFromUint64s(1, 0, 0, 0))) {
		t.Fatalf("output notes not sorted by NoteId: %v", b.OutputNotes)
	}
}
