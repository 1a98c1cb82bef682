// Copyright 2025 Certen Protocol
//
// Package batch implements ProposedBatch: the deterministic validation
// and aggregation step that turns an ordered list of already-proven
// transactions into a batch ready to be composed into a block. Grounded
// on the teacher's pkg/consensus/validator_block.go multi-step
// validate-then-aggregate shape (gather inputs, run ordered checks,
// assemble the accepted value), generalized from block-header checks to
// this module's batch algorithm.
package batch

import (
	"sort"

	"github.com/certen/zk-block-prover/pkg/commitment"
	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/metrics"
	"github.com/certen/zk-block-prover/pkg/model"
)

// New validates transactions against the reference block header and
// partial blockchain, aggregates per-account updates, resolves
// unauthenticated input notes against the supplied inclusion proofs,
// erases circular note pairs, and returns the resulting batch.
//
// rec may be nil; every outcome is still recorded when it is not.
func New(
	transactions []model.ProvenTransaction,
	referenceBlockHeader model.BlockHeader,
	partialBlockchain model.PartialBlockchainView,
	unauthenticatedNoteProofs map[model.NoteId]model.NoteInclusionProof,
	rec *metrics.Recorder,
) (*model.ProvenBatch, error) {
	batch, err := newBatch(transactions, referenceBlockHeader, partialBlockchain, unauthenticatedNoteProofs)
	if err != nil {
		rec.ObserveBatchOutcome(outcomeLabel(err))
		return nil, err
	}
	rec.ObserveBatchOutcome("ok")
	return batch, nil
}

func outcomeLabel(err error) string {
	switch err.(type) {
	case *DuplicateTransaction:
		return "DuplicateTransaction"
	case *ExpiredTransaction:
		return "ExpiredTransaction"
	case *TxReferenceBlockNotInPartialBlockchain:
		return "TxReferenceBlockNotInPartialBlockchain"
	case *TxReferenceBlockCommitmentMismatch:
		return "TxReferenceBlockCommitmentMismatch"
	case *AccountUpdateInitialStateMismatch:
		return "AccountUpdateInitialStateMismatch"
	case *DuplicateInputNote:
		return "DuplicateInputNote"
	case *DuplicateOutputNote:
		return "DuplicateOutputNote"
	case *UnauthenticatedInputNoteBlockNotInPartialBlockchain:
		return "UnauthenticatedInputNoteBlockNotInPartialBlockchain"
	case *UnauthenticatedNoteAuthenticationFailed:
		return "UnauthenticatedNoteAuthenticationFailed"
	}
	if err == ErrEmptyTransactionBatch {
		return "EmptyTransactionBatch"
	}
	return "error"
}

func newBatch(
	transactions []model.ProvenTransaction,
	referenceBlockHeader model.BlockHeader,
	partialBlockchain model.PartialBlockchainView,
	unauthenticatedNoteProofs map[model.NoteId]model.NoteInclusionProof,
) (*model.ProvenBatch, error) {
	// Step 1: empty batch.
	if len(transactions) == 0 {
		return nil, ErrEmptyTransactionBatch
	}

	batchReferenceBlockNum := referenceBlockHeader.BlockNum
	batchExpiration := transactions[0].ExpirationBlockNum

	// Step 2+3: duplicate/expired transactions; batch expiration = min.
	seenTx := make(map[field.Word]bool, len(transactions))
	for _, tx := range transactions {
		if seenTx[tx.Id] {
			return nil, &DuplicateTransaction{TxId: tx.Id}
		}
		seenTx[tx.Id] = true

		if tx.ExpirationBlockNum <= batchReferenceBlockNum {
			return nil, &ExpiredTransaction{
				TxId:                   tx.Id,
				ExpirationBlockNum:     tx.ExpirationBlockNum,
				BatchReferenceBlockNum: batchReferenceBlockNum,
			}
		}
		if tx.ExpirationBlockNum < batchExpiration {
			batchExpiration = tx.ExpirationBlockNum
		}
	}

	// Step 4: every transaction's reference block must be contained and
	// its commitment must match what the partial blockchain tracks.
	for _, tx := range transactions {
		if !partialBlockchain.ContainsBlock(tx.ReferenceBlockNum) {
			return nil, &TxReferenceBlockNotInPartialBlockchain{TxId: tx.Id, BlockNum: tx.ReferenceBlockNum}
		}
		header, _ := partialBlockchain.Header(tx.ReferenceBlockNum)
		if !header.Hash().Equal(tx.ReferenceBlockCommitment) {
			return nil, &TxReferenceBlockCommitmentMismatch{TxId: tx.Id, BlockNum: tx.ReferenceBlockNum}
		}
	}

	// Step 5: account update aggregation, grouped by first-appearance order.
	accountOrder := make([]model.AccountId, 0)
	groups := make(map[model.AccountId][]model.ProvenTransaction)
	for _, tx := range transactions {
		if _, ok := groups[tx.AccountId]; !ok {
			accountOrder = append(accountOrder, tx.AccountId)
		}
		groups[tx.AccountId] = append(groups[tx.AccountId], tx)
	}
	accountUpdates := make([]model.AccountUpdate, 0, len(accountOrder))
	for _, id := range accountOrder {
		group := groups[id]
		update := model.AccountUpdate{
			AccountId:              id,
			InitialStateCommitment: group[0].InitialStateCommitment,
			FinalStateCommitment:   group[len(group)-1].FinalStateCommitment,
		}
		for i, tx := range group {
			if i > 0 && !tx.InitialStateCommitment.Equal(group[i-1].FinalStateCommitment) {
				return nil, &AccountUpdateInitialStateMismatch{
					AccountId:       id,
					ExpectedInitial: group[i-1].FinalStateCommitment,
					ActualInitial:   tx.InitialStateCommitment,
					TxId:            tx.Id,
				}
			}
			update.Details = append(update.Details, tx.AccountUpdateDetails)
		}
		accountUpdates = append(accountUpdates, update)
	}

	// Step 6: input-note dedup, preserving first-appearance order.
	inputNotes := make([]model.InputNoteRef, 0)
	inputOwner := make(map[model.Nullifier]field.Word)
	for _, tx := range transactions {
		for _, note := range tx.InputNotes {
			if owner, ok := inputOwner[note.Nullifier]; ok {
				return nil, &DuplicateInputNote{Nullifier: note.Nullifier, FirstTxId: owner, SecondTxId: tx.Id}
			}
			inputOwner[note.Nullifier] = tx.Id
			inputNotes = append(inputNotes, note)
		}
	}

	// Step 7: output-note dedup.
	outputNotes := make([]model.OutputNoteRef, 0)
	outputOwner := make(map[model.NoteId]field.Word)
	for _, tx := range transactions {
		for _, note := range tx.OutputNotes {
			if owner, ok := outputOwner[note.NoteId]; ok {
				return nil, &DuplicateOutputNote{NoteId: note.NoteId, FirstTxId: owner, SecondTxId: tx.Id}
			}
			outputOwner[note.NoteId] = tx.Id
			outputNotes = append(outputNotes, note)
		}
	}

	// Step 8: authenticate unauthenticated input notes the caller
	// supplied proofs for.
	for i, note := range inputNotes {
		if note.Authenticated {
			continue
		}
		proof, ok := unauthenticatedNoteProofs[note.NoteId]
		if !ok {
			continue
		}
		if !partialBlockchain.ContainsBlock(proof.BlockNum) {
			return nil, &UnauthenticatedInputNoteBlockNotInPartialBlockchain{NoteId: note.NoteId, BlockNum: proof.BlockNum}
		}
		header, _ := partialBlockchain.Header(proof.BlockNum)
		// The note tree leaf this proof authenticates against is keyed
		// by NoteId alone here: InputNoteRef does not carry the note's
		// metadata (only the consuming transaction's output side does),
		// so the metadata-qualified leaf hash used when the note was
		// created cannot be recomputed from the consumer's view. This
		// is a documented simplification: a real deployment would carry
		// the note's metadata commitment alongside the inclusion proof.
		if !proof.MerklePath.Verify(header.NoteRoot, note.NoteId.Word(), proof.IndexInBlock) {
			return nil, &UnauthenticatedNoteAuthenticationFailed{NoteId: note.NoteId, BlockNum: proof.BlockNum}
		}
		inputNotes[i].Authenticated = true
		inputNotes[i].InclusionProof = &proof
	}

	// Step 9: erase circular notes (unauthenticated input == output in
	// this batch). Authenticated input notes are never erased.
	erasedOutputs := make(map[model.NoteId]bool)
	survivingInputs := inputNotes[:0:0]
	for _, note := range inputNotes {
		if !note.Authenticated {
			if _, produced := outputOwner[note.NoteId]; produced {
				erasedOutputs[note.NoteId] = true
				continue
			}
		}
		survivingInputs = append(survivingInputs, note)
	}
	survivingOutputs := make([]model.OutputNoteRef, 0, len(outputNotes))
	for _, note := range outputNotes {
		if erasedOutputs[note.NoteId] {
			continue
		}
		survivingOutputs = append(survivingOutputs, note)
	}

	// Step 10: final orderings. Input notes already in first-appearance
	// order; output notes sorted by NoteId.
	sort.Slice(survivingOutputs, func(i, j int) bool {
		return lessWord(survivingOutputs[i].NoteId.Word(), survivingOutputs[j].NoteId.Word())
	})

	// Step 11: batch ID.
	batchId := commitment.BatchId(transactions)

	return &model.ProvenBatch{
		Id:                       batchId,
		ReferenceBlockNum:        batchReferenceBlockNum,
		ReferenceBlockCommitment: referenceBlockHeader.Hash(),
		AccountUpdates:           accountUpdates,
		InputNotes:               survivingInputs,
		OutputNotes:              survivingOutputs,
		BatchExpirationBlockNum:  batchExpiration,
		Transactions:             transactions,
	}, nil
}

func lessWord(a, b field.Word) bool {
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return uint64(a[i]) < uint64(b[i])
		}
	}
	return false
}
