// Copyright 2025 Certen Protocol

package block

import (
	"sort"
	"time"

	"github.com/certen/zk-block-prover/pkg/domain"
	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/metrics"
	"github.com/certen/zk-block-prover/pkg/model"
)

// New composes batches into a block sampling the timestamp from the
// wall clock. rec may be nil.
func New(inputs model.BlockInputs, batches []model.ProvenBatch, rec *metrics.Recorder) (*model.ProposedBlock, error) {
	return NewAt(inputs, batches, uint64(time.Now().Unix()), rec)
}

// NewAt composes batches into a block at an explicit timestamp — the
// test-only entry point spec.md §6 names alongside New.
func NewAt(inputs model.BlockInputs, batches []model.ProvenBatch, timestamp uint64, rec *metrics.Recorder) (*model.ProposedBlock, error) {
	b, err := newAt(inputs, batches, timestamp)
	if err != nil {
		rec.ObserveBlockOutcome(outcomeLabel(err))
		return nil, err
	}
	rec.ObserveBlockOutcome("ok")
	return b, nil
}

func outcomeLabel(err error) string {
	switch err.(type) {
	case *TooManyBatches:
		return "TooManyBatches"
	case *DuplicateBatch:
		return "DuplicateBatch"
	case *TimestampDoesNotIncreaseMonotonically:
		return "TimestampDoesNotIncreaseMonotonically"
	case *ChainLengthNotEqualToPreviousBlockNumber:
		return "ChainLengthNotEqualToPreviousBlockNumber"
	case *ChainRootNotEqualToPreviousBlockChainCommitment:
		return "ChainRootNotEqualToPreviousBlockChainCommitment"
	case *BatchReferenceBlockMissingFromChain:
		return "BatchReferenceBlockMissingFromChain"
	case *ExpiredBatch:
		return "ExpiredBatch"
	case *DuplicateInputNote:
		return "DuplicateInputNote"
	case *DuplicateOutputNote:
		return "DuplicateOutputNote"
	case *UnauthenticatedInputNoteBlockNotInPartialBlockchain:
		return "UnauthenticatedInputNoteBlockNotInPartialBlockchain"
	case *UnauthenticatedNoteAuthenticationFailed:
		return "UnauthenticatedNoteAuthenticationFailed"
	case *UnauthenticatedNoteConsumed:
		return "UnauthenticatedNoteConsumed"
	case *NullifierProofMissing:
		return "NullifierProofMissing"
	case *NullifierSpent:
		return "NullifierSpent"
	case *MissingAccountWitness:
		return "MissingAccountWitness"
	case *InconsistentAccountStateTransition:
		return "InconsistentAccountStateTransition"
	case *ConflictingBatchesUpdateSameAccount:
		return "ConflictingBatchesUpdateSameAccount"
	}
	return "error"
}

func newAt(inputs model.BlockInputs, batches []model.ProvenBatch, timestamp uint64) (*model.ProposedBlock, error) {
	prev := inputs.PrevBlockHeader

	// Step 2: too many batches. A zero-batch call is the explicitly
	// allowed "empty block" path (spec.md §8 scenario S13): it simply
	// falls through the rest of this algorithm with every per-batch
	// step vacuously satisfied, rather than being special-cased here.
	if len(batches) > domain.MaxBatchesPerBlock {
		return nil, &TooManyBatches{Count: len(batches), Limit: domain.MaxBatchesPerBlock}
	}

	// Step 3: duplicate batch IDs.
	seenBatch := make(map[field.Word]bool, len(batches))
	for _, b := range batches {
		if seenBatch[b.Id] {
			return nil, &DuplicateBatch{BatchId: b.Id}
		}
		seenBatch[b.Id] = true
	}

	// Step 4: timestamp monotonicity.
	if timestamp <= prev.Timestamp {
		return nil, &TimestampDoesNotIncreaseMonotonically{Timestamp: timestamp, PrevTimestamp: prev.Timestamp}
	}

	// Step 5: chain length and chain root consistency.
	if inputs.PartialBlockchain.ChainLength() != prev.BlockNum {
		return nil, &ChainLengthNotEqualToPreviousBlockNumber{
			ChainLength:  inputs.PartialBlockchain.ChainLength(),
			PrevBlockNum: prev.BlockNum,
		}
	}
	if prev.BlockNum > 0 {
		tracked, ok := inputs.PartialBlockchain.Header(prev.BlockNum)
		if !ok || !tracked.Hash().Equal(prev.Hash()) {
			return nil, &ChainRootNotEqualToPreviousBlockChainCommitment{BlockNum: prev.BlockNum}
		}
	}

	// Step 6: every batch's reference block must be no newer than the
	// previous block and must be present in the partial blockchain.
	for _, b := range batches {
		if b.ReferenceBlockNum > prev.BlockNum || !inputs.PartialBlockchain.ContainsBlock(b.ReferenceBlockNum) {
			return nil, &BatchReferenceBlockMissingFromChain{BatchId: b.Id, BlockNum: b.ReferenceBlockNum}
		}
	}

	// Step 7: expired batch.
	sealingBlockNum := prev.BlockNum + 1
	for _, b := range batches {
		if b.BatchExpirationBlockNum <= sealingBlockNum {
			return nil, &ExpiredBatch{BatchId: b.Id, ExpirationBlockNum: b.BatchExpirationBlockNum, AtBlockNum: sealingBlockNum}
		}
	}

	// Step 8: cross-batch input/output note dedup.
	inputOwner := make(map[model.Nullifier]field.Word)
	outputOwner := make(map[model.NoteId]field.Word)
	for _, b := range batches {
		for _, note := range b.InputNotes {
			if owner, ok := inputOwner[note.Nullifier]; ok {
				return nil, &DuplicateInputNote{Nullifier: note.Nullifier, FirstBatchId: owner, SecondBatchId: b.Id}
			}
			inputOwner[note.Nullifier] = b.Id
		}
		for _, note := range b.OutputNotes {
			if owner, ok := outputOwner[note.NoteId]; ok {
				return nil, &DuplicateOutputNote{NoteId: note.NoteId, FirstBatchId: owner, SecondBatchId: b.Id}
			}
			outputOwner[note.NoteId] = b.Id
		}
	}

	// Step 9: unauthenticated-note resolution at block scope. Track
	// erasure against output notes produced by an *earlier* batch in
	// this same block (first-come basis over batch order).
	producedSoFar := make(map[model.NoteId]bool)
	erasedNotes := make(map[model.NoteId]bool)
	outputBatches := make([][]model.OutputNoteRef, len(batches))
	survivingNullifiers := make(map[model.Nullifier]bool)

	for _, b := range batches {
		for _, note := range b.InputNotes {
			if note.Authenticated {
				survivingNullifiers[note.Nullifier] = true
				continue
			}
			if proof, ok := inputs.UnauthenticatedNoteProofs[note.NoteId]; ok {
				if !inputs.PartialBlockchain.ContainsBlock(proof.BlockNum) {
					return nil, &UnauthenticatedInputNoteBlockNotInPartialBlockchain{NoteId: note.NoteId, BlockNum: proof.BlockNum}
				}
				header, _ := inputs.PartialBlockchain.Header(proof.BlockNum)
				if !proof.MerklePath.Verify(header.NoteRoot, note.NoteId.Word(), proof.IndexInBlock) {
					return nil, &UnauthenticatedNoteAuthenticationFailed{NoteId: note.NoteId, BlockNum: proof.BlockNum}
				}
				survivingNullifiers[note.Nullifier] = true
				continue
			}
			if producedSoFar[note.NoteId] {
				erasedNotes[note.NoteId] = true
				continue
			}
			return nil, &UnauthenticatedNoteConsumed{Nullifier: note.Nullifier}
		}
		for _, note := range b.OutputNotes {
			producedSoFar[note.NoteId] = true
		}
	}
	for bi, b := range batches {
		surviving := make([]model.OutputNoteRef, 0, len(b.OutputNotes))
		for _, note := range b.OutputNotes {
			if erasedNotes[note.NoteId] {
				continue
			}
			surviving = append(surviving, note)
		}
		sort.Slice(surviving, func(i, j int) bool { return lessWord(surviving[i].NoteId.Word(), surviving[j].NoteId.Word()) })
		outputBatches[bi] = surviving
	}

	// Step 10: nullifier-witness check for every surviving nullifier.
	nullifiersToCreate := make(map[model.Nullifier]uint64, len(survivingNullifiers))
	for n := range survivingNullifiers {
		witness, ok := inputs.NullifierWitnesses[n]
		if !ok {
			return nil, &NullifierProofMissing{Nullifier: n}
		}
		if witness.IsSpent() {
			return nil, &NullifierSpent{Nullifier: n, SpentAtBlock: witness.SpentAtBlock()}
		}
		nullifiersToCreate[n] = sealingBlockNum
	}

	// Step 11: account-witness check and cross-batch aggregation. Group
	// this block's account updates by account ID in first-appearance
	// order across batches, chaining and cross-checking as we go.
	accountOrder := make([]model.AccountId, 0)
	firstBatchId := make(map[model.AccountId]field.Word)
	aggregated := make(map[model.AccountId]*model.AccountUpdate)

	for _, b := range batches {
		for _, update := range b.AccountUpdates {
			existing, seen := aggregated[update.AccountId]
			if !seen {
				witness, ok := inputs.AccountWitnesses[update.AccountId]
				if !ok {
					return nil, &MissingAccountWitness{AccountId: update.AccountId}
				}
				if !witness.StateCommitment.Equal(update.InitialStateCommitment) {
					return nil, &InconsistentAccountStateTransition{
						AccountId:                 update.AccountId,
						StateCommitment:           witness.StateCommitment,
						RemainingStateCommitments: []field.Word{update.InitialStateCommitment},
					}
				}
				accountOrder = append(accountOrder, update.AccountId)
				firstBatchId[update.AccountId] = b.Id
				upd := update
				aggregated[update.AccountId] = &upd
				continue
			}
			if !update.InitialStateCommitment.Equal(existing.FinalStateCommitment) {
				if update.InitialStateCommitment.Equal(existing.InitialStateCommitment) {
					return nil, &ConflictingBatchesUpdateSameAccount{
						AccountId:              update.AccountId,
						InitialStateCommitment: existing.InitialStateCommitment,
						FirstBatchId:           firstBatchId[update.AccountId],
						SecondBatchId:          b.Id,
					}
				}
				return nil, &InconsistentAccountStateTransition{
					AccountId:                 update.AccountId,
					StateCommitment:           existing.FinalStateCommitment,
					RemainingStateCommitments: []field.Word{update.InitialStateCommitment},
				}
			}
			existing.FinalStateCommitment = update.FinalStateCommitment
			existing.Details = append(existing.Details, update.Details...)
		}
	}
	accountUpdates := make([]model.AccountUpdate, 0, len(accountOrder))
	for _, id := range accountOrder {
		accountUpdates = append(accountUpdates, *aggregated[id])
	}

	// Step 12: assemble the proposed block.
	return &model.ProposedBlock{
		BlockNum:           sealingBlockNum,
		Timestamp:          timestamp,
		PrevBlockHeader:    prev,
		ChainCommitment:    inputs.PartialBlockchain.ChainCommitment(),
		AccountUpdates:     accountUpdates,
		NullifiersToCreate: nullifiersToCreate,
		OutputNoteBatches:  outputBatches,
		Batches:            batches,
		AccountWitnesses:   inputs.AccountWitnesses,
		NullifierWitnesses: inputs.NullifierWitnesses,
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
