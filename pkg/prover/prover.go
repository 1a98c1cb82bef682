// Copyright 2025 Certen Protocol
package prover

import (
	"context"
	"time"

	"github.com/certen/zk-block-prover/pkg/commitment"
	"github.com/certen/zk-block-prover/pkg/config"
	"github.com/certen/zk-block-prover/pkg/domain"
	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/metrics"
	"github.com/certen/zk-block-prover/pkg/model"
)

// Witnesses bundles the public roots and private deltas a Callback
// needs to produce a proof of this block's state transition: the four
// roots the circuit's public inputs commit to, plus the per-account
// deltas and per-nullifier insertions it must prove were applied
// correctly to go from the "prev" roots to the "new" ones.
type Witnesses struct {
	PrevAccountRoot     field.Word
	NewAccountRoot      field.Word
	PrevNullifierRoot   field.Word
	NewNullifierRoot    field.Word
	AccountUpdates      []model.AccountUpdate
	NullifiersToCreate  map[model.Nullifier]uint64
}

// Proof is the opaque output of a Callback: bytes to be embedded as the
// new block header's proof_commitment (via its hash), plus the public
// inputs the verifier checks it against.
type Proof struct {
	Bytes       []byte
	PublicInputs []field.Word
}

// Callback is the external zk-prover hook LocalBlockProver.Prove invokes
// to fill proof_commitment (spec.md §4.5 step 8), out of scope for the
// core itself to implement. pkg/zkprover ships one concrete
// implementation (Groth16Callback.Prove) assignable to this type.
type Callback func(ctx context.Context, w Witnesses) (Proof, error)

// LocalBlockProver applies a ProposedBlock's state transition against
// partial account/nullifier trees and assembles the resulting
// ProvenBlock. Grounded on the teacher's ValidatorBlockBuilder
// (pkg/consensus/validator_block_builder.go): a small config-holding
// struct whose Prove method validates inputs end to end and
// assembles an immutable result, never itself the source of truth.
type LocalBlockProver struct {
	minProofSecurityLevel uint32
	limits                config.ProtocolLimits
	rec                   *metrics.Recorder
}

// New constructs a LocalBlockProver for a minimum proof security level
// (bits), reading batch/block size limits from protocol (nil uses
// config.Default()). rec may be nil.
func New(minProofSecurityLevel uint32, protocol *config.Protocol, rec *metrics.Recorder) *LocalBlockProver {
	if protocol == nil {
		protocol = config.Default()
	}
	return &LocalBlockProver{
		minProofSecurityLevel: minProofSecurityLevel,
		limits:                protocol.Limits,
		rec:                   rec,
	}
}

// Prove applies block's state transition, invokes cb to fill
// proof_commitment, and returns the resulting ProvenBlock. cb may be
// nil, in which case proof_commitment is left empty (equivalent to
// ProveWithoutBatchVerification).
func (p *LocalBlockProver) Prove(ctx context.Context, block model.ProposedBlock, cb Callback) (*model.ProvenBlock, error) {
	start := time.Now()
	pb, err := p.prove(ctx, block, cb)
	p.rec.ObserveProveDuration(time.Since(start))
	if err != nil {
		p.rec.ObserveBlockOutcome(outcomeLabel(err))
		return nil, err
	}
	p.rec.ObserveBlockOutcome("ok")
	return pb, nil
}

// ProveWithoutBatchVerification runs the same state transition but
// never invokes an external prover callback, leaving proof_commitment
// empty. Test-only entry point named directly in spec.md §6.
func (p *LocalBlockProver) ProveWithoutBatchVerification(block model.ProposedBlock) (*model.ProvenBlock, error) {
	return p.Prove(context.Background(), block, nil)
}

func outcomeLabel(err error) string {
	switch err.(type) {
	case *StaleAccountTreeRoot:
		return "StaleAccountTreeRoot"
	case *StaleNullifierTreeRoot:
		return "StaleNullifierTreeRoot"
	case *AccountWitnessTracking:
		return "AccountWitnessTracking"
	case *AccountIdPrefixDuplicate:
		return "AccountIdPrefixDuplicate"
	case *NullifierWitnessRootMismatch:
		return "NullifierWitnessRootMismatch"
	case *BlockNoteTreeConstructionFailed:
		return "BlockNoteTreeConstructionFailed"
	}
	return "error"
}

func (p *LocalBlockProver) prove(ctx context.Context, block model.ProposedBlock, cb Callback) (*model.ProvenBlock, error) {
	prev := block.PrevBlockHeader

	// Step 1: partial account tree.
	accountWitnesses := make([]model.AccountWitness, 0, len(block.AccountWitnesses))
	for _, w := range block.AccountWitnesses {
		accountWitnesses = append(accountWitnesses, w)
	}
	accountTree, err := domain.NewAccountTreeFromWitnesses(accountWitnesses)
	if err != nil {
		return nil, &AccountWitnessTracking{Source: err}
	}
	if !accountTree.Root().Equal(prev.AccountRoot) {
		return nil, &StaleAccountTreeRoot{Computed: accountTree.Root(), Expected: prev.AccountRoot}
	}
	p.rec.SetAccountTreeSize(len(accountWitnesses))

	// Step 2: partial nullifier tree.
	nullifierWitnesses := make([]model.NullifierWitness, 0, len(block.NullifierWitnesses))
	for _, w := range block.NullifierWitnesses {
		nullifierWitnesses = append(nullifierWitnesses, w)
	}
	nullifierTree, err := domain.NewNullifierTreeFromWitnesses(nullifierWitnesses)
	if err != nil {
		return nil, &AccountWitnessTracking{Source: err}
	}
	if !nullifierTree.Root().Equal(prev.NullifierRoot) {
		return nil, &StaleNullifierTreeRoot{Computed: nullifierTree.Root(), Expected: prev.NullifierRoot}
	}
	p.rec.SetNullifierTreeSize(len(nullifierWitnesses))

	// Step 3: apply per-account updates.
	for _, update := range block.AccountUpdates {
		if _, err := accountTree.Insert(update.AccountId, update.FinalStateCommitment); err != nil {
			if err == domain.ErrDuplicateIdPrefix {
				return nil, &AccountIdPrefixDuplicate{AccountId: update.AccountId, Prefix: update.AccountId.Prefix()}
			}
			return nil, &AccountWitnessTracking{Source: err}
		}
	}

	// Step 4: mark nullifiers spent.
	for n, blockNum := range block.NullifiersToCreate {
		if _, err := nullifierTree.MarkSpent(n, blockNum); err != nil {
			return nil, &NullifierWitnessRootMismatch{Nullifier: n}
		}
	}

	// Step 5: block note tree, from the erasure-applied per-batch output
	// note lists already computed at block-composition time.
	perBatchLeaves := make([][]field.Word, len(block.OutputNoteBatches))
	for i, notes := range block.OutputNoteBatches {
		if p.limits.MaxOutputNotesPerBatch > 0 && uint32(len(notes)) > p.limits.MaxOutputNotesPerBatch {
			return nil, &BlockNoteTreeConstructionFailed{BatchIndex: i, Count: len(notes), Limit: p.limits.MaxOutputNotesPerBatch}
		}
		leaves := make([]field.Word, len(notes))
		for j, note := range notes {
			leaves[j] = note.LeafHash()
		}
		perBatchLeaves[i] = leaves
	}
	noteTree := domain.NewBlockNoteTree(perBatchLeaves)

	// Step 6: chain commitment was already computed at proposal time
	// against a partial blockchain that includes prev_block_header as
	// its latest tracked leaf; the prover carries it through unchanged.
	chainCommitment := block.ChainCommitment

	// Step 7: assemble the new header.
	header := model.BlockHeader{
		Version:             prev.Version,
		PrevBlockCommitment: prev.Hash(),
		ChainCommitment:     chainCommitment,
		AccountRoot:         accountTree.Root(),
		NullifierRoot:       nullifierTree.Root(),
		NoteRoot:            noteTree.Root(),
		TxCommitment:        commitment.TxCommitment(transactionsOf(block)),
		TxKernelCommitment:  model.TxKernelCommitment,
		BlockNum:            block.BlockNum,
		Timestamp:           block.Timestamp,
	}

	// Step 8: optional external zk-prover callback.
	if cb != nil {
		proof, err := cb(ctx, Witnesses{
			PrevAccountRoot:    prev.AccountRoot,
			NewAccountRoot:     header.AccountRoot,
			PrevNullifierRoot:  prev.NullifierRoot,
			NewNullifierRoot:   header.NullifierRoot,
			AccountUpdates:     block.AccountUpdates,
			NullifiersToCreate: block.NullifiersToCreate,
		})
		if err != nil {
			return nil, err
		}
		header.ProofCommitment = commitment.HashBytes(proof.Bytes)
	}

	// Step 9: assemble the proven block.
	return &model.ProvenBlock{
		Header:            header,
		UpdatedAccounts:   block.AccountUpdates,
		CreatedNullifiers: block.NullifiersToCreate,
		OutputNoteBatches: block.OutputNoteBatches,
		Transactions:      transactionsOf(block),
	}, nil
}

func transactionsOf(block model.ProposedBlock) []model.ProvenTransaction {
	txs := make([]model.ProvenTransaction, 0)
	for _, b := range block.Batches {
		txs = append(txs, b.Transactions...)
	}
	return txs
}
