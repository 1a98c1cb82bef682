// Copyright 2025 Certen Protocol

package domain

import (
	"github.com/certen/zk-block-prover/pkg/field"
	"github.com/certen/zk-block-prover/pkg/mmr"
	"github.com/certen/zk-block-prover/pkg/model"
)

// PartialBlockchain wraps a PartialMmr and a map of tracked block
// headers. ContainsBlock requires both views to agree, resolving the
// Open Question in spec.md §9: a block is removed from this view only
// through Forget, which mutates both the MMR tracking and the header
// map in one step so callers cannot desync them.
type PartialBlockchain struct {
	mmr     *mmr.PartialMmr
	headers map[uint64]model.BlockHeader
}

// NewPartialBlockchain returns an empty partial blockchain.
func NewPartialBlockchain() *PartialBlockchain {
	return &PartialBlockchain{
		mmr:     mmr.NewPartial(),
		headers: make(map[uint64]model.BlockHeader),
	}
}

// AddBlock appends a block header as the next leaf, tracking it so it
// can be authenticated by future references.
func (p *PartialBlockchain) AddBlock(header model.BlockHeader) uint64 {
	idx := p.mmr.Add(header.Hash(), true)
	p.headers[header.BlockNum] = header
	return idx
}

// ChainLength returns the number of leaves (block headers) appended so far.
func (p *PartialBlockchain) ChainLength() uint64 {
	return p.mmr.ChainLength()
}

// ChainCommitment hashes the current peaks together — the value a
// block header's chain_commitment field must equal once this view is
// extended by the new header it is sealing.
func (p *PartialBlockchain) ChainCommitment() field.Word {
	return p.mmr.Root()
}

// ContainsBlock reports whether blockNum's header is tracked in both
// the header map and the underlying MMR.
func (p *PartialBlockchain) ContainsBlock(blockNum uint64) bool {
	header, ok := p.headers[blockNum]
	if !ok {
		return false
	}
	// Block numbers are leaf indices offset by one: block 0 never has a
	// header in this view (there is no "block before genesis"), so
	// block N's leaf index is N-1.
	if header.BlockNum == 0 {
		return false
	}
	return p.mmr.IsTracked(header.BlockNum - 1)
}

// Header returns the tracked header for a block number, if present.
func (p *PartialBlockchain) Header(blockNum uint64) (model.BlockHeader, bool) {
	h, ok := p.headers[blockNum]
	return h, ok
}

// Forget removes a block from this view: it untracks the corresponding
// MMR leaf and deletes the header map entry together, so the two views
// can never disagree about whether a block is still "contained".
func (p *PartialBlockchain) Forget(blockNum uint64) {
	if header, ok := p.headers[blockNum]; ok && header.BlockNum > 0 {
		p.mmr.Untrack(header.BlockNum - 1)
	}
	delete(p.headers, blockNum)
}

// Proof returns the MMR authentication proof for a tracked block.
func (p *PartialBlockchain) Proof(blockNum uint64) (mmr.Proof, error) {
	header, ok := p.headers[blockNum]
	if !ok {
		return mmr.Proof{}, mmr.ErrLeafNotTracked
	}
	return p.mmr.Proof(header.BlockNum - 1)
}
