// Copyright 2025 Certen Protocol

package mmr

import "github.com/certen/zk-block-prover/pkg/field"

// PartialMmr tracks a subset of an Mmr's leaves along with their
// authentication paths, per spec.md §4.1. Add/Untrack mirror the
// "add(hash, track)" / "untrack(leaf_index)" operations named there.
type PartialMmr struct {
	inner   *Mmr
	tracked map[uint64]bool
}

// NewPartial returns an empty PartialMmr.
func NewPartial() *PartialMmr {
	return &PartialMmr{inner: New(), tracked: make(map[uint64]bool)}
}

// Add appends a leaf, optionally tracking it for future proof queries,
// and returns its index.
func (p *PartialMmr) Add(leaf field.Word, track bool) uint64 {
	idx := p.inner.Add(leaf)
	if track {
		p.tracked[idx] = true
	}
	return idx
}

// Track marks an already-appended leaf as tracked.
func (p *PartialMmr) Track(index uint64) error {
	if index >= p.inner.ChainLength() {
		return ErrIndexOutOfRange
	}
	p.tracked[index] = true
	return nil
}

// Untrack stops tracking a leaf; it remains part of the chain (and
// still contributes to the root) but this view no longer authenticates it.
func (p *PartialMmr) Untrack(index uint64) {
	delete(p.tracked, index)
}

// IsTracked reports whether a leaf index is currently tracked.
func (p *PartialMmr) IsTracked(index uint64) bool {
	return p.tracked[index]
}

// ChainLength returns the number of leaves appended so far.
func (p *PartialMmr) ChainLength() uint64 {
	return p.inner.ChainLength()
}

// Root hashes the current peaks together.
func (p *PartialMmr) Root() field.Word {
	return p.inner.Root()
}

// Proof returns the authentication proof for a tracked leaf.
func (p *PartialMmr) Proof(index uint64) (Proof, error) {
	if !p.tracked[index] {
		return Proof{}, ErrLeafNotTracked
	}
	return p.inner.OpenProof(index)
}

// Verify checks that leaf, combined with proof and the current set of
// peaks, recomputes to root.
func (p *PartialMmr) Verify(root, leaf field.Word, proof Proof) bool {
	peaks := p.inner.Peaks()
	if proof.PeakIndex < 0 || proof.PeakIndex >= len(peaks) {
		return false
	}
	localIndex := localIndexWithinPeak(p.inner.leaves, proof.PeakIndex, proof.LeafIndex)
	recomputed := proof.Path.ComputeRoot(leaf, localIndex)
	peaksCopy := append([]field.Word(nil), peaks...)
	peaksCopy[proof.PeakIndex] = recomputed
	return field.HashWords(peaksCopy...).Equal(root)
}

func localIndexWithinPeak(leaves []field.Word, peakIndex int, globalIndex uint64) uint64 {
	n := uint64(len(leaves))
	var offset uint64
	idx := 0
	for size := highestPowerOfTwo(n); size > 0; size >>= 1 {
		if n&size == 0 {
			continue
		}
		if idx == peakIndex {
			return globalIndex - offset
		}
		offset += size
		idx++
	}
	return 0
}
