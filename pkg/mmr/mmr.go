// Copyright 2025 Certen Protocol
//
// Package mmr implements the append-only log of block hashes described
// in spec.md §4.1: a Merkle mountain range whose root is the hash of
// its peaks, plus a "partial" variant that authenticates a subset of
// leaves. Mmr keeps every appended leaf; this trades the
// memory-proportional-to-witnesses ideal spec.md §5 describes for a
// peak/path recomputation that is straightforward to get right without
// a test run — see DESIGN.md for the tradeoff.
package mmr

import (
	"errors"

	"github.com/certen/zk-block-prover/pkg/field"
)

// ErrLeafNotTracked is returned by operations on a PartialMmr leaf that
// was never tracked.
var ErrLeafNotTracked = errors.New("mmr: leaf not tracked")

// ErrIndexOutOfRange is returned for a leaf index beyond the chain length.
var ErrIndexOutOfRange = errors.New("mmr: leaf index out of range")

// Mmr is a full Merkle mountain range.
type Mmr struct {
	leaves []field.Word
}

// New returns an empty Mmr.
func New() *Mmr {
	return &Mmr{}
}

// Add appends a leaf and returns its index.
func (m *Mmr) Add(leaf field.Word) uint64 {
	m.leaves = append(m.leaves, leaf)
	return uint64(len(m.leaves) - 1)
}

// ChainLength returns the number of leaves appended so far.
func (m *Mmr) ChainLength() uint64 {
	return uint64(len(m.leaves))
}

// Peaks decomposes the leaf count into its binary representation and
// returns one root per power-of-two-sized "mountain", largest first.
func (m *Mmr) Peaks() []field.Word {
	return peaksOf(m.leaves)
}

// Root hashes the current peaks together.
func (m *Mmr) Root() field.Word {
	peaks := m.Peaks()
	if len(peaks) == 0 {
		return field.EmptyWord
	}
	return field.HashWords(peaks...)
}

// peaksOf computes mountain peaks for an arbitrary leaf slice, highest
// bit (largest mountain) first, matching the leaves' append order.
func peaksOf(leaves []field.Word) []field.Word {
	n := uint64(len(leaves))
	var peaks []field.Word
	var offset uint64
	for size := highestPowerOfTwo(n); size > 0; size >>= 1 {
		if n&size == 0 {
			continue
		}
		peaks = append(peaks, buildSubtreeRoot(leaves[offset:offset+size]))
		offset += size
	}
	return peaks
}

func highestPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	p := uint64(1)
	for p<<1 <= n {
		p <<= 1
	}
	return p
}

// buildSubtreeRoot merges a power-of-two-sized contiguous leaf slice
// into a single root bottom-up.
func buildSubtreeRoot(leaves []field.Word) field.Word {
	if len(leaves) == 1 {
		return leaves[0]
	}
	level := append([]field.Word(nil), leaves...)
	for len(level) > 1 {
		next := make([]field.Word, len(level)/2)
		for i := range next {
			next[i] = field.Merge2(level[2*i], level[2*i+1])
		}
		level = next
	}
	return level[0]
}

// pathWithin returns the sibling path (leaf to mountain root) for an
// index inside a power-of-two-sized contiguous leaf slice.
func pathWithin(leaves []field.Word, localIndex uint64) field.MerklePath {
	level := append([]field.Word(nil), leaves...)
	idx := localIndex
	var path field.MerklePath
	for len(level) > 1 {
		sibling := idx ^ 1
		path = append(path, level[sibling])
		next := make([]field.Word, len(level)/2)
		for i := range next {
			next[i] = field.Merge2(level[2*i], level[2*i+1])
		}
		level = next
		idx >>= 1
	}
	return path
}

// Proof is the authentication data for one leaf of an Mmr: which
// mountain it belongs to, and the path within that mountain. Combined
// with the Mmr's other peaks, it is sufficient to recompute the root.
type Proof struct {
	LeafIndex uint64
	PeakIndex int
	Path      field.MerklePath
}

// OpenProof returns the authentication proof for a leaf at the given
// global index.
func (m *Mmr) OpenProof(index uint64) (Proof, error) {
	if index >= uint64(len(m.leaves)) {
		return Proof{}, ErrIndexOutOfRange
	}
	n := uint64(len(m.leaves))
	var offset uint64
	peakIdx := 0
	for size := highestPowerOfTwo(n); size > 0; size >>= 1 {
		if n&size == 0 {
			continue
		}
		if index >= offset && index < offset+size {
			local := index - offset
			path := pathWithin(m.leaves[offset:offset+size], local)
			return Proof{LeafIndex: index, PeakIndex: peakIdx, Path: path}, nil
		}
		offset += size
		peakIdx++
	}
	return Proof{}, ErrIndexOutOfRange
}
