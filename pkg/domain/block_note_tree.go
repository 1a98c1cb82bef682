// Copyright 2025 Certen Protocol

package domain

import "github.com/certen/zk-block-prover/pkg/field"

// MaxBatchesPerBlock bounds the level-1 fixed-arity tree's width.
const MaxBatchesPerBlock = 64

// BlockNoteTree is the two-level tree described in spec.md §4.2: level
// 1 is a fixed-arity tree over up to MaxBatchesPerBlock batches, level
// 2 is, per batch, a contiguous-leaf tree over that batch's output
// notes in NoteId order.
type BlockNoteTree struct {
	batchRoots []field.Word
	root       field.Word
}

// NewBlockNoteTree builds the tree from the erasure-applied per-batch
// output note lists, each already ordered by NoteId. A batch with no
// output notes contributes the empty subtree root.
func NewBlockNoteTree(perBatchLeaves [][]field.Word) *BlockNoteTree {
	batchRoots := make([]field.Word, len(perBatchLeaves))
	for i, leaves := range perBatchLeaves {
		batchRoots[i] = contiguousLeafRoot(leaves)
	}
	return &BlockNoteTree{
		batchRoots: batchRoots,
		root:       fixedArityRoot(batchRoots, MaxBatchesPerBlock),
	}
}

// Root returns the block note root.
func (t *BlockNoteTree) Root() field.Word {
	return t.root
}

// BatchRoot returns the note-subtree root contributed by the batch at
// the given index.
func (t *BlockNoteTree) BatchRoot(batchIndex int) field.Word {
	if batchIndex < 0 || batchIndex >= len(t.batchRoots) {
		return field.EmptyWord
	}
	return t.batchRoots[batchIndex]
}

// contiguousLeafRoot merges an arbitrary number of leaves (padded with
// the empty word up to the next power of two) bottom-up. Zero leaves
// yields the empty word, the protocol's empty-subtree marker.
func contiguousLeafRoot(leaves []field.Word) field.Word {
	if len(leaves) == 0 {
		return field.EmptyWord
	}
	size := 1
	for size < len(leaves) {
		size <<= 1
	}
	level := make([]field.Word, size)
	copy(level, leaves)
	for i := len(leaves); i < size; i++ {
		level[i] = field.EmptyWord
	}
	for len(level) > 1 {
		next := make([]field.Word, len(level)/2)
		for i := range next {
			next[i] = field.Merge2(level[2*i], level[2*i+1])
		}
		level = next
	}
	return level[0]
}

// fixedArityRoot merges up to `width` roots (padded with the empty
// word) into a single fixed-depth binary tree root.
func fixedArityRoot(roots []field.Word, width int) field.Word {
	level := make([]field.Word, width)
	for i := range level {
		if i < len(roots) {
			level[i] = roots[i]
		} else {
			level[i] = field.EmptyWord
		}
	}
	for len(level) > 1 {
		next := make([]field.Word, len(level)/2)
		for i := range next {
			next[i] = field.Merge2(level[2*i], level[2*i+1])
		}
		level = next
	}
	return level[0]
}
