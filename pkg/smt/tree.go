// Copyright 2025 Certen Protocol
//
// Package smt implements a generic partial sparse Merkle tree: a
// fixed-depth, node-cache-backed tree whose leaves are addressed by a
// uint64 index. It is shared by two domain shapes: SimpleSmt-style
// trees indexed directly by a 64-bit key (AccountTree), and Smt-style
// trees keyed by a word hash projected down to a 64-bit path
// (NullifierTree) — both described in spec.md §4.1 as sharing the same
// partial-tree-from-witnesses construction.
//
// A Tree only ever knows the nodes it has been given: either as leaf
// witnesses supplied at construction time, or as nodes derived while
// recomputing a path during Insert. There is no notion of "the rest of
// the tree is empty" — operations against an index whose leaf was never
// supplied fail with ErrTreeRootConflict, matching the partial-SMT
// contract in spec.md §4.1 ("insert on an untracked leaf fails with
// TreeRootConflict").
package smt

import (
	"errors"

	"github.com/certen/zk-block-prover/pkg/field"
)

// ErrTreeRootConflict is returned when an operation touches a leaf this
// partial tree was not given a witness for, or when two supplied
// witnesses disagree on a shared ancestor node.
var ErrTreeRootConflict = errors.New("smt: tree root conflict")

// ErrIndexOutOfRange is returned when a key does not fit in the tree's depth.
var ErrIndexOutOfRange = errors.New("smt: index out of range for tree depth")

type nodeKey struct {
	level uint8
	index uint64
}

// Witness is a single leaf's authentication path, as supplied by a
// caller who read it from some prior committed tree.
type Witness struct {
	Index uint64
	Value field.Word
	Path  field.MerklePath // length must equal the tree's depth, leaf-to-root
}

// Tree is a partial sparse Merkle tree of fixed depth built from a set
// of leaf witnesses. Depth 0..64 is supported (leaf indices fit a uint64;
// at depth 64 every uint64 is a valid index).
type Tree struct {
	depth   uint8
	nodes   map[nodeKey]field.Word
	tracked map[uint64]bool
}

// New builds an empty partial tree of the given depth (no tracked leaves).
func New(depth uint8) *Tree {
	return &Tree{
		depth:   depth,
		nodes:   make(map[nodeKey]field.Word),
		tracked: make(map[uint64]bool),
	}
}

// Depth returns the tree's fixed depth.
func (t *Tree) Depth() uint8 {
	return t.depth
}

// FromWitnesses builds a partial tree from a set of leaf witnesses,
// verifying that all witnesses agree on shared ancestor nodes. Returns
// the resulting root alongside the tree.
func FromWitnesses(depth uint8, witnesses []Witness) (*Tree, field.Word, error) {
	t := New(depth)
	for _, w := range witnesses {
		if err := t.trackWitness(w); err != nil {
			return nil, field.EmptyWord, err
		}
	}
	return t, t.Root(), nil
}

func (t *Tree) trackWitness(w Witness) error {
	if t.depth > 0 && t.depth < 64 && w.Index >= (uint64(1)<<t.depth) {
		return ErrIndexOutOfRange
	}
	if len(w.Path) != int(t.depth) {
		return ErrTreeRootConflict
	}

	if err := t.setNode(nodeKey{0, w.Index}, w.Value); err != nil {
		return err
	}
	t.tracked[w.Index] = true

	cur := w.Value
	idx := w.Index
	for level := uint8(0); level < t.depth; level++ {
		sibling := w.Path[level]
		siblingIdx := idx ^ 1
		if err := t.setNode(nodeKey{level, siblingIdx}, sibling); err != nil {
			return err
		}

		var left, right field.Word
		if idx%2 == 0 {
			left, right = cur, sibling
		} else {
			left, right = sibling, cur
		}
		cur = field.Merge2(left, right)
		idx >>= 1
		if err := t.setNode(nodeKey{level + 1, idx}, cur); err != nil {
			return err
		}
	}
	return nil
}

// setNode records a node value, returning ErrTreeRootConflict if a
// different value is already recorded at that position.
func (t *Tree) setNode(k nodeKey, v field.Word) error {
	if existing, ok := t.nodes[k]; ok {
		if !existing.Equal(v) {
			return ErrTreeRootConflict
		}
		return nil
	}
	t.nodes[k] = v
	return nil
}

// IsTracked reports whether index has a known leaf witness.
func (t *Tree) IsTracked(index uint64) bool {
	return t.tracked[index]
}

// Get returns the current value at a tracked leaf index.
func (t *Tree) Get(index uint64) (field.Word, bool) {
	v, ok := t.nodes[nodeKey{0, index}]
	return v, ok
}

// Insert sets the value at a tracked leaf index and recomputes every
// ancestor node on its path up to the root, returning the previous
// value. Inserting at an untracked index fails with ErrTreeRootConflict.
func (t *Tree) Insert(index uint64, value field.Word) (field.Word, error) {
	if !t.tracked[index] {
		return field.EmptyWord, ErrTreeRootConflict
	}
	old := t.nodes[nodeKey{0, index}]
	t.nodes[nodeKey{0, index}] = value

	cur := value
	idx := index
	for level := uint8(0); level < t.depth; level++ {
		siblingIdx := idx ^ 1
		sibling, ok := t.nodes[nodeKey{level, siblingIdx}]
		if !ok {
			return old, ErrTreeRootConflict
		}
		var left, right field.Word
		if idx%2 == 0 {
			left, right = cur, sibling
		} else {
			left, right = sibling, cur
		}
		cur = field.Merge2(left, right)
		idx >>= 1
		t.nodes[nodeKey{level + 1, idx}] = cur
	}
	return old, nil
}

// Open returns the current value and authentication path for a tracked
// leaf index.
func (t *Tree) Open(index uint64) (field.Word, field.MerklePath, error) {
	if !t.tracked[index] {
		return field.EmptyWord, nil, ErrTreeRootConflict
	}
	value := t.nodes[nodeKey{0, index}]
	path := make(field.MerklePath, 0, t.depth)
	idx := index
	for level := uint8(0); level < t.depth; level++ {
		siblingIdx := idx ^ 1
		sibling, ok := t.nodes[nodeKey{level, siblingIdx}]
		if !ok {
			return field.EmptyWord, nil, ErrTreeRootConflict
		}
		path = append(path, sibling)
		idx >>= 1
	}
	return value, path, nil
}

// Root returns the tree's root node. For an empty tree (no witnesses
// tracked) this is the all-empty-subtree root for the configured depth.
func (t *Tree) Root() field.Word {
	if v, ok := t.nodes[nodeKey{t.depth, 0}]; ok {
		return v
	}
	return emptySubtreeRoot(t.depth)
}

var emptyRootCache = map[uint8]field.Word{0: field.EmptyWord}

// emptySubtreeRoot returns the root of a subtree of the given depth all
// of whose leaves are the empty word, memoized across depths.
func emptySubtreeRoot(depth uint8) field.Word {
	if v, ok := emptyRootCache[depth]; ok {
		return v
	}
	child := emptySubtreeRoot(depth - 1)
	root := field.Merge2(child, child)
	emptyRootCache[depth] = root
	return root
}
