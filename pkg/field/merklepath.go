// Copyright 2025 Certen Protocol

package field

// MerklePath is an authentication path from a leaf up to a tree root:
// one sibling Word per level, ordered from the leaf's level upward.
type MerklePath []Word

// ComputeRoot recomputes the root implied by this path for a leaf at the
// given index (whose bits, LSB first, select left/right at each level).
func (p MerklePath) ComputeRoot(leaf Word, index uint64) Word {
	current := leaf
	idx := index
	for _, sibling := range p {
		if idx&1 == 0 {
			current = Merge2(current, sibling)
		} else {
			current = Merge2(sibling, current)
		}
		idx >>= 1
	}
	return current
}

// Verify reports whether this path, applied to leaf at index, yields root.
func (p MerklePath) Verify(root, leaf Word, index uint64) bool {
	return p.ComputeRoot(leaf, index).Equal(root)
}

// Depth returns the number of levels this path spans.
func (p MerklePath) Depth() int {
	return len(p)
}
