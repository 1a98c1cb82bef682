// Copyright 2025 Certen Protocol

package model

import "github.com/certen/zk-block-prover/pkg/field"

// NoteType distinguishes notes whose details are published on-chain
// from ones kept off-chain.
type NoteType uint8

const (
	NoteTypePublic NoteType = iota
	NoteTypePrivate
)

// NoteMetadata pins the sender, type, tag, execution hint, and aux data
// of a note; it does not affect the note's identity or nullifier.
type NoteMetadata struct {
	Sender         AccountId
	Type           NoteType
	Tag            uint64
	ExecutionHint  uint64
	Aux            field.Element
}

// Note is a single-use message carrying assets, addressed by a
// recipient hash and consumed via its nullifier.
type Note struct {
	AssetsCommitment  field.Word
	Metadata          NoteMetadata
	SerialNumber      field.Word
	ScriptRoot        field.Word
	InputsCommitment  field.Word
}

// Recipient hashes the note's serial number, script root, and inputs
// commitment, per spec.md §3.
func (n Note) Recipient() field.Word {
	return field.HashWords(n.SerialNumber, n.ScriptRoot, n.InputsCommitment)
}

// NoteId identifies a note: hash(recipient, assets_commitment).
type NoteId field.Word

func (n Note) Id() NoteId {
	return NoteId(field.HashWords(n.Recipient(), n.AssetsCommitment))
}

// Nullifier is derived from a note's full private details and is
// inserted into the nullifier tree on consumption, enforcing
// single-spend.
type Nullifier field.Word

func (n Note) NullifierValue() Nullifier {
	return Nullifier(field.HashWords(n.SerialNumber, n.ScriptRoot, n.InputsCommitment, n.AssetsCommitment))
}

// Word projects a NoteId/Nullifier back to the underlying field.Word.
func (id NoteId) Word() field.Word     { return field.Word(id) }
func (n Nullifier) Word() field.Word   { return field.Word(n) }
func (id NoteId) Equal(o NoteId) bool  { return field.Word(id).Equal(field.Word(o)) }
func (n Nullifier) Equal(o Nullifier) bool {
	return field.Word(n).Equal(field.Word(o))
}

// InputNoteRef describes an input note at the batch/block boundary:
// either already authenticated (carries a past inclusion proof) or
// still unauthenticated (only identified by its nullifier/NoteId, to
// be authenticated later).
type InputNoteRef struct {
	Nullifier     Nullifier
	NoteId        NoteId
	Authenticated bool
	// InclusionProof is set only when Authenticated is true.
	InclusionProof *NoteInclusionProof
}

// OutputNoteRef describes an output note produced by a transaction.
type OutputNoteRef struct {
	NoteId   NoteId
	Metadata NoteMetadata
}

// Commitment hashes the metadata's fields into a single word.
func (m NoteMetadata) Commitment() field.Word {
	return field.HashWords(
		idToWord(m.Sender),
		field.WordFromUint64s(uint64(m.Type), m.Tag, m.ExecutionHint, 0),
		field.Word{m.Aux, field.Zero, field.Zero, field.Zero},
	)
}

// LeafHash is the value stored for this note in the block note tree:
// hash(note_id, metadata).
func (r OutputNoteRef) LeafHash() field.Word {
	return field.HashWords(r.NoteId.Word(), r.Metadata.Commitment())
}
