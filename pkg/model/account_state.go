// Copyright 2025 Certen Protocol

package model

import "github.com/certen/zk-block-prover/pkg/field"

// Account is a long-lived stateful entity. Its identity is its
// AccountId; its mutable state is the vault/storage/code commitments
// plus a monotonically increasing nonce.
type Account struct {
	ID                AccountId
	VaultCommitment   field.Word
	StorageCommitment field.Word
	CodeCommitment    field.Word
	Nonce             uint64
}

// IsNew reports whether this is a freshly-created account (nonce zero).
func (a Account) IsNew() bool {
	return a.Nonce == 0
}

func idToWord(id AccountId) field.Word {
	return field.Word{field.New(id.Prefix()), field.New(id.Suffix()), field.Zero, field.Zero}
}

// StateCommitment hashes the account's five identifying fields.
func (a Account) StateCommitment() field.Word {
	nonceWord := field.WordFromUint64s(a.Nonce, 0, 0, 0)
	return field.HashWords(idToWord(a.ID), a.VaultCommitment, a.StorageCommitment, a.CodeCommitment, nonceWord)
}
