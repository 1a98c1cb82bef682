// Copyright 2025 Certen Protocol

package model

import "testing"

func validPrefix(accountType AccountType, mode StorageMode) uint64 {
	return uint64(accountType) | uint64(mode)<<accountTypeBits
}

func TestNewAccountIdValid(t *testing.T) {
	prefix := validPrefix(AccountTypePublicMutableCode, StorageModePublic)
	suffix := uint64(1234) << 40 // anchor epoch 1234, rest zero
	id, err := NewAccountId(prefix, suffix)
	if err != nil {
		t.Fatalf("NewAccountId: %v", err)
	}
	if id.AccountType() != AccountTypePublicMutableCode {
		t.Fatalf("AccountType() = %v, want PublicMutableCode", id.AccountType())
	}
	if id.StorageMode() != StorageModePublic {
		t.Fatalf("StorageMode() = %v, want Public", id.StorageMode())
	}
	if id.AnchorEpoch() != 1234 {
		t.Fatalf("AnchorEpoch() = %d, want 1234", id.AnchorEpoch())
	}
}

func TestNewAccountIdRejectsReservedAnchorEpoch(t *testing.T) {
	prefix := validPrefix(AccountTypePublicMutableCode, StorageModePublic)
	suffix := uint64(0xFFFF) << 40
	if _, err := NewAccountId(prefix, suffix); err != ErrReservedAnchorEpoch {
		t.Fatalf("err = %v, want ErrReservedAnchorEpoch", err)
	}
}

func TestNewAccountIdRejectsNonZeroLowBits(t *testing.T) {
	prefix := validPrefix(AccountTypePublicMutableCode, StorageModePublic)
	suffix := (uint64(10) << 40) | 0x01
	if _, err := NewAccountId(prefix, suffix); err != ErrSuffixLowBitsNonZero {
		t.Fatalf("err = %v, want ErrSuffixLowBitsNonZero", err)
	}
}

func TestAccountIdBytesRoundTrip(t *testing.T) {
	prefix := validPrefix(AccountTypePrivateImmutableCode, StorageModeNetwork)
	suffix := uint64(42) << 40
	id, err := NewAccountId(prefix, suffix)
	if err != nil {
		t.Fatalf("NewAccountId: %v", err)
	}
	b := id.Bytes()
	got, err := AccountIdFromBytes(b[:])
	if err != nil {
		t.Fatalf("AccountIdFromBytes: %v", err)
	}
	if got.Prefix() != id.Prefix() || got.Suffix() != id.Suffix() {
		t.Fatalf("round trip mismatch: got %v, want %v", got, id)
	}
}
