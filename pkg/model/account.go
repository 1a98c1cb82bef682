// Copyright 2025 Certen Protocol
//
// AccountId's bit layout mirrors the shape described in spec.md §3 and
// in original_source/crates/miden-objects/src/account/account_id/mod.rs
// (a 64-bit prefix carrying type/mode/version in its low bits, a 56-bit
// suffix carrying a 16-bit anchor epoch and 8 reserved zero bits) but
// the exact bit offsets are this module's own scheme: the upstream
// account_type.rs/storage_mode.rs constant tables were not available to
// copy exactly, so the eight metadata bits below (2 account-type, 2
// storage-mode, 4 version) are a self-consistent choice documented in DESIGN.md rather than a byte-for-byte port.

package model

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// AccountType is the two-bit account classification carried in an
// AccountId's prefix.
type AccountType uint8

const (
	AccountTypePublicImmutableCode AccountType = iota
	AccountTypePublicMutableCode
	AccountTypePrivateImmutableCode
	AccountTypePrivateMutableCode
)

func (t AccountType) IsFaucet() bool {
	return t == AccountTypePublicImmutableCode || t == AccountTypePrivateImmutableCode
}

// StorageMode is the account's storage visibility.
type StorageMode uint8

const (
	StorageModePublic StorageMode = iota
	StorageModePrivate
	StorageModeNetwork
)

func (m StorageMode) String() string {
	switch m {
	case StorageModePublic:
		return "public"
	case StorageModePrivate:
		return "private"
	case StorageModeNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// AccountIdVersion is the version embedded in an AccountId's prefix.
// Only version 0 is currently known.
type AccountIdVersion uint8

const AccountIdVersion0 AccountIdVersion = 0

const (
	anchorEpochReserved uint16 = 0xFFFF
	accountTypeBits            = 2
	storageModeBits            = 2
	versionBits                = 4
)

var (
	ErrUnknownVersion       = errors.New("model: account id has an unknown version")
	ErrReservedAnchorEpoch  = errors.New("model: account id anchor epoch is the reserved value 0xFFFF")
	ErrSuffixLowBitsNonZero = errors.New("model: account id suffix's reserved low bits are non-zero")
	ErrUnknownAccountType   = errors.New("model: account id has an unknown account type")
	ErrUnknownStorageMode   = errors.New("model: account id has an unknown storage mode")
)

// AccountId is a 120-bit identifier: a 64-bit prefix (whose low bits
// carry storage mode, account type, and version) and a 56-bit suffix
// (whose top 16 bits carry an anchor epoch and whose low 8 bits are
// reserved zero). Uniqueness is enforced on the prefix alone.
type AccountId struct {
	prefix uint64
	suffix uint64 // only the low 56 bits are meaningful
}

// NewAccountId constructs and validates an AccountId from its raw
// prefix and suffix words.
func NewAccountId(prefix, suffix uint64) (AccountId, error) {
	id := AccountId{prefix: prefix, suffix: suffix & ((1 << 56) - 1)}
	if id.Version() != AccountIdVersion0 {
		return AccountId{}, ErrUnknownVersion
	}
	if id.AnchorEpoch() == anchorEpochReserved {
		return AccountId{}, ErrReservedAnchorEpoch
	}
	if id.suffix&0xFF != 0 {
		return AccountId{}, ErrSuffixLowBitsNonZero
	}
	if _, err := accountTypeFromBits(uint8(prefix) & 0b11); err != nil {
		return AccountId{}, err
	}
	if _, err := storageModeFromBits((uint8(prefix) >> accountTypeBits) & 0b11); err != nil {
		return AccountId{}, err
	}
	return id, nil
}

func accountTypeFromBits(b uint8) (AccountType, error) {
	if b > uint8(AccountTypePrivateMutableCode) {
		return 0, ErrUnknownAccountType
	}
	return AccountType(b), nil
}

func storageModeFromBits(b uint8) (StorageMode, error) {
	if b > uint8(StorageModeNetwork) {
		return 0, ErrUnknownStorageMode
	}
	return StorageMode(b), nil
}

// Prefix returns the 64-bit key used for tree indexing and uniqueness.
func (id AccountId) Prefix() uint64 {
	return id.prefix
}

// Suffix returns the raw 56-bit suffix word.
func (id AccountId) Suffix() uint64 {
	return id.suffix
}

// AccountType returns the account's type, decoded from the prefix's low bits.
func (id AccountId) AccountType() AccountType {
	t, _ := accountTypeFromBits(uint8(id.prefix) & 0b11)
	return t
}

// StorageMode returns the account's storage mode.
func (id AccountId) StorageMode() StorageMode {
	m, _ := storageModeFromBits((uint8(id.prefix) >> accountTypeBits) & 0b11)
	return m
}

// Version returns the account ID's version.
func (id AccountId) Version() AccountIdVersion {
	shift := accountTypeBits + storageModeBits
	return AccountIdVersion((uint8(id.prefix) >> shift) & ((1 << versionBits) - 1))
}

// AnchorEpoch returns the 16-bit anchor epoch embedded in the suffix.
func (id AccountId) AnchorEpoch() uint16 {
	return uint16(id.suffix >> 40)
}

// IsNew reports nothing on its own; newness is a property of the
// account's nonce, not the ID — see Account.IsNew.

// Bytes serializes the AccountId to its 15-byte wire form: the 8-byte
// big-endian prefix followed by the low 7 bytes of the 8-byte
// big-endian suffix (the suffix's top byte is always zero since only
// 56 of its 64 bits are meaningful, and is dropped here).
func (id AccountId) Bytes() [15]byte {
	var out [15]byte
	var prefixBytes, suffixBytes [8]byte
	binary.BigEndian.PutUint64(prefixBytes[:], id.prefix)
	binary.BigEndian.PutUint64(suffixBytes[:], id.suffix)
	copy(out[0:8], prefixBytes[:])
	copy(out[8:15], suffixBytes[1:8])
	return out
}

// AccountIdFromBytes decodes the 15-byte wire form produced by Bytes.
func AccountIdFromBytes(b []byte) (AccountId, error) {
	if len(b) != 15 {
		return AccountId{}, fmt.Errorf("model: expected 15 bytes, got %d", len(b))
	}
	prefix := binary.BigEndian.Uint64(b[0:8])
	var suffixBytes [8]byte
	copy(suffixBytes[1:8], b[8:15])
	suffix := binary.BigEndian.Uint64(suffixBytes[:])
	return NewAccountId(prefix, suffix)
}

func (id AccountId) String() string {
	return fmt.Sprintf("0x%016x%014x", id.prefix, id.suffix)
}
