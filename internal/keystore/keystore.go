// Package keystore defines the key-material collaborator contract
// consumed by the recovery workflow, and a file-backed implementation
// that encrypts the seed with age under the device password.
package keystore

import (
	"github.com/keyfort/keyfort/internal/secure"
)

// WordlistLen is the size of the BIP39 wordlist.
const WordlistLen = 2048

// MaxSeedLen is the longest seed ValidateAndDerive can produce.
const MaxSeedLen = 32

// Keystore is the key-material contract the recovery workflow consumes.
type Keystore interface {
	// Word returns the wordlist entry at index in [0, WordlistLen).
	Word(index int) (string, error)

	// ValidateAndDerive checks the mnemonic's checksum and derives the
	// seed. It returns errors.ErrInvalidMnemonic for a bad mnemonic.
	// The caller owns the returned buffer and must destroy it.
	ValidateAndDerive(mnemonic []byte) (*secure.Bytes, error)

	// EncryptAndStoreSeed encrypts the seed under the password and
	// persists it. Neither argument is retained or zeroed here.
	EncryptAndStoreSeed(seed, password []byte) error

	// Unlock proves the password against the stored seed. It returns
	// the remaining attempt budget alongside errors.ErrWrongPassword,
	// or errors.ErrKeystoreFatal when the keystore is unrecoverable.
	Unlock(password []byte) (remaining int, err error)
}
