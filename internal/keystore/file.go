package keystore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	bip39 "github.com/tyler-smith/go-bip39"
	"golang.org/x/time/rate"

	"github.com/keyfort/keyfort/internal/fileutil"
	"github.com/keyfort/keyfort/internal/secure"
	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

const (
	seedFileName     = "seed.age"
	attemptsFileName = "attempts"

	keystoreDirPerm  = 0o750
	keystoreFilePerm = 0o600
)

// FileKeystore implements Keystore on the local filesystem. The seed
// is stored age-encrypted under the device password; wrong-password
// unlocks consume a persisted attempt budget and exhausting it erases
// the seed.
type FileKeystore struct {
	dir         string
	maxAttempts int
	wordlist    []string
	limiter     *rate.Limiter
}

// NewFileKeystore creates a keystore rooted at dir with the given
// wrong-password attempt budget.
func NewFileKeystore(dir string, maxAttempts int) *FileKeystore {
	return &FileKeystore{
		dir:         dir,
		maxAttempts: maxAttempts,
		wordlist:    bip39.GetWordList(),
		// Unlock attempts are paced to blunt brute forcing.
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
	}
}

// Word returns the wordlist entry at index.
func (k *FileKeystore) Word(index int) (string, error) {
	if index < 0 || index >= WordlistLen || index >= len(k.wordlist) {
		return "", kferrors.Wrap(kferrors.ErrWordlistUnavailable, "word %d", index)
	}
	return k.wordlist[index], nil
}

// ValidateAndDerive checks the mnemonic checksum and recovers the
// entropy it encodes.
func (k *FileKeystore) ValidateAndDerive(mnemonic []byte) (*secure.Bytes, error) {
	entropy, err := bip39.EntropyFromMnemonic(string(mnemonic))
	if err != nil {
		return nil, kferrors.ErrInvalidMnemonic
	}
	defer secure.Zero(entropy)

	if len(entropy) > MaxSeedLen {
		// Entropy is 16, 24, or 32 bytes by construction.
		panic(fmt.Sprintf("keystore: derived seed length %d exceeds maximum", len(entropy)))
	}

	return secure.BytesFrom(entropy), nil
}

// EncryptAndStoreSeed encrypts the seed under the password and writes
// it atomically. A successful store resets the attempt budget.
func (k *FileKeystore) EncryptAndStoreSeed(seed, password []byte) error {
	if err := fileutil.EnsureDir(k.dir, keystoreDirPerm); err != nil {
		return fmt.Errorf("preparing keystore directory: %w", err)
	}

	ciphertext, err := sealSeed(seed, password)
	if err != nil {
		return fmt.Errorf("encrypting seed: %w", err)
	}

	if err := fileutil.WriteAtomic(k.seedPath(), ciphertext, keystoreFilePerm); err != nil {
		return fmt.Errorf("writing seed: %w", err)
	}

	return k.resetAttempts()
}

// Unlock decrypts the stored seed to prove the password. The decrypted
// seed never leaves this method.
func (k *FileKeystore) Unlock(password []byte) (int, error) {
	_ = k.limiter.Wait(context.Background())

	ciphertext, err := os.ReadFile(k.seedPath()) // #nosec G304 -- path is keystore-owned
	if err != nil {
		return 0, kferrors.Wrap(kferrors.ErrKeystoreFatal, "reading stored seed")
	}

	plaintext, err := openSeed(ciphertext, password)
	if err != nil {
		return k.recordFailedAttempt()
	}
	secure.Zero(plaintext)

	if err := k.resetAttempts(); err != nil {
		return 0, kferrors.Wrap(kferrors.ErrKeystoreFatal, "resetting attempt counter")
	}
	return k.maxAttempts, nil
}

// HasSeed reports whether a seed is stored.
func (k *FileKeystore) HasSeed() bool {
	_, err := os.Stat(k.seedPath())
	return err == nil
}

// recordFailedAttempt persists a wrong-password attempt. Exhausting
// the budget erases the stored seed.
func (k *FileKeystore) recordFailedAttempt() (int, error) {
	failed := k.failedAttempts() + 1
	remaining := k.maxAttempts - failed

	if remaining <= 0 {
		_ = os.Remove(k.seedPath())
		_ = os.Remove(k.attemptsPath())
		return 0, kferrors.Wrap(kferrors.ErrKeystoreFatal, "attempt budget exhausted, seed erased")
	}

	data := []byte(strconv.Itoa(failed))
	if err := fileutil.WriteAtomic(k.attemptsPath(), data, keystoreFilePerm); err != nil {
		return 0, kferrors.Wrap(kferrors.ErrKeystoreFatal, "recording failed attempt")
	}
	return remaining, kferrors.ErrWrongPassword
}

// failedAttempts reads the persisted failure count, treating a missing
// or garbled file as zero.
func (k *FileKeystore) failedAttempts() int {
	data, err := os.ReadFile(k.attemptsPath()) // #nosec G304 -- path is keystore-owned
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (k *FileKeystore) resetAttempts() error {
	err := os.Remove(k.attemptsPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("resetting attempts: %w", err)
	}
	return nil
}

func (k *FileKeystore) seedPath() string {
	return filepath.Join(k.dir, seedFileName)
}

func (k *FileKeystore) attemptsPath() string {
	return filepath.Join(k.dir, attemptsFileName)
}
