package keystore

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"
)

// sealSeed encrypts the seed under the password. The password crosses
// into a string only at the age boundary.
func sealSeed(seed, password []byte) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(string(password))
	if err != nil {
		return nil, fmt.Errorf("deriving seal key: %w", err)
	}

	var sealed bytes.Buffer
	w, err := age.Encrypt(&sealed, recipient)
	if err != nil {
		return nil, fmt.Errorf("sealing seed: %w", err)
	}
	if _, err := w.Write(seed); err != nil {
		return nil, fmt.Errorf("sealing seed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("sealing seed: %w", err)
	}

	return sealed.Bytes(), nil
}

// openSeed decrypts a sealed seed. Failure to open is how a wrong
// password manifests; callers translate it into the attempt budget.
func openSeed(sealed, password []byte) ([]byte, error) {
	identity, err := age.NewScryptIdentity(string(password))
	if err != nil {
		return nil, fmt.Errorf("deriving unseal key: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(sealed), identity)
	if err != nil {
		return nil, fmt.Errorf("unsealing seed: %w", err)
	}

	seed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unsealing seed: %w", err)
	}
	return seed, nil
}
