// Package workflow implements the device recovery workflow: word-by-word
// mnemonic entry, validation and seed derivation, password setup, and
// persistence of the recovered seed.
//
// One workflow invocation owns all of its secret material exclusively.
// Every buffer holding a word, the assembled mnemonic, the seed, or the
// password is zeroed on every exit path, including cancellation and
// failures.
package workflow

import (
	"github.com/keyfort/keyfort/internal/config"
	"github.com/keyfort/keyfort/internal/device"
	"github.com/keyfort/keyfort/internal/keystore"
	"github.com/keyfort/keyfort/internal/ui"
)

// Word entry bounds. The longest BIP39 word is 8 characters; the
// assembled mnemonic buffer is sized for the largest word count.
const (
	maxWords       = 24
	maxWordLen     = 8
	maxMnemonicLen = (maxWordLen + 1) * maxWords
)

// Workflow drives device recovery against its collaborators.
type Workflow struct {
	ui       ui.UI
	keystore keystore.Keystore
	memory   device.Memory
	chip     device.SecureChip
	log      *config.Logger

	// u2f enables the time confirmation and security-counter step.
	u2f bool
}

// New creates a recovery workflow. chip may be nil when u2f is off.
func New(
	u ui.UI,
	ks keystore.Keystore,
	mem device.Memory,
	chip device.SecureChip,
	log *config.Logger,
	u2f bool,
) *Workflow {
	if log == nil {
		log = config.NullLogger()
	}
	return &Workflow{
		ui:       u,
		keystore: ks,
		memory:   mem,
		chip:     chip,
		log:      log,
		u2f:      u2f,
	}
}

// loadWordlist retrieves the full wordlist from the keystore for the
// lifetime of one recovery attempt.
func (w *Workflow) loadWordlist() ([]string, error) {
	words := make([]string, keystore.WordlistLen)
	for i := range words {
		word, err := w.keystore.Word(i)
		if err != nil {
			return nil, err
		}
		words[i] = word
	}
	return words, nil
}
