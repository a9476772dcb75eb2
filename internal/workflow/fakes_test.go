package workflow

import (
	"fmt"

	"github.com/keyfort/keyfort/internal/keystore"
	"github.com/keyfort/keyfort/internal/secure"
	"github.com/keyfort/keyfort/internal/ui"
)

// scripted word entry helpers.
func accepted(word string) ui.WordEntry {
	return ui.WordEntry{Event: ui.WordAccepted, Word: []byte(word)}
}

func deleted() ui.WordEntry { return ui.WordEntry{Event: ui.WordDelete} }
func canceled() ui.WordEntry { return ui.WordEntry{Event: ui.WordCancel} }

type wordCall struct {
	index  int
	preset string
}

type passwordResult struct {
	password string
	err      error
}

// fakeUI replays scripted interactions and records what the workflow
// presented.
type fakeUI struct {
	choice         ui.Choice
	wordScript     []ui.WordEntry
	passwords      []passwordResult
	confirmAnswers []bool

	// recorded
	wordCalls    []wordCall
	confirmCalls []ui.ConfirmParams
	statuses     []string
	issuedWords  [][]byte // buffers handed to the workflow
}

func (f *fakeUI) PickChoice(_, _, _, _ string) ui.Choice {
	return f.choice
}

func (f *fakeUI) Confirm(p *ui.ConfirmParams) bool {
	f.confirmCalls = append(f.confirmCalls, *p)
	if len(f.confirmAnswers) == 0 {
		return false
	}
	answer := f.confirmAnswers[0]
	f.confirmAnswers = f.confirmAnswers[1:]
	return answer
}

func (f *fakeUI) Status(message string, _ bool) {
	f.statuses = append(f.statuses, message)
}

func (f *fakeUI) EnterWord(index int, _ []string, preset []byte) ui.WordEntry {
	f.wordCalls = append(f.wordCalls, wordCall{index: index, preset: string(preset)})
	if len(f.wordScript) == 0 {
		return ui.WordEntry{Event: ui.WordCancel}
	}
	entry := f.wordScript[0]
	f.wordScript = f.wordScript[1:]
	if entry.Event == ui.WordAccepted {
		// Hand out a fresh buffer and remember it so tests can verify
		// zeroization.
		word := make([]byte, len(entry.Word))
		copy(word, entry.Word)
		f.issuedWords = append(f.issuedWords, word)
		return ui.WordEntry{Event: ui.WordAccepted, Word: word}
	}
	return entry
}

func (f *fakeUI) SetPassword() ([]byte, error) {
	if len(f.passwords) == 0 {
		return nil, fmt.Errorf("unscripted password prompt")
	}
	r := f.passwords[0]
	f.passwords = f.passwords[1:]
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.password), nil
}

// fakeWordlist gives 2048 distinct fixed-width words.
func fakeWordlist() []string {
	words := make([]string, keystore.WordlistLen)
	for i := range words {
		words[i] = fmt.Sprintf("word%04d", i)
	}
	return words
}

// fakeKeystore implements keystore.Keystore in memory.
type fakeKeystore struct {
	wordlist  []string
	wordErr   error
	deriveErr error
	seed      []byte
	storeErr  error
	unlockErr error

	// recorded
	validatedMnemonics []string
	storedSeed         []byte
	storedPassword     string
	unlockedPassword   string
}

func newFakeKeystore() *fakeKeystore {
	return &fakeKeystore{
		wordlist: fakeWordlist(),
		seed:     []byte{0xAA, 0xBB, 0xCC, 0xDD},
	}
}

func (k *fakeKeystore) Word(index int) (string, error) {
	if k.wordErr != nil {
		return "", k.wordErr
	}
	return k.wordlist[index], nil
}

func (k *fakeKeystore) ValidateAndDerive(mnemonic []byte) (*secure.Bytes, error) {
	k.validatedMnemonics = append(k.validatedMnemonics, string(mnemonic))
	if k.deriveErr != nil {
		return nil, k.deriveErr
	}
	return secure.BytesFrom(k.seed), nil
}

func (k *fakeKeystore) EncryptAndStoreSeed(seed, password []byte) error {
	if k.storeErr != nil {
		return k.storeErr
	}
	k.storedSeed = append([]byte(nil), seed...)
	k.storedPassword = string(password)
	return nil
}

func (k *fakeKeystore) Unlock(password []byte) (int, error) {
	if k.unlockErr != nil {
		return 0, k.unlockErr
	}
	k.unlockedPassword = string(password)
	return 10, nil
}

type fakeMemory struct {
	err         error
	initialized bool
}

func (m *fakeMemory) SetInitialized() error {
	if m.err != nil {
		return m.err
	}
	m.initialized = true
	return nil
}

type fakeChip struct {
	err    error
	values []uint32
}

func (c *fakeChip) SetU2FCounter(value uint32) error {
	c.values = append(c.values, value)
	return c.err
}
