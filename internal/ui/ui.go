// Package ui defines the user-interaction contract consumed by the
// recovery and confirmation workflows, and a terminal implementation.
//
// Every method is a synchronous suspension point: it returns exactly
// once with the user's outcome, in call order. The workflows own no
// callbacks and no shared mutable interaction state.
package ui

// Choice is the outcome of a ternary choice prompt.
type Choice int

// Ternary choice positions.
const (
	ChoiceLeft Choice = iota
	ChoiceMiddle
	ChoiceRight
)

// WordEvent classifies the outcome of one word-entry interaction.
type WordEvent int

const (
	// WordAccepted means a wordlist word was entered.
	WordAccepted WordEvent = iota
	// WordCancel aborts the entire mnemonic entry.
	WordCancel
	// WordDelete navigates back one word without advancing.
	WordDelete
)

// WordEntry is the result of one word-entry interaction. Word is only
// set for WordAccepted and is owned by the caller, which must zero it
// when the enclosing attempt ends.
type WordEntry struct {
	Event WordEvent
	Word  []byte
}

// ConfirmParams describes a confirmation prompt.
type ConfirmParams struct {
	Title string
	Body  string

	// Scrollable marks bodies that may exceed one screen.
	Scrollable bool

	// LongTouch requires a deliberately longer acknowledgement gesture.
	LongTouch bool

	// AcceptIsArrow styles the accept action as "continue" rather than
	// an explicit checkmark.
	AcceptIsArrow bool
}

// UI is the interaction surface consumed by the workflows.
type UI interface {
	// PickChoice presents a ternary choice and blocks until the user
	// selects one of the three options.
	PickChoice(prompt, left, middle, right string) Choice

	// Confirm presents a confirmation and reports acceptance.
	Confirm(p *ConfirmParams) bool

	// Status presents a transient status message.
	Status(message string, success bool)

	// EnterWord collects the word at the given 0-based index,
	// restricted to the supplied wordlist. A non-empty preset is the
	// previously entered word at this position, offered for re-editing.
	EnterWord(index int, wordlist []string, preset []byte) WordEntry

	// SetPassword prompts for a new password with confirmation. It
	// returns errors.ErrPasswordMismatch when the repeat entry differs.
	// The caller owns the returned bytes and must zero them.
	SetPassword() ([]byte, error)
}
