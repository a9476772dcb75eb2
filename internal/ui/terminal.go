package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/agnivade/levenshtein"
	"golang.org/x/term"

	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

// Reserved word-entry inputs.
const (
	deleteInput = "-"
	cancelInput = ":q"
)

// minPasswordLength is the shortest accepted device password.
const minPasswordLength = 4

// maxSuggestDistance is the largest Levenshtein distance at which a
// wordlist word is offered as a correction.
const maxSuggestDistance = 2

// Terminal implements UI with line-oriented prompts.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	// readPassword reads one hidden password line. Overridable in tests.
	readPassword func() ([]byte, error)
}

// NewTerminal creates a terminal UI reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
		readPassword: func() ([]byte, error) {
			return term.ReadPassword(syscall.Stdin)
		},
	}
}

// PickChoice presents a ternary choice and blocks until one of the
// three options is selected. Closed input is an irrecoverable loss of
// the interaction channel and halts the process.
func (t *Terminal) PickChoice(prompt, left, middle, right string) Choice {
	fmt.Fprintf(t.out, "\n%s\n  1) %s  2) %s  3) %s\n", prompt, left, middle, right)

	for {
		fmt.Fprint(t.out, "Select [1-3]: ")
		line, err := t.readLine()
		if err != nil {
			panic("ui: interaction channel closed during mandatory choice")
		}

		switch strings.TrimSpace(line) {
		case "1":
			return ChoiceLeft
		case "2":
			return ChoiceMiddle
		case "3":
			return ChoiceRight
		}
	}
}

// Confirm presents a confirmation prompt and reports acceptance. Input
// errors count as a decline.
func (t *Terminal) Confirm(p *ConfirmParams) bool {
	if p.Title != "" {
		fmt.Fprintf(t.out, "\n== %s ==\n", p.Title)
	}
	fmt.Fprintf(t.out, "%s\n", p.Body)

	if p.LongTouch {
		fmt.Fprint(t.out, "Type 'hold' to confirm: ")
		line, err := t.readLine()
		if err != nil {
			return false
		}
		return strings.TrimSpace(line) == "hold"
	}

	if p.AcceptIsArrow {
		fmt.Fprint(t.out, "Continue? [Y/n]: ")
	} else {
		fmt.Fprint(t.out, "Confirm? [y/N]: ")
	}

	line, err := t.readLine()
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "":
		return p.AcceptIsArrow
	default:
		return false
	}
}

// Status presents a status message.
func (t *Terminal) Status(message string, success bool) {
	mark := "x"
	if success {
		mark = "ok"
	}
	fmt.Fprintf(t.out, "[%s] %s\n", mark, oneLine(message))
}

// EnterWord collects one wordlist word. Input is completed against the
// wordlist: an exact match or a unique prefix is accepted, anything
// else re-prompts with the nearest word offered as a hint.
func (t *Terminal) EnterWord(index int, wordlist []string, preset []byte) WordEntry {
	for {
		if len(preset) > 0 {
			fmt.Fprintf(t.out, "Word %d [%s]: ", index+1, string(preset))
		} else {
			fmt.Fprintf(t.out, "Word %d: ", index+1)
		}

		line, err := t.readLine()
		if err != nil {
			return WordEntry{Event: WordCancel}
		}

		input := strings.ToLower(strings.TrimSpace(line))
		switch input {
		case cancelInput:
			return WordEntry{Event: WordCancel}
		case deleteInput:
			return WordEntry{Event: WordDelete}
		case "":
			// Empty input keeps the preset when editing.
			if len(preset) > 0 {
				word := make([]byte, len(preset))
				copy(word, preset)
				return WordEntry{Event: WordAccepted, Word: word}
			}
			continue
		}

		if word, ok := completeWord(input, wordlist); ok {
			return WordEntry{Event: WordAccepted, Word: []byte(word)}
		}

		if hint := nearestWord(input, wordlist); hint != "" {
			fmt.Fprintf(t.out, "Not a recovery word. Did you mean '%s'?\n", hint)
		} else {
			fmt.Fprintln(t.out, "Not a recovery word.")
		}
	}
}

// SetPassword prompts for a new password with confirmation.
func (t *Terminal) SetPassword() ([]byte, error) {
	var password []byte
	for {
		fmt.Fprint(t.out, "Enter device password: ")
		pw, err := t.readPassword()
		fmt.Fprintln(t.out)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		if len(pw) < minPasswordLength {
			for i := range pw {
				pw[i] = 0
			}
			fmt.Fprintf(t.out, "Password must be at least %d characters.\n", minPasswordLength)
			continue
		}
		password = pw
		break
	}

	fmt.Fprint(t.out, "Repeat password: ")
	repeat, err := t.readPassword()
	fmt.Fprintln(t.out)
	if err != nil {
		for i := range password {
			password[i] = 0
		}
		return nil, fmt.Errorf("reading password: %w", err)
	}
	defer func() {
		for i := range repeat {
			repeat[i] = 0
		}
	}()

	if string(password) != string(repeat) {
		for i := range password {
			password[i] = 0
		}
		return nil, kferrors.ErrPasswordMismatch
	}

	return password, nil
}

// ReadPassword prompts once for an existing password, without
// confirmation or length checks.
func (t *Terminal) ReadPassword(prompt string) ([]byte, error) {
	fmt.Fprint(t.out, prompt)
	pw, err := t.readPassword()
	fmt.Fprintln(t.out)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	return pw, nil
}

// readLine reads one line of input without the trailing newline.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// completeWord matches input against the wordlist: exact match wins,
// otherwise a unique prefix completes.
func completeWord(input string, wordlist []string) (string, bool) {
	match := ""
	for _, w := range wordlist {
		if w == input {
			return w, true
		}
		if strings.HasPrefix(w, input) {
			if match != "" {
				return "", false // ambiguous prefix
			}
			match = w
		}
	}
	return match, match != ""
}

// nearestWord returns the closest wordlist word within
// maxSuggestDistance, or "".
func nearestWord(input string, wordlist []string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, w := range wordlist {
		if d := levenshtein.ComputeDistance(input, w); d < bestDist {
			best = w
			bestDist = d
		}
	}
	return best
}

// oneLine flattens multi-line device status messages for the terminal.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
