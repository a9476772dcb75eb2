package workflow

import (
	"fmt"
	"time"

	"github.com/keyfort/keyfort/internal/secure"
	"github.com/keyfort/keyfort/internal/ui"
	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

// RestoreRequest carries the optional time context for the security
// counter step.
type RestoreRequest struct {
	Timestamp time.Time

	// TimezoneOffset is seconds east of UTC, used only to display the
	// time confirmation.
	TimezoneOffset int
}

// RestoreFromMnemonic runs the full recovery workflow: mnemonic entry,
// validation, password setup, seed persistence, and device
// finalization. User cancellation and recoverable failures are
// returned as errors; an unlock failure immediately after a successful
// store is an invariant violation and halts the process.
func (w *Workflow) RestoreFromMnemonic(req *RestoreRequest) error {
	wordlist, err := w.loadWordlist()
	if err != nil {
		w.log.Error("restore: loading wordlist: %v", err)
		return err
	}

	mnemonic, err := w.collectMnemonic(wordlist)
	if err != nil {
		return err
	}
	defer mnemonic.Destroy()

	seed, err := w.keystore.ValidateAndDerive(mnemonic.Data())
	if err != nil {
		w.ui.Status("Recovery words\ninvalid", false)
		return kferrors.ErrInvalidMnemonic
	}
	defer seed.Destroy()
	mnemonic.Destroy()

	w.ui.Status("Recovery words\nvalid", true)

	password, err := w.collectPassword()
	if err != nil {
		return err
	}
	defer secure.Zero(password)

	if err := w.keystore.EncryptAndStoreSeed(seed.Data(), password); err != nil {
		w.log.Error("restore: storing seed: %v", err)
		w.ui.Status("Could not\nrestore backup", false)
		return kferrors.ErrStoreFailed
	}
	// The seed has been consumed by persistence; wipe it now rather
	// than at function exit.
	seed.Destroy()

	if w.u2f && req != nil {
		if !w.confirmTime(req) {
			return kferrors.ErrUserAbort
		}
		if w.chip != nil {
			if err := w.chip.SetU2FCounter(uint32(req.Timestamp.Unix())); err != nil { //nolint:gosec // G115: truncation matches counter width
				// Counter failures are explicitly non-fatal.
				w.log.Debug("restore: setting security counter: %v", err)
			}
		}
	}

	if err := w.memory.SetInitialized(); err != nil {
		w.log.Error("restore: marking device initialized: %v", err)
		return kferrors.Wrap(kferrors.ErrDeviceState, "finalizing recovery")
	}

	if _, err := w.keystore.Unlock(password); err != nil {
		// The password just encrypted the seed; failing to unlock with
		// it means storage corrupted between store and unlock.
		panic(fmt.Sprintf("workflow: unlock failed immediately after store: %v", err))
	}

	return nil
}

// collectMnemonic runs word count selection and word entry, returning
// the assembled mnemonic. All word slots are wiped before returning,
// on success and failure alike.
func (w *Workflow) collectMnemonic(wordlist []string) (*secure.Bytes, error) {
	count := w.pickWordCount()
	w.ui.Status(fmt.Sprintf("Enter %d words", count), true)

	asm := newAssembler(count)
	defer asm.wipe()

	ok := asm.run(func(index int, preset []byte) ui.WordEntry {
		return w.enterWord(index, wordlist, preset)
	})
	if !ok {
		return nil, kferrors.ErrUserAbort
	}

	return asm.assemble(), nil
}

// collectPassword runs the password prompt until the two entries
// match or the user gives up. The loop is bounded only by the user's
// choice to abandon.
func (w *Workflow) collectPassword() ([]byte, error) {
	for {
		password, err := w.ui.SetPassword()
		if err == nil {
			return password, nil
		}
		if !kferrors.Is(err, kferrors.ErrPasswordMismatch) {
			return nil, err
		}

		retry := w.ui.Confirm(&ui.ConfirmParams{
			Body: "Passwords\ndo not match.\nTry again?",
		})
		if !retry {
			return nil, kferrors.ErrUserAbort
		}
	}
}

// confirmTime asks the user to verify the request timestamp rendered
// in the requested timezone.
func (w *Workflow) confirmTime(req *RestoreRequest) bool {
	loc := time.FixedZone("", req.TimezoneOffset)
	body := req.Timestamp.In(loc).Format("Mon 2006-01-02\n15:04")
	return w.ui.Confirm(&ui.ConfirmParams{
		Title:         "Is now?",
		Body:          body,
		AcceptIsArrow: true,
	})
}
