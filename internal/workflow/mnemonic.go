package workflow

import (
	"fmt"

	"github.com/keyfort/keyfort/internal/secure"
	"github.com/keyfort/keyfort/internal/ui"
)

// assembler collects words one position at a time. Delete moves back
// one position so the previous word can be re-edited; at position 0 it
// is a no-op.
type assembler struct {
	slots [][]byte
}

func newAssembler(count int) *assembler {
	if count <= 0 || count > maxWords {
		panic(fmt.Sprintf("workflow: unsupported word count %d", count))
	}
	return &assembler{slots: make([][]byte, count)}
}

// run drives word entry until all positions are filled. It returns
// false when the user cancels. The enter callback receives the stored
// word at the position as the preset.
func (a *assembler) run(enter func(index int, preset []byte) ui.WordEntry) bool {
	pos := 0
	for pos < len(a.slots) {
		entry := enter(pos, a.slots[pos])
		switch entry.Event {
		case ui.WordCancel:
			return false
		case ui.WordDelete:
			if pos > 0 {
				pos--
			}
		case ui.WordAccepted:
			a.store(pos, entry.Word)
			pos++
		}
	}
	return true
}

// store places word at pos, wiping any word previously stored there.
func (a *assembler) store(pos int, word []byte) {
	if len(word) == 0 || len(word) > maxWordLen {
		panic("workflow: word length out of bounds")
	}
	secure.Zero(a.slots[pos])
	a.slots[pos] = word
}

// assemble joins the stored words with single spaces into a secure
// buffer. All positions must be filled.
func (a *assembler) assemble() *secure.Bytes {
	total := len(a.slots) - 1 // separators
	for _, slot := range a.slots {
		if len(slot) == 0 {
			panic("workflow: assembling incomplete mnemonic")
		}
		total += len(slot)
	}
	if total > maxMnemonicLen {
		panic("workflow: assembled mnemonic exceeds buffer bound")
	}

	buf := secure.NewBytes(total)
	data := buf.Data()
	off := 0
	for i, slot := range a.slots {
		if i > 0 {
			data[off] = ' '
			off++
		}
		off += copy(data[off:], slot)
	}
	return buf
}

// wipe zeroes every word slot. Safe to call on any state; called on
// every exit path of mnemonic collection.
func (a *assembler) wipe() {
	for i := range a.slots {
		secure.Zero(a.slots[i])
		a.slots[i] = nil
	}
}
