package workflow

import (
	"github.com/keyfort/keyfort/internal/secure"
	"github.com/keyfort/keyfort/internal/ui"
)

// pickWordCount presents the mandatory 12/18/24 choice. The call does
// not return without a selection.
func (w *Workflow) pickWordCount() int {
	switch w.ui.PickChoice("How many words?", "12", "18", "24") {
	case ui.ChoiceLeft:
		return 12
	case ui.ChoiceMiddle:
		return 18
	case ui.ChoiceRight:
		return 24
	default:
		panic("workflow: unreachable word count choice")
	}
}

// enterWord collects the word at index, restricting accepted input to
// the supplied wordlist. preset is the previously entered word at this
// position, offered for re-editing.
func (w *Workflow) enterWord(index int, wordlist []string, preset []byte) ui.WordEntry {
	for {
		entry := w.ui.EnterWord(index, wordlist, preset)
		if entry.Event != ui.WordAccepted {
			return entry
		}
		if len(entry.Word) > 0 && len(entry.Word) <= maxWordLen && inWordlist(wordlist, entry.Word) {
			return entry
		}
		// Not a candidate word; discard and ask again.
		secure.Zero(entry.Word)
	}
}

// inWordlist reports membership without copying the candidate into an
// unzeroable string.
func inWordlist(wordlist []string, word []byte) bool {
	for _, candidate := range wordlist {
		if len(candidate) != len(word) {
			continue
		}
		match := true
		for i := 0; i < len(word); i++ {
			if candidate[i] != word[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
