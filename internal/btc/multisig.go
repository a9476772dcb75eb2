package btc

import (
	"fmt"

	"github.com/keyfort/keyfort/internal/ui"
	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

// Multisig describes a threshold signature account. Descriptor files
// use the yaml field names.
type Multisig struct {
	Coin         Coin       `yaml:"coin"`
	Name         string     `yaml:"name"`
	Threshold    uint32     `yaml:"threshold"`
	XPubs        []string   `yaml:"xpubs"`
	OurXPubIndex uint32     `yaml:"our_xpub_index"`
	ScriptType   ScriptType `yaml:"script_type"`
}

// Validate checks the structural invariants of the configuration.
func (m *Multisig) Validate() error {
	n := uint32(len(m.XPubs)) //nolint:gosec // cosigner counts are tiny
	if n == 0 {
		return kferrors.Wrap(kferrors.ErrInvalidMultisig, "no cosigners")
	}
	if m.Threshold == 0 || m.Threshold > n {
		return kferrors.Wrap(kferrors.ErrInvalidMultisig,
			"threshold %d out of range for %d cosigners", m.Threshold, n)
	}
	if m.OurXPubIndex >= n {
		return kferrors.Wrap(kferrors.ErrInvalidMultisig,
			"our cosigner index %d out of range for %d cosigners", m.OurXPubIndex, n)
	}
	return nil
}

// ConfirmMultisig runs the cosigner confirmation sequence: an account
// summary, the account name, and — when verifyXPubs is set — one
// confirmation per cosigner in ascending order, with the final
// cosigner requiring the long acknowledgement gesture. The first
// declined confirmation or undecodable cosigner key aborts the whole
// sequence.
func ConfirmMultisig(
	u ui.UI,
	title string,
	m *Multisig,
	verifyXPubs bool,
	xpubType XPubType,
) error {
	if err := m.Validate(); err != nil {
		return err
	}

	summary := fmt.Sprintf("Coin: %s\nMultisig type: %d-of-%d",
		m.Coin.Name(), m.Threshold, len(m.XPubs))
	if !u.Confirm(&ui.ConfirmParams{
		Title:         title,
		Body:          summary,
		AcceptIsArrow: true,
	}) {
		return kferrors.ErrUserAbort
	}

	if !u.Confirm(&ui.ConfirmParams{
		Title:         title,
		Body:          m.Name,
		Scrollable:    true,
		AcceptIsArrow: true,
	}) {
		return kferrors.ErrUserAbort
	}

	if !verifyXPubs {
		return nil
	}

	format, err := ResolveXPubFormat(m.Coin, m.ScriptType, xpubType)
	if err != nil {
		return err
	}

	total := len(m.XPubs)
	for i, xpub := range m.XPubs {
		encoded, err := EncodeXPub(xpub, format)
		if err != nil {
			return kferrors.Wrap(err, "cosigner %d", i+1)
		}
		marker := ""
		if uint32(i) == m.OurXPubIndex { //nolint:gosec // bounded by Validate
			marker = " (this device)"
		}
		body := fmt.Sprintf("Cosigner %d/%d%s: %s", i+1, total, marker, encoded)
		if !u.Confirm(&ui.ConfirmParams{
			Title:         title,
			Body:          body,
			Scrollable:    true,
			LongTouch:     i == total-1,
			AcceptIsArrow: true,
		}) {
			return kferrors.ErrUserAbort
		}
	}
	return nil
}
