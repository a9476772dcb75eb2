package cli

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/keyfort/keyfort/internal/btc"
	"github.com/keyfort/keyfort/internal/ui"
	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

var (
	multisigFile     string
	multisigVerify   bool
	multisigXPubType string
)

var multisigCmd = &cobra.Command{
	Use:   "multisig",
	Short: "Multisig account operations",
}

var multisigConfirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm a multisig account configuration",
	Long: `Confirm walks through a multisig account descriptor: the coin and
threshold summary, the account name, and optionally every cosigner's
extended public key in the encoding the wallet software expects.`,
	Args: cobra.NoArgs,
	RunE: runMultisigConfirm,
}

func runMultisigConfirm(cmd *cobra.Command, _ []string) error {
	m, err := loadMultisigDescriptor(multisigFile)
	if err != nil {
		return err
	}

	xpubType, err := parseXPubType(multisigXPubType)
	if err != nil {
		return err
	}

	term := ui.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	if err := btc.ConfirmMultisig(term, "Register multisig", m, multisigVerify, xpubType); err != nil {
		return err
	}

	term.Status("Multisig account\nconfirmed", true)
	return nil
}

// loadMultisigDescriptor reads and validates a yaml account descriptor.
func loadMultisigDescriptor(path string) (*btc.Multisig, error) {
	if path == "" {
		return nil, kferrors.Wrap(kferrors.ErrInvalidInput, "no descriptor file given")
	}
	// #nosec G304 -- descriptor path is deliberate user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kferrors.WithSuggestion(
			kferrors.Wrap(kferrors.ErrInvalidInput, "reading descriptor: %v", err),
			"pass a multisig descriptor file with --file")
	}

	var m btc.Multisig
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, kferrors.Wrap(kferrors.ErrInvalidInput, "parsing descriptor: %v", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// parseXPubType maps the --xpub-type flag value to the encoding family.
func parseXPubType(s string) (btc.XPubType, error) {
	switch s {
	case "electrum":
		return btc.XPubTypeAutoElectrum, nil
	case "xpub":
		return btc.XPubTypeAutoXpubTpub, nil
	default:
		return 0, kferrors.WithSuggestion(
			kferrors.Wrap(kferrors.ErrInvalidInput, "unknown xpub type %q", s),
			"use --xpub-type electrum or --xpub-type xpub")
	}
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	multisigConfirmCmd.Flags().StringVar(&multisigFile, "file", "", "multisig descriptor file (yaml)")
	multisigConfirmCmd.Flags().BoolVar(&multisigVerify, "verify-xpubs", false, "confirm each cosigner xpub")
	multisigConfirmCmd.Flags().StringVar(&multisigXPubType, "xpub-type", "xpub", "xpub encoding family: electrum, xpub")
	_ = multisigConfirmCmd.MarkFlagRequired("file")

	multisigCmd.AddCommand(multisigConfirmCmd)
	rootCmd.AddCommand(multisigCmd)
}
