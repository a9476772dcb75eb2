package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/keyfort/keyfort/internal/config"
	"github.com/keyfort/keyfort/internal/device"
	"github.com/keyfort/keyfort/internal/keystore"
	"github.com/keyfort/keyfort/internal/secure"
	"github.com/keyfort/keyfort/internal/ui"
	"github.com/keyfort/keyfort/internal/workflow"
	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Recover a wallet from its mnemonic",
	Long: `Restore walks through word-by-word mnemonic entry, validates the
recovery words, and stores the derived seed encrypted under a new
password. The device is marked initialized and unlocked on success.`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, _ []string) error {
	home := config.ExpandHome(cfg.Home)

	term := ui.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	ks := keystore.NewFileKeystore(home, cfg.Security.MaxUnlockAttempts)
	mem := device.NewFileMemory(home)
	counter := device.NewFileCounter(home)

	w := workflow.New(term, ks, mem, counter, logger, cfg.Security.U2F)

	var req *workflow.RestoreRequest
	if cfg.Security.U2F {
		now := time.Now()
		_, offset := now.Zone()
		req = &workflow.RestoreRequest{
			Timestamp:      now,
			TimezoneOffset: offset,
		}
	}

	if err := w.RestoreFromMnemonic(req); err != nil {
		if kferrors.Is(err, kferrors.ErrUserAbort) {
			return err
		}
		return kferrors.WithSuggestion(err,
			"check the recovery words and run 'keyfort restore' again")
	}

	term.Status("Device initialized", true)
	return nil
}

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock the stored seed with the device password",
	Args:  cobra.NoArgs,
	RunE:  runUnlock,
}

func runUnlock(cmd *cobra.Command, _ []string) error {
	home := config.ExpandHome(cfg.Home)
	ks := keystore.NewFileKeystore(home, cfg.Security.MaxUnlockAttempts)

	if !ks.HasSeed() {
		return kferrors.WithSuggestion(kferrors.ErrKeystoreFatal,
			"no stored seed found; run 'keyfort restore' first")
	}

	term := ui.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	password, err := term.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	defer secure.Zero(password)

	remaining, err := ks.Unlock(password)
	if err != nil {
		if kferrors.Is(err, kferrors.ErrWrongPassword) {
			term.Status("Wrong password", false)
			logger.Debug("unlock: wrong password, %d attempts remaining", remaining)
			return kferrors.Wrap(err, "%d attempts remaining", remaining)
		}
		return err
	}

	term.Status("Unlocked", true)
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(unlockCmd)
}
