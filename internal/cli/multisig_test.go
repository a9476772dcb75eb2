package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyfort/keyfort/internal/btc"
	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

// BIP32 test vector 1 master public key.
const testXPub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "account.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validDescriptor() string {
	return fmt.Sprintf(`coin: btc
name: Family savings
threshold: 2
xpubs:
  - %s
  - %s
  - %s
our_xpub_index: 1
script_type: p2wsh
`, testXPub, testXPub, testXPub)
}

func TestLoadMultisigDescriptor(t *testing.T) {
	path := writeDescriptor(t, validDescriptor())

	m, err := loadMultisigDescriptor(path)
	require.NoError(t, err)
	assert.Equal(t, btc.CoinBTC, m.Coin)
	assert.Equal(t, "Family savings", m.Name)
	assert.Equal(t, uint32(2), m.Threshold)
	assert.Len(t, m.XPubs, 3)
	assert.Equal(t, uint32(1), m.OurXPubIndex)
	assert.Equal(t, btc.ScriptP2WSH, m.ScriptType)
}

func TestLoadMultisigDescriptor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "empty path",
			path:    func(*testing.T) string { return "" },
			wantErr: kferrors.ErrInvalidInput,
		},
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.yaml")
			},
			wantErr: kferrors.ErrInvalidInput,
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string {
				return writeDescriptor(t, "coin: [broken")
			},
			wantErr: kferrors.ErrInvalidInput,
		},
		{
			name: "unknown coin",
			path: func(t *testing.T) string {
				return writeDescriptor(t, "coin: doge")
			},
			wantErr: kferrors.ErrInvalidInput,
		},
		{
			name: "invariant violation",
			path: func(t *testing.T) string {
				return writeDescriptor(t, fmt.Sprintf(
					"coin: btc\nthreshold: 5\nxpubs: [%s]\nscript_type: p2wsh\n", testXPub))
			},
			wantErr: kferrors.ErrInvalidMultisig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadMultisigDescriptor(tt.path(t))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseXPubType(t *testing.T) {
	typ, err := parseXPubType("electrum")
	require.NoError(t, err)
	assert.Equal(t, btc.XPubTypeAutoElectrum, typ)

	typ, err = parseXPubType("xpub")
	require.NoError(t, err)
	assert.Equal(t, btc.XPubTypeAutoXpubTpub, typ)

	_, err = parseXPubType("slip132")
	require.ErrorIs(t, err, kferrors.ErrInvalidInput)
}

func TestMultisigConfirmCommand(t *testing.T) {
	path := writeDescriptor(t, validDescriptor())

	// Summary and name confirmations accept on empty input; no xpub
	// verification requested.
	in := bytes.NewBufferString("\n\n")
	out := &bytes.Buffer{}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{
		"multisig", "confirm",
		"--file", path,
		"--home", t.TempDir(),
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Coin: Bitcoin")
	assert.Contains(t, out.String(), "2-of-3")
	assert.Contains(t, out.String(), "Multisig account")
}
