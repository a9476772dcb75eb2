package btc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

// BIP32 test vector 1 master keys.
const (
	testXPub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"
	testXPrv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
)

func TestResolveXPubFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		coin   Coin
		script ScriptType
		typ    XPubType
		want   XPubFormat
	}{
		{"btc p2wsh electrum", CoinBTC, ScriptP2WSH, XPubTypeAutoElectrum, FormatCapitalZpub},
		{"btc p2wsh-p2sh electrum", CoinBTC, ScriptP2WSHP2SH, XPubTypeAutoElectrum, FormatCapitalYpub},
		{"ltc p2wsh electrum", CoinLTC, ScriptP2WSH, XPubTypeAutoElectrum, FormatCapitalZpub},
		{"tbtc p2wsh electrum", CoinTBTC, ScriptP2WSH, XPubTypeAutoElectrum, FormatCapitalVpub},
		{"tbtc p2wsh-p2sh electrum", CoinTBTC, ScriptP2WSHP2SH, XPubTypeAutoElectrum, FormatCapitalUpub},
		{"tltc p2wsh-p2sh electrum", CoinTLTC, ScriptP2WSHP2SH, XPubTypeAutoElectrum, FormatCapitalUpub},
		{"btc xpub", CoinBTC, ScriptP2WSH, XPubTypeAutoXpubTpub, FormatXpub},
		{"ltc xpub", CoinLTC, ScriptP2WSH, XPubTypeAutoXpubTpub, FormatXpub},
		{"tbtc tpub", CoinTBTC, ScriptP2WSHP2SH, XPubTypeAutoXpubTpub, FormatTpub},
		{"tltc tpub", CoinTLTC, ScriptP2WSH, XPubTypeAutoXpubTpub, FormatTpub},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveXPubFormat(tt.coin, tt.script, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveXPubFormat_UnsupportedScript(t *testing.T) {
	t.Parallel()

	for _, coin := range []Coin{CoinBTC, CoinTBTC} {
		_, err := ResolveXPubFormat(coin, ScriptType(99), XPubTypeAutoElectrum)
		require.ErrorIs(t, err, kferrors.ErrUnsupportedScript)
	}

	// The xpub/tpub family ignores the script type entirely.
	got, err := ResolveXPubFormat(CoinBTC, ScriptType(99), XPubTypeAutoXpubTpub)
	require.NoError(t, err)
	assert.Equal(t, FormatXpub, got)
}

func TestResolveXPubFormat_UnreachableConfigPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_, _ = ResolveXPubFormat(Coin(99), ScriptP2WSH, XPubTypeAutoElectrum)
	})
	require.Panics(t, func() {
		_, _ = ResolveXPubFormat(Coin(99), ScriptP2WSH, XPubTypeAutoXpubTpub)
	})
	require.Panics(t, func() {
		_, _ = ResolveXPubFormat(CoinBTC, ScriptP2WSH, XPubType(99))
	})
}

func TestEncodeXPub_IdentityFormat(t *testing.T) {
	t.Parallel()

	got, err := EncodeXPub(testXPub, FormatXpub)
	require.NoError(t, err)
	assert.Equal(t, testXPub, got)
}

func TestEncodeXPub_Slip132Prefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format XPubFormat
		prefix string
	}{
		{FormatCapitalYpub, "Ypub"},
		{FormatCapitalZpub, "Zpub"},
		{FormatCapitalUpub, "Upub"},
		{FormatCapitalVpub, "Vpub"},
		{FormatTpub, "tpub"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.prefix, func(t *testing.T) {
			t.Parallel()

			got, err := EncodeXPub(testXPub, tt.format)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(got, tt.prefix),
				"encoded key %q lacks prefix %q", got, tt.prefix)

			// Re-encoding back to xpub must reproduce the input
			// exactly; only the version bytes change.
			back, err := EncodeXPub(got, FormatXpub)
			require.NoError(t, err)
			assert.Equal(t, testXPub, back)
		})
	}
}

func TestEncodeXPub_RejectsPrivateKey(t *testing.T) {
	t.Parallel()

	_, err := EncodeXPub(testXPrv, FormatXpub)
	require.ErrorIs(t, err, kferrors.ErrInvalidXPub)
}

func TestEncodeXPub_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := EncodeXPub("not an extended key", FormatXpub)
	require.ErrorIs(t, err, kferrors.ErrInvalidXPub)
}
