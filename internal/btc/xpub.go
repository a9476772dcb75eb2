package btc

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

// XPubType is the requested output encoding family.
type XPubType int

const (
	// XPubTypeAutoElectrum picks the SLIP-132 encoding Electrum expects
	// for the account's script type.
	XPubTypeAutoElectrum XPubType = iota

	// XPubTypeAutoXpubTpub picks plain xpub on mainnet and tpub on
	// testnet, regardless of script type.
	XPubTypeAutoXpubTpub
)

// XPubFormat is a concrete serialization format for an extended
// public key.
type XPubFormat int

const (
	FormatXpub XPubFormat = iota
	FormatTpub
	FormatCapitalYpub
	FormatCapitalZpub
	FormatCapitalUpub
	FormatCapitalVpub
)

// SLIP-132 version bytes per format.
var formatVersions = map[XPubFormat][4]byte{
	FormatXpub:        {0x04, 0x88, 0xb2, 0x1e},
	FormatTpub:        {0x04, 0x35, 0x87, 0xcf},
	FormatCapitalYpub: {0x02, 0x95, 0xb4, 0x3f},
	FormatCapitalZpub: {0x02, 0xaa, 0x7e, 0xd3},
	FormatCapitalUpub: {0x02, 0x42, 0x89, 0xef},
	FormatCapitalVpub: {0x02, 0x57, 0x54, 0x83},
}

// ResolveXPubFormat maps (coin, script type, requested family) to the
// concrete output format. An unsupported script type under the
// Electrum family is a recoverable error; a coin or family outside the
// recognized sets is a configuration the callers must never produce
// and panics.
func ResolveXPubFormat(coin Coin, script ScriptType, typ XPubType) (XPubFormat, error) {
	switch typ {
	case XPubTypeAutoElectrum:
		switch coin {
		case CoinBTC, CoinLTC:
			switch script {
			case ScriptP2WSH:
				return FormatCapitalZpub, nil
			case ScriptP2WSHP2SH:
				return FormatCapitalYpub, nil
			default:
				return 0, kferrors.Wrap(kferrors.ErrUnsupportedScript,
					"no Electrum encoding for script type %d", int(script))
			}
		case CoinTBTC, CoinTLTC:
			switch script {
			case ScriptP2WSH:
				return FormatCapitalVpub, nil
			case ScriptP2WSHP2SH:
				return FormatCapitalUpub, nil
			default:
				return 0, kferrors.Wrap(kferrors.ErrUnsupportedScript,
					"no Electrum encoding for script type %d", int(script))
			}
		default:
			panic(fmt.Sprintf("btc: resolve xpub format: unknown coin %d", int(coin)))
		}
	case XPubTypeAutoXpubTpub:
		if !coin.mainnet() && coin != CoinTBTC && coin != CoinTLTC {
			panic(fmt.Sprintf("btc: resolve xpub format: unknown coin %d", int(coin)))
		}
		if coin.mainnet() {
			return FormatXpub, nil
		}
		return FormatTpub, nil
	default:
		panic(fmt.Sprintf("btc: resolve xpub format: unknown xpub type %d", int(typ)))
	}
}

// EncodeXPub re-serializes an extended public key in the given format.
// Private keys are refused.
func EncodeXPub(xpub string, format XPubFormat) (string, error) {
	key, err := hdkeychain.NewKeyFromString(xpub)
	if err != nil {
		return "", kferrors.Wrap(kferrors.ErrInvalidXPub, "parsing extended key: %v", err)
	}
	if key.IsPrivate() {
		return "", kferrors.Wrap(kferrors.ErrInvalidXPub, "extended key is private")
	}
	version, ok := formatVersions[format]
	if !ok {
		panic(fmt.Sprintf("btc: encode xpub: unknown format %d", int(format)))
	}
	converted, err := key.CloneWithVersion(version[:])
	if err != nil {
		return "", kferrors.Wrap(kferrors.ErrInvalidXPub, "converting extended key: %v", err)
	}
	return converted.String(), nil
}
