// Package btc resolves coin/script-dependent extended-public-key
// encodings and drives the cosigner confirmation sequence for
// multisig account registration.
package btc

import (
	"fmt"

	"gopkg.in/yaml.v3"

	kferrors "github.com/keyfort/keyfort/pkg/errors"
)

// Coin identifies a supported network.
type Coin int

const (
	CoinBTC Coin = iota
	CoinTBTC
	CoinLTC
	CoinTLTC
)

// Name returns the display name used on confirmation screens. Callers
// must not pass a coin outside the recognized set.
func (c Coin) Name() string {
	switch c {
	case CoinBTC:
		return "Bitcoin"
	case CoinTBTC:
		return "BTC Testnet"
	case CoinLTC:
		return "Litecoin"
	case CoinTLTC:
		return "LTC Testnet"
	default:
		panic(fmt.Sprintf("btc: unknown coin %d", int(c)))
	}
}

// mainnet reports whether the coin belongs to the mainnet class.
func (c Coin) mainnet() bool {
	return c == CoinBTC || c == CoinLTC
}

// UnmarshalYAML accepts the lowercase ticker used in descriptor files.
func (c *Coin) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "btc":
		*c = CoinBTC
	case "tbtc":
		*c = CoinTBTC
	case "ltc":
		*c = CoinLTC
	case "tltc":
		*c = CoinTLTC
	default:
		return kferrors.Wrap(kferrors.ErrInvalidInput, "unknown coin %q", s)
	}
	return nil
}

// ScriptType is the multisig spending condition format.
type ScriptType int

const (
	ScriptP2WSH ScriptType = iota
	ScriptP2WSHP2SH
)

// UnmarshalYAML accepts "p2wsh" and "p2wsh-p2sh".
func (s *ScriptType) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch raw {
	case "p2wsh":
		*s = ScriptP2WSH
	case "p2wsh-p2sh":
		*s = ScriptP2WSHP2SH
	default:
		return kferrors.Wrap(kferrors.ErrInvalidInput, "unknown script type %q", raw)
	}
	return nil
}
