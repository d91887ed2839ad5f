// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"github.com/vechain/faucet/thor"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	Name     string    `json:"name"`
	Accounts []Account `json:"accounts"`
}

// Account is an account pre-allocated by the genesis.
type Account struct {
	Address thor.Address     `json:"address"`
	Balance *HexOrDecimal256 `json:"balance"`
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		return (*big.Int)(i).UnmarshalJSON(input)
	}
	bigint, ok := math.ParseBig256(hex)
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	v := math.HexOrDecimal256(i)
	text, err := v.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// NewCustomNet creates a genesis from a customized allocation.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if len(gen.Accounts) == 0 {
		return nil, errors.New("no accounts allocated")
	}
	name := gen.Name
	if name == "" {
		name = "customnet"
	}

	seen := make(map[thor.Address]bool)
	builder := new(Builder)
	for _, acc := range gen.Accounts {
		if seen[acc.Address] {
			return nil, errors.Errorf("duplicated account %v", acc.Address)
		}
		seen[acc.Address] = true

		bal := new(big.Int)
		if acc.Balance != nil {
			bal = (*big.Int)(acc.Balance)
		}
		if bal.Sign() < 0 {
			return nil, errors.Errorf("negative balance for %v", acc.Address)
		}
		builder.Alloc(acc.Address, bal)
	}
	return builder.Build(name), nil
}
