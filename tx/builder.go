// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/vechain/faucet/thor"
)

// Builder to make it easy to build a call.
type Builder struct {
	body body
}

// NewBuilder creates a builder with the default gas price.
func NewBuilder() *Builder {
	b := &Builder{}
	b.body.GasPrice = new(big.Int).Set(thor.InitialGasPrice)
	return b
}

// To set the faucet address.
func (b *Builder) To(to thor.Address) *Builder {
	b.body.To = &to
	return b
}

// Method set the faucet method.
func (b *Builder) Method(method string) *Builder {
	b.body.Method = method
	return b
}

// Amount set the method amount argument.
func (b *Builder) Amount(amount *big.Int) *Builder {
	b.body.Amount = copyBig(amount)
	return b
}

// Value set value sent along.
func (b *Builder) Value(value *big.Int) *Builder {
	b.body.Value = copyBig(value)
	return b
}

// Gas set gas provision for call.
func (b *Builder) Gas(gas uint64) *Builder {
	b.body.Gas = gas
	return b
}

// GasPrice set gas price.
func (b *Builder) GasPrice(price *big.Int) *Builder {
	b.body.GasPrice = copyBig(price)
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Build build call object.
func (b *Builder) Build() *Call {
	c := Call{body: b.body}
	if c.body.To != nil {
		to := *c.body.To
		c.body.To = &to
	}
	return &c
}
