// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/vechain/faucet/state"
	"github.com/vechain/faucet/thor"
)

type UseGasFunc func(gas uint64)

// Transfer is a value transfer made by a builtin contract.
type Transfer struct {
	Sender    thor.Address
	Recipient thor.Address
	Amount    *big.Int
}

// Context is the execution context of a builtin contract bound to its address.
type Context struct {
	address   thor.Address
	state     *state.State
	charger   UseGasFunc
	transfers []*Transfer
}

func NewContext(address thor.Address, state *state.State, charger UseGasFunc) *Context {
	return &Context{
		address: address,
		state:   state,
		charger: charger,
	}
}

func (c *Context) Address() thor.Address {
	return c.address
}

func (c *Context) UseGas(gas uint64) {
	if c.charger != nil {
		c.charger(gas)
	}
}

// Balance returns the native balance of addr.
func (c *Context) Balance(addr thor.Address) (*big.Int, error) {
	c.UseGas(thor.GetBalanceGas)
	return c.state.GetBalance(addr)
}

// Transfer moves native value and records it.
func (c *Context) Transfer(from, to thor.Address, amount *big.Int) error {
	c.UseGas(thor.CallValueTransferGas)
	if err := c.state.Transfer(from, to, amount); err != nil {
		return err
	}
	c.transfers = append(c.transfers, &Transfer{
		Sender:    from,
		Recipient: to,
		Amount:    new(big.Int).Set(amount),
	})
	return nil
}

// Transfers returns transfers recorded so far.
func (c *Context) Transfers() []*Transfer {
	return c.transfers
}
