// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/faucet/thor"
)

// Address is a wrapper for storage and retrieval of an address. Similar to storing an address in a smart contract.
type Address struct {
	context *Context
	pos     thor.Bytes32
}

func NewAddress(context *Context, pos thor.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (thor.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return thor.Address{}, err
	}
	a.context.UseGas(thor.SloadGas)
	return thor.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr thor.Address) error {
	return setSlot(a.context, a.pos, thor.BytesToBytes32(addr.Bytes()))
}

// setSlot writes a slot, charging set gas when a zero slot becomes non-zero
// and reset gas otherwise.
func setSlot(ctx *Context, pos, value thor.Bytes32) error {
	prev, err := ctx.state.GetStorage(ctx.address, pos)
	if err != nil {
		return err
	}
	if prev.IsZero() && !value.IsZero() {
		ctx.UseGas(thor.SstoreSetGas)
	} else {
		ctx.UseGas(thor.SstoreResetGas)
	}
	ctx.state.SetStorage(ctx.address, pos, value)
	return nil
}
