// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/faucet/thor"
)

// Bool is a wrapper for storage and retrieval of a bool.
type Bool struct {
	context *Context
	pos     thor.Bytes32
}

func NewBool(context *Context, pos thor.Bytes32) *Bool {
	return &Bool{context: context, pos: pos}
}

func (b *Bool) Get() (bool, error) {
	storage, err := b.context.state.GetStorage(b.context.address, b.pos)
	if err != nil {
		return false, err
	}
	b.context.UseGas(thor.SloadGas)
	return !storage.IsZero(), nil
}

func (b *Bool) Set(v bool) error {
	var storage thor.Bytes32
	if v {
		storage[31] = 1
	}
	return setSlot(b.context, b.pos, storage)
}
