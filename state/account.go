// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/vechain/faucet/kv"
	"github.com/vechain/faucet/thor"
)

// Account is the ledger representation of an account.
// RLP encoded objects are stored in the account bucket.
type Account struct {
	Balance *big.Int
	Nonce   uint64
}

// IsEmpty returns if an account is empty.
// Empty accounts are not persisted.
func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0 && a.Nonce == 0
}

func (a *Account) copy() Account {
	return Account{
		Balance: new(big.Int).Set(a.Balance),
		Nonce:   a.Nonce,
	}
}

func emptyAccount() *Account {
	return &Account{Balance: &big.Int{}}
}

// loadAccount load an account object by address from the account store.
// Returns an empty account if the address is unknown.
func loadAccount(store kv.Getter, addr thor.Address) (*Account, error) {
	data, err := store.Get(addr[:])
	if err != nil {
		if store.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	if a.Balance == nil {
		a.Balance = &big.Int{}
	}
	return &a, nil
}

// saveAccount saves an account into the store.
// An empty account will be removed.
func saveAccount(putter kv.Putter, addr thor.Address, a *Account) error {
	if a.IsEmpty() {
		return putter.Delete(addr[:])
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return putter.Put(addr[:], data)
}
