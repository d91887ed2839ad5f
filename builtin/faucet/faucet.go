// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package faucet implements the faucet ledger as a native builtin contract.
// The contract keeps its owner and active flag in storage slots and its
// balance as the native balance of the contract address.
package faucet

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/faucet/builtin/solidity"
	"github.com/vechain/faucet/state"
	"github.com/vechain/faucet/thor"
)

// Method names accepted by Invoke.
const (
	MethodReceive     = ""
	MethodWithdraw    = "withdraw"
	MethodWithdrawAll = "withdrawAll"
	MethodDestroy     = "destroyFaucet"
)

var (
	ownerSlot  = thor.Keccak256([]byte("owner"))
	activeSlot = thor.Keccak256([]byte("active"))
)

// Faucet binds the faucet contract to an address in the given state.
type Faucet struct {
	context *solidity.Context
	owner   *solidity.Address
	active  *solidity.Bool
}

// New creates a faucet contract object. Gas for every storage and balance
// access is reported to charger.
func New(addr thor.Address, state *state.State, charger solidity.UseGasFunc) *Faucet {
	ctx := solidity.NewContext(addr, state, charger)
	return &Faucet{
		context: ctx,
		owner:   solidity.NewAddress(ctx, ownerSlot),
		active:  solidity.NewBool(ctx, activeSlot),
	}
}

// Address returns the contract address.
func (f *Faucet) Address() thor.Address {
	return f.context.Address()
}

// Transfers returns value transfers made by the contract so far.
func (f *Faucet) Transfers() []*solidity.Transfer {
	return f.context.Transfers()
}

// Deploy initializes the faucet with the deployer as owner.
func (f *Faucet) Deploy(owner thor.Address) error {
	cur, err := f.owner.Get()
	if err != nil {
		return err
	}
	if !cur.IsZero() {
		return ErrAlreadyDeployed
	}
	if err := f.owner.Set(owner); err != nil {
		return err
	}
	return f.active.Set(true)
}

// Owner returns the owner set at deployment.
func (f *Faucet) Owner() (thor.Address, error) {
	owner, err := f.owner.Get()
	if err != nil {
		return thor.Address{}, err
	}
	if owner.IsZero() {
		return thor.Address{}, ErrNotFound
	}
	return owner, nil
}

// Active reports whether the faucet has not been destroyed.
func (f *Faucet) Active() (bool, error) {
	if _, err := f.Owner(); err != nil {
		return false, err
	}
	return f.active.Get()
}

// Balance returns the amount held by the faucet.
func (f *Faucet) Balance() (*big.Int, error) {
	if _, err := f.Owner(); err != nil {
		return nil, err
	}
	return f.context.Balance(f.Address())
}

// Invoke dispatches a call of method by caller carrying value.
// Only the receive entry point accepts value.
func (f *Faucet) Invoke(method string, caller thor.Address, value, amount *big.Int) error {
	if method != MethodReceive && value != nil && value.Sign() > 0 {
		return ErrNotPayable
	}
	switch method {
	case MethodReceive:
		return f.Deposit(caller, value)
	case MethodWithdraw:
		return f.Withdraw(caller, amount)
	case MethodWithdrawAll:
		return f.WithdrawAll(caller)
	case MethodDestroy:
		return f.Destroy(caller)
	default:
		return ErrUnknownMethod
	}
}

// Deposit credits amount sent by from.
func (f *Faucet) Deposit(from thor.Address, amount *big.Int) error {
	if _, err := f.requireActive(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	return f.context.Transfer(from, f.Address(), amount)
}

// Withdraw sends amount to caller, at most the withdraw ceiling per call.
func (f *Faucet) Withdraw(caller thor.Address, amount *big.Int) error {
	if _, err := f.requireActive(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() < 0 {
		amount = new(big.Int)
	}
	if amount.Cmp(thor.FaucetWithdrawCeiling) > 0 {
		return ErrLimitExceeded
	}
	return f.pay(caller, amount)
}

// WithdrawAll sends the whole balance to the owner. Owner only.
func (f *Faucet) WithdrawAll(caller thor.Address) error {
	owner, err := f.requireOwner(caller)
	if err != nil {
		return err
	}
	return f.drain(owner)
}

// Destroy sends the whole balance to the owner and deactivates the faucet
// for good. Owner only.
func (f *Faucet) Destroy(caller thor.Address) error {
	owner, err := f.requireOwner(caller)
	if err != nil {
		return err
	}
	if err := f.drain(owner); err != nil {
		return err
	}
	return f.active.Set(false)
}

func (f *Faucet) requireActive() (thor.Address, error) {
	owner, err := f.Owner()
	if err != nil {
		return thor.Address{}, err
	}
	active, err := f.active.Get()
	if err != nil {
		return thor.Address{}, err
	}
	if !active {
		return thor.Address{}, ErrInactive
	}
	return owner, nil
}

func (f *Faucet) requireOwner(caller thor.Address) (thor.Address, error) {
	owner, err := f.requireActive()
	if err != nil {
		return thor.Address{}, err
	}
	if caller != owner {
		return thor.Address{}, ErrUnauthorized
	}
	return owner, nil
}

func (f *Faucet) drain(to thor.Address) error {
	bal, err := f.context.Balance(f.Address())
	if err != nil {
		return err
	}
	return f.pay(to, bal)
}

func (f *Faucet) pay(to thor.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if err := f.context.Transfer(f.Address(), to, amount); err != nil {
		if errors.Is(err, state.ErrInsufficientBalance) {
			return ErrInsufficientBalance
		}
		return errors.WithMessage(err, "faucet transfer")
	}
	return nil
}
