// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/holiman/uint256"
	"github.com/vechain/faucet/kv"
	"github.com/vechain/faucet/stackedmap"
	"github.com/vechain/faucet/thor"
)

const (
	accountBucket = kv.Bucket("a")
	storageBucket = kv.Bucket("s")

	cacheSize = 4096
)

var (
	// ErrInsufficientBalance is returned when a debit exceeds the account balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrBalanceOverflow is returned when a credit would exceed 256 bits.
	ErrBalanceOverflow = errors.New("balance overflow")
	// ErrNegativeAmount is returned for negative balance operands.
	ErrNegativeAmount = errors.New("negative amount")
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

func (k storageKey) bytes() []byte {
	return append(k.addr.Bytes(), k.key.Bytes()...)
}

// State manages the world state: account balances, nonces and contract storage.
// Changes are kept in memory, revisioned by checkpoints, until Commit.
// It is not safe for concurrent use.
type State struct {
	accounts kv.Store
	storages kv.Store
	db       kv.Store
	cache    *lru.Cache                       // committed values
	sm       *stackedmap.StackedMap[any, any] // pending changes
}

// New create state object on top of the store.
func New(db kv.Store) *State {
	cache, _ := lru.New(cacheSize)
	s := &State{
		accounts: accountBucket.NewStore(db),
		storages: storageBucket.NewStore(db),
		db:       db,
		cache:    cache,
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New[any, any](s.load)
}

// load implements stackedmap.MapGetter, reading committed values.
func (s *State) load(key any) (any, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, true, nil
	}
	var (
		v   any
		err error
	)
	switch k := key.(type) {
	case thor.Address:
		v, err = loadAccount(s.accounts, k)
	case storageKey:
		v, err = s.loadStorage(k)
	default:
		panic(fmt.Errorf("unexpected key type %T", key))
	}
	if err != nil {
		return nil, false, err
	}
	s.cache.Add(key, v)
	return v, true, nil
}

func (s *State) loadStorage(k storageKey) (rlp.RawValue, error) {
	data, err := s.storages.Get(k.bytes())
	if err != nil {
		if s.storages.IsNotFound(err) {
			return rlp.RawValue(nil), nil
		}
		return nil, err
	}
	return rlp.RawValue(data), nil
}

// getAccount gets account by address. the returned account should not be modified.
func (s *State) getAccount(addr thor.Address) (*Account, error) {
	v, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, err
	}
	return v.(*Account), nil
}

// getAccountCopy get a copy of account by address.
func (s *State) getAccountCopy(addr thor.Address) (Account, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return Account{}, err
	}
	return acc.copy(), nil
}

func (s *State) updateAccount(addr thor.Address, acc *Account) {
	s.sm.Put(addr, acc)
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr thor.Address) (*big.Int, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return nil, &Error{err}
	}
	return new(big.Int).Set(acc.Balance), nil
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr thor.Address, balance *big.Int) error {
	if balance.Sign() < 0 {
		return ErrNegativeAmount
	}
	if _, overflow := uint256.FromBig(balance); overflow {
		return ErrBalanceOverflow
	}
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	cpy.Balance = new(big.Int).Set(balance)
	s.updateAccount(addr, &cpy)
	return nil
}

// AddBalance credits amount to the given address.
func (s *State) AddBalance(addr thor.Address, amount *big.Int) error {
	delta, err := toUint256(amount)
	if err != nil {
		return err
	}
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	bal, _ := uint256.FromBig(cpy.Balance)
	sum, overflow := new(uint256.Int).AddOverflow(bal, delta)
	if overflow {
		return ErrBalanceOverflow
	}
	cpy.Balance = sum.ToBig()
	s.updateAccount(addr, &cpy)
	return nil
}

// SubBalance debits amount from the given address.
// Nothing changes if the balance is insufficient.
func (s *State) SubBalance(addr thor.Address, amount *big.Int) error {
	delta, err := toUint256(amount)
	if err != nil {
		return err
	}
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	bal, _ := uint256.FromBig(cpy.Balance)
	if bal.Lt(delta) {
		return ErrInsufficientBalance
	}
	cpy.Balance = new(uint256.Int).Sub(bal, delta).ToBig()
	s.updateAccount(addr, &cpy)
	return nil
}

// Transfer moves amount from one address to another.
// It either fully applies or leaves both accounts unchanged.
func (s *State) Transfer(from, to thor.Address, amount *big.Int) error {
	delta, err := toUint256(amount)
	if err != nil {
		return err
	}
	fromAcc, err := s.getAccountCopy(from)
	if err != nil {
		return &Error{err}
	}
	fromBal, _ := uint256.FromBig(fromAcc.Balance)
	if fromBal.Lt(delta) {
		return ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	toAcc, err := s.getAccountCopy(to)
	if err != nil {
		return &Error{err}
	}
	toBal, _ := uint256.FromBig(toAcc.Balance)
	sum, overflow := new(uint256.Int).AddOverflow(toBal, delta)
	if overflow {
		return ErrBalanceOverflow
	}

	fromAcc.Balance = new(uint256.Int).Sub(fromBal, delta).ToBig()
	toAcc.Balance = sum.ToBig()
	s.updateAccount(from, &fromAcc)
	s.updateAccount(to, &toAcc)
	return nil
}

func toUint256(amount *big.Int) (*uint256.Int, error) {
	if amount.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	v, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, ErrBalanceOverflow
	}
	return v, nil
}

// GetNonce returns the call nonce of the given address.
func (s *State) GetNonce(addr thor.Address) (uint64, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return 0, &Error{err}
	}
	return acc.Nonce, nil
}

// SetNonce sets the call nonce of the given address.
func (s *State) SetNonce(addr thor.Address, nonce uint64) error {
	cpy, err := s.getAccountCopy(addr)
	if err != nil {
		return &Error{err}
	}
	cpy.Nonce = nonce
	s.updateAccount(addr, &cpy)
	return nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr thor.Address, key thor.Bytes32) (thor.Bytes32, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return thor.Bytes32{}, &Error{err}
	}
	raw := v.(rlp.RawValue)
	if len(raw) == 0 {
		return thor.Bytes32{}, nil
	}
	_, content, _, err := rlp.Split(raw)
	if err != nil {
		return thor.Bytes32{}, &Error{err}
	}
	return thor.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr thor.Address, key, value thor.Bytes32) {
	if value.IsZero() {
		s.sm.Put(storageKey{addr, key}, rlp.RawValue(nil))
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.sm.Put(storageKey{addr, key}, rlp.RawValue(v))
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit writes all pending changes into the store in one batch,
// then clears the checkpoints.
func (s *State) Commit() error {
	return s.CommitWith(nil)
}

// CommitWith is like Commit, with puts made by extra written in the same batch.
func (s *State) CommitWith(extra func(kv.Bulk) error) error {
	changes := make(map[any]any)
	var order []any
	s.sm.Journal(func(k, v any) bool {
		if _, ok := changes[k]; !ok {
			order = append(order, k)
		}
		changes[k] = v
		return true
	})
	if len(order) == 0 && extra == nil {
		return nil
	}

	bulk := s.db.Bulk()
	accounts := accountBucket.NewBulk(bulk)
	storages := storageBucket.NewBulk(bulk)
	for _, k := range order {
		switch key := k.(type) {
		case thor.Address:
			if err := saveAccount(accounts, key, changes[k].(*Account)); err != nil {
				return &Error{err}
			}
		case storageKey:
			raw := changes[k].(rlp.RawValue)
			var err error
			if len(raw) == 0 {
				err = storages.Delete(key.bytes())
			} else {
				err = storages.Put(key.bytes(), raw)
			}
			if err != nil {
				return &Error{err}
			}
		}
	}
	if extra != nil {
		if err := extra(bulk); err != nil {
			return err
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	for _, k := range order {
		s.cache.Add(k, changes[k])
	}
	s.reset()
	return nil
}
