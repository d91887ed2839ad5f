// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"github.com/vechain/faucet/state"
	"github.com/vechain/faucet/thor"
	"github.com/vechain/faucet/tx"
)

// RejectedError is returned for calls that can not be executed at all.
// A rejected call leaves no receipt and no state change.
type RejectedError struct {
	msg string
}

func (e *RejectedError) Error() string {
	return e.msg
}

var (
	ErrIntrinsicGas      = &RejectedError{"intrinsic gas exceeds provided gas"}
	ErrGasLimit          = &RejectedError{"gas exceeds call gas limit"}
	ErrGasPriceTooLow    = &RejectedError{"gas price too low"}
	ErrBadNonce          = &RejectedError{"bad nonce"}
	ErrInsufficientFunds = &RejectedError{"insufficient balance for gas and value"}
	ErrValueTooLarge     = &RejectedError{"value too large"}
)

// IsRejected reports whether err means the call was rejected.
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}

// ResolvedCall resolve the call and performs basic validation.
type ResolvedCall struct {
	call         *tx.Call
	ID           thor.Bytes32
	Origin       thor.Address
	IntrinsicGas uint64
}

// ResolveCall resolves the call signer and validates gas and value.
func ResolveCall(call *tx.Call) (*ResolvedCall, error) {
	origin, err := call.Origin()
	if err != nil {
		return nil, &RejectedError{"invalid signature: " + err.Error()}
	}
	id, err := call.ID()
	if err != nil {
		return nil, &RejectedError{"invalid signature: " + err.Error()}
	}

	intrinsicGas := call.IntrinsicGas()
	if call.Gas() < intrinsicGas {
		return nil, ErrIntrinsicGas
	}
	if call.Gas() > thor.MaxCallGas {
		return nil, ErrGasLimit
	}
	if call.Value().Cmp(math.MaxBig256) > 0 || call.Amount().Cmp(math.MaxBig256) > 0 {
		return nil, ErrValueTooLarge
	}

	return &ResolvedCall{
		call:         call,
		ID:           id,
		Origin:       origin,
		IntrinsicGas: intrinsicGas,
	}, nil
}

// BuyGas prepays the whole gas provision from the origin. The origin must
// also be able to cover the value sent along. The returned func refunds
// unused gas and reports the fee finally paid.
func (r *ResolvedCall) BuyGas(st *state.State, minGasPrice *big.Int) (
	gasPrice *big.Int,
	returnGas func(rgas uint64) (paid *big.Int, err error),
	err error,
) {
	gasPrice = r.call.GasPrice()
	if minGasPrice != nil && gasPrice.Cmp(minGasPrice) < 0 {
		return nil, nil, ErrGasPriceTooLow
	}

	prepaid := new(big.Int).Mul(new(big.Int).SetUint64(r.call.Gas()), gasPrice)
	required := new(big.Int).Add(prepaid, r.call.Value())

	balance, err := st.GetBalance(r.Origin)
	if err != nil {
		return nil, nil, err
	}
	if balance.Cmp(required) < 0 {
		return nil, nil, ErrInsufficientFunds
	}
	if err := st.SubBalance(r.Origin, prepaid); err != nil {
		return nil, nil, err
	}

	return gasPrice, func(rgas uint64) (*big.Int, error) {
		returned := new(big.Int).Mul(new(big.Int).SetUint64(rgas), gasPrice)
		if err := st.AddBalance(r.Origin, returned); err != nil {
			return nil, err
		}
		return new(big.Int).Sub(prepaid, returned), nil
	}, nil
}
