// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"math/big"
)

// Gas schedule of a call.
const (
	TxGas     uint64 = 5000
	ClauseGas uint64 = 16000

	// IntrinsicGas is the minimum gas every call pays before execution.
	IntrinsicGas = TxGas + ClauseGas

	SloadGas             uint64 = 200
	SstoreSetGas         uint64 = 20000
	SstoreResetGas       uint64 = 5000
	GetBalanceGas        uint64 = 400
	CallValueTransferGas uint64 = 9000

	// MaxCallGas caps the gas a single call may provide.
	MaxCallGas uint64 = 10 * 1000 * 1000
)

var (
	// InitialGasPrice is the default minimum gas price accepted by the ledger.
	InitialGasPrice = big.NewInt(1e9)

	// FaucetWithdrawCeiling is the largest amount a single withdraw may move.
	FaucetWithdrawCeiling = new(big.Int).Div(Ether, big.NewInt(10))
)
