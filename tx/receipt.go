// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/vechain/faucet/thor"
)

// Transfer is a value transfer made while executing a call.
type Transfer struct {
	Sender    thor.Address
	Recipient thor.Address
	Amount    *big.Int
}

// Transfers slice of transfers.
type Transfers []*Transfer

// Receipt represents the results of a call.
type Receipt struct {
	CallID thor.Bytes32
	Origin thor.Address
	// faucet the call was sent to, or the deployed one
	Contract thor.Address
	Method   string
	GasUsed  uint64
	// fee paid for gas used
	Paid     *big.Int
	Reverted bool
	// decoded from RevertData, not encoded
	RevertReason string `rlp:"-"`
	// ABI encoded Error(string) of the revert
	RevertData []byte
	Transfers  Transfers
}
