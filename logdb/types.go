// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/vechain/faucet/thor"
)

// Transfer represents tx.Transfer that can be stored in db.
type Transfer struct {
	Seq        uint64
	CallID     thor.Bytes32
	CallOrigin thor.Address
	Timestamp  uint64
	Index      uint32
	Sender     thor.Address
	Recipient  thor.Address
	Amount     *big.Int
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Options struct {
	Offset uint64
	Limit  uint64
}

// TransferCriteria matches transfers. Empty fields match anything.
type TransferCriteria struct {
	CallOrigin *thor.Address
	Sender     *thor.Address
	Recipient  *thor.Address
	// either sender or recipient
	Address *thor.Address
}

// TransferFilter filters transfers by criteria set, any criteria may match.
type TransferFilter struct {
	CallID      *thor.Bytes32
	CriteriaSet []*TransferCriteria
	Options     *Options
	Order       Order
}
