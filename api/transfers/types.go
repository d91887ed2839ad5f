// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/vechain/faucet/logdb"
	"github.com/vechain/faucet/thor"
)

type LogMeta struct {
	CallID     thor.Bytes32 `json:"callID"`
	CallOrigin thor.Address `json:"callOrigin"`
	Timestamp  uint64       `json:"timestamp"`
	Index      uint32       `json:"transferIndex"`
}

type FilteredTransfer struct {
	Sender    thor.Address          `json:"sender"`
	Recipient thor.Address          `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Meta      LogMeta               `json:"meta"`
}

func convertTransfer(t *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Sender:    t.Sender,
		Recipient: t.Recipient,
		Amount:    (*math.HexOrDecimal256)(t.Amount),
		Meta: LogMeta{
			CallID:     t.CallID,
			CallOrigin: t.CallOrigin,
			Timestamp:  t.Timestamp,
			Index:      t.Index,
		},
	}
}
