// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/vechain/faucet/thor"
	"github.com/vechain/faucet/tx"
)

// RawCall is a hex encoded signed call.
type RawCall struct {
	Raw string `json:"raw"`
}

// Transfer for json marshal
type Transfer struct {
	Sender    thor.Address          `json:"sender"`
	Recipient thor.Address          `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
}

// Receipt for json marshal
type Receipt struct {
	CallID       thor.Bytes32          `json:"callID"`
	Origin       thor.Address          `json:"origin"`
	Contract     thor.Address          `json:"contract"`
	Method       string                `json:"method"`
	GasUsed      uint64                `json:"gasUsed"`
	Paid         *math.HexOrDecimal256 `json:"paid"`
	Reverted     bool                  `json:"reverted"`
	RevertReason string                `json:"revertReason,omitempty"`
	RevertData   hexutil.Bytes         `json:"revertData,omitempty"`
	Transfers    []*Transfer           `json:"transfers"`
}

// SendResult is the response to a submitted call.
type SendResult struct {
	ID      thor.Bytes32 `json:"id"`
	Receipt *Receipt     `json:"receipt"`
}

func convertReceipt(r *tx.Receipt) *Receipt {
	receipt := &Receipt{
		CallID:       r.CallID,
		Origin:       r.Origin,
		Contract:     r.Contract,
		Method:       r.Method,
		GasUsed:      r.GasUsed,
		Paid:         (*math.HexOrDecimal256)(r.Paid),
		Reverted:     r.Reverted,
		RevertReason: r.RevertReason,
		RevertData:   r.RevertData,
		Transfers:    make([]*Transfer, len(r.Transfers)),
	}
	for i, t := range r.Transfers {
		receipt.Transfers[i] = &Transfer{
			Sender:    t.Sender,
			Recipient: t.Recipient,
			Amount:    (*math.HexOrDecimal256)(t.Amount),
		}
	}
	return receipt
}
