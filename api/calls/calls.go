// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/faucet/api/utils"
	"github.com/vechain/faucet/ledger"
	"github.com/vechain/faucet/runtime"
	"github.com/vechain/faucet/thor"
	"github.com/vechain/faucet/tx"
)

type Calls struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Calls {
	return &Calls{ledger}
}

func (c *Calls) handleSendCall(w http.ResponseWriter, req *http.Request) error {
	var raw RawCall
	if err := utils.ParseJSON(req.Body, &raw); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	data, err := hexutil.Decode(raw.Raw)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}
	call, err := tx.Decode(data)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}

	receipt, err := c.ledger.Execute(req.Context(), call)
	if err != nil {
		if runtime.IsRejected(err) {
			return utils.BadRequest(errors.WithMessage(err, "call rejected"))
		}
		return err
	}
	metricCallsSent().AddWithLabel(1, map[string]string{"reverted": boolLabel(receipt.Reverted)})

	return utils.WriteJSON(w, &SendResult{
		ID:      receipt.CallID,
		Receipt: convertReceipt(receipt),
	})
}

func (c *Calls) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := thor.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	receipt, err := c.ledger.Receipt(id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return utils.NotFound(errors.WithMessage(err, "receipt"))
		}
		return err
	}
	return utils.WriteJSON(w, convertReceipt(receipt))
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (c *Calls) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /calls").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSendCall))
	sub.Path("/{id}/receipt").
		Methods(http.MethodGet).
		Name("GET /calls/{id}/receipt").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetReceipt))
}
