// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package faucets

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/faucet/api/utils"
	"github.com/vechain/faucet/builtin/faucet"
	"github.com/vechain/faucet/ledger"
	"github.com/vechain/faucet/thor"
)

// Faucet for marshal faucet state.
type Faucet struct {
	Address thor.Address          `json:"address"`
	Owner   thor.Address          `json:"owner"`
	Balance *math.HexOrDecimal256 `json:"balance"`
	Active  bool                  `json:"active"`
}

type Faucets struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Faucets {
	return &Faucets{ledger}
}

func (f *Faucets) handleGetFaucet(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	info, err := f.ledger.Faucet(addr)
	if err != nil {
		if errors.Is(err, faucet.ErrNotFound) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, &Faucet{
		Address: info.Address,
		Owner:   info.Owner,
		Balance: (*math.HexOrDecimal256)(info.Balance),
		Active:  info.Active,
	})
}

func (f *Faucets) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /faucets/{address}").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetFaucet))
}
