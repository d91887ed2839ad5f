// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vechain/faucet/api/utils"
	"github.com/vechain/faucet/ledger"
	"github.com/vechain/faucet/thor"
)

// Status reports the node identity and progress.
type Status struct {
	GenesisID   thor.Bytes32 `json:"genesisID"`
	GenesisName string       `json:"genesisName"`
	Calls       uint64       `json:"calls"`
}

type Node struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Node {
	return &Node{ledger}
}

func (n *Node) handleStatus(w http.ResponseWriter, _ *http.Request) error {
	gen := n.ledger.Genesis()
	return utils.WriteJSON(w, &Status{
		GenesisID:   gen.ID(),
		GenesisName: gen.Name(),
		Calls:       n.ledger.Calls(),
	})
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").
		Methods(http.MethodGet).
		Name("GET /node/status").
		HandlerFunc(utils.WrapHandlerFunc(n.handleStatus))
}
