// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vechain/faucet/api/utils"
	"github.com/vechain/faucet/logdb"
	"github.com/vechain/faucet/thor"
)

type Transfers struct {
	logDB *logdb.LogDB
	limit uint64
}

func New(logDB *logdb.LogDB, logsLimit uint64) *Transfers {
	return &Transfers{
		logDB,
		logsLimit,
	}
}

func (t *Transfers) parseFilter(req *http.Request) (*logdb.TransferFilter, error) {
	query := req.URL.Query()
	filter := &logdb.TransferFilter{
		Options: &logdb.Options{Limit: t.limit},
		Order:   logdb.ASC,
	}

	if s := query.Get("address"); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "address"))
		}
		filter.CriteriaSet = []*logdb.TransferCriteria{{Address: &addr}}
	}
	if s := query.Get("offset"); s != "" {
		offset, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "offset"))
		}
		// sqlite binds signed 64-bit integers only
		if offset > math.MaxInt64 {
			return nil, utils.BadRequest(errors.New("offset: out of range"))
		}
		filter.Options.Offset = offset
	}
	if s := query.Get("limit"); s != "" {
		limit, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "limit"))
		}
		if limit > t.limit {
			return nil, utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", t.limit))
		}
		filter.Options.Limit = limit
	}
	switch order := logdb.Order(query.Get("order")); order {
	case "":
	case logdb.ASC, logdb.DESC:
		filter.Order = order
	default:
		return nil, utils.BadRequest(errors.New("order: must be asc or desc"))
	}
	return filter, nil
}

func (t *Transfers) handleFilterTransfers(w http.ResponseWriter, req *http.Request) error {
	filter, err := t.parseFilter(req)
	if err != nil {
		return err
	}
	transfers, err := t.logDB.FilterTransfers(req.Context(), filter)
	if err != nil {
		return err
	}
	results := make([]*FilteredTransfer, 0, len(transfers))
	for _, tr := range transfers {
		results = append(results, convertTransfer(tr))
	}
	return utils.WriteJSON(w, results)
}

func (t *Transfers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/transfers").
		Methods(http.MethodGet).
		Name("GET /logs/transfers").
		HandlerFunc(utils.WrapHandlerFunc(t.handleFilterTransfers))
}
