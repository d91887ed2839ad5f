// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/vechain/faucet/api/accounts"
	"github.com/vechain/faucet/api/calls"
	"github.com/vechain/faucet/api/faucets"
	"github.com/vechain/faucet/api/node"
	"github.com/vechain/faucet/api/transfers"
	"github.com/vechain/faucet/ledger"
	"github.com/vechain/faucet/log"
	"github.com/vechain/faucet/metrics"
)

var logger = log.WithContext("pkg", "api")

const DefaultLogsLimit = 1000

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
	LogsLimit       uint64
}

// New return api router
func New(l *ledger.Ledger, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	if opts.LogsLimit == 0 {
		opts.LogsLimit = DefaultLogsLimit
	}

	router := mux.NewRouter()

	accounts.New(l).
		Mount(router, "/accounts")
	faucets.New(l).
		Mount(router, "/faucets")
	calls.New(l).
		Mount(router, "/calls")
	transfers.New(l.LogDB(), opts.LogsLimit).
		Mount(router, "/logs")
	node.New(l).
		Mount(router, "/node")

	if opts.EnableMetrics {
		router.Path("/metrics").
			Methods(http.MethodGet).
			Name("GET /metrics").
			Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	genesisID := l.Genesis().ID().String()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-genesis-id", genesisID)
			next.ServeHTTP(w, r)
		})
	})

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}
