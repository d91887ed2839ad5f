// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/faucet/metrics"
	"github.com/vechain/faucet/runtime"
	"github.com/vechain/faucet/tx"
)

func TestMain(m *testing.M) {
	// meters are created lazily, so prometheus must be in place before any call runs
	metrics.InitializePrometheusMetrics()
	os.Exit(m.Run())
}

func scrape(t *testing.T) string {
	rec := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestUnknownMethodsShareMetricLabel(t *testing.T) {
	l := newMemLedger(t)
	addr := execute(t, l, owner, tx.NewBuilder()).Contract

	for i := range 50 {
		call := tx.NewBuilder().
			To(addr).
			Method(fmt.Sprintf("junk-%d", i)).
			Gas(100000).
			Nonce(99).
			Build()
		_, err := l.Execute(context.Background(), tx.MustSign(call, otherAccount.PrivateKey))
		require.True(t, runtime.IsRejected(err))
	}

	body := scrape(t)
	assert.NotContains(t, body, "junk-")
	assert.Contains(t, body, `faucet_ledger_calls_count{method="unknown",status="rejected"} 50`)
	assert.Contains(t, body, `faucet_ledger_calls_count{method="deploy",status="success"}`)
	assert.Contains(t, body, "faucet_ledger_calls ")
	assert.Contains(t, body, "faucet_ledger_call_gas_bucket")
}
