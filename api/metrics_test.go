// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/faucet/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitializePrometheusMetrics()
	os.Exit(m.Run())
}

func scrapeMetrics(t *testing.T) string {
	rec := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsMiddleware(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	router := mux.NewRouter()
	router.Path("/slow").Name("GET /slow").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusTeapot)
	})
	router.Path("/unnamed").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})
	router.Use(metricsMiddleware)

	ts := httptest.NewServer(router)
	defer ts.Close()

	done := make(chan int)
	go func() {
		resp, err := http.Get(ts.URL + "/slow")
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()

	<-entered
	assert.Contains(t, scrapeMetrics(t), "faucet_api_requests_in_flight 1\n")
	close(release)
	assert.Equal(t, http.StatusTeapot, <-done)

	resp, err := http.Get(ts.URL + "/unnamed")
	require.NoError(t, err)
	resp.Body.Close()

	body := scrapeMetrics(t)
	assert.Contains(t, body, "faucet_api_requests_in_flight 0\n")
	assert.Contains(t, body, `faucet_api_request_count{code="418",method="GET",name="GET /slow"} 1`)
	assert.NotContains(t, body, "/unnamed")
}
