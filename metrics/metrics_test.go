// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()
	assert.False(t, Enabled())

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	for _, m := range []any{
		Gauge("noopGauge"),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		Histogram("noopHist", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, m)
	}
	Counter("count").Add(1)
	HistogramVec("hist", []string{"method"}, nil).ObserveWithLabels(1, map[string]string{"nonsense": "ok"})

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPromMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()
	lazyCounter := LazyLoadCounter("lazy_counter")

	InitializePrometheusMetrics()
	t.Cleanup(func() { metrics = defaultNoopMetrics() })
	require.True(t, Enabled())
	require.IsType(t, &promCountMeter{}, lazyCounter())

	count := Counter("count1")
	count.Add(1)
	Counter("count1").Add(2)

	countVec := CounterVec("calls", []string{"method"})
	total := 0
	for i := range 10 {
		countVec.AddWithLabel(int64(i), map[string]string{"method": strconv.Itoa(i % 2)})
		total += i
	}

	gauge := Gauge("gauge1")
	gauge.Set(10)
	gauge.Add(-3)

	hist := HistogramVec("exec", []string{"method"}, BucketCallExec)
	hist.ObserveWithLabels(5, map[string]string{"method": "withdraw"})
	hist.ObserveWithLabels(7, map[string]string{"method": "withdraw"})

	families, err := metrics.(*prometheusMetrics).registry.Gather()
	require.NoError(t, err)
	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	assert.Equal(t, float64(3), byName["faucet_count1"].Metric[0].GetCounter().GetValue())
	sum := byName["faucet_calls"].Metric[0].GetCounter().GetValue() +
		byName["faucet_calls"].Metric[1].GetCounter().GetValue()
	assert.Equal(t, float64(total), sum)
	assert.Equal(t, float64(7), byName["faucet_gauge1"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, uint64(2), byName["faucet_exec"].Metric[0].GetHistogram().GetSampleCount())
	assert.Equal(t, float64(12), byName["faucet_exec"].Metric[0].GetHistogram().GetSampleSum())

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)
	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "faucet_count1 3"))
}
