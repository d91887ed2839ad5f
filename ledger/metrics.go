// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/vechain/faucet/metrics"

var (
	metricCallCount    = metrics.LazyLoadCounterVec("ledger_calls_count", []string{"method", "status"})
	metricCallDuration = metrics.LazyLoadHistogramVec("ledger_call_duration_ms", []string{"method"}, metrics.BucketCallExec)
	metricGasUsed      = metrics.LazyLoadCounter("ledger_gas_used")
	metricReceiptCache = metrics.LazyLoadCounterVec("ledger_receipt_cache_count", []string{"result"})
	metricCallGas      = metrics.LazyLoadHistogram("ledger_call_gas", metrics.BucketCallGas)
	metricCalls        = metrics.LazyLoadGauge("ledger_calls")
)
