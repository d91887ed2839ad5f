// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import "github.com/vechain/faucet/metrics"

var metricCallsSent = metrics.LazyLoadCounterVec("api_calls_sent_count", []string{"reverted"})
