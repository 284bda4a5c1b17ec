// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/vechain/nftstaker/metrics"
)

var (
	metricCalls        = metrics.LazyLoadCounterVec("staking_calls_count", []string{"method", "outcome"})
	metricCallDuration = metrics.LazyLoadHistogramVec("staking_call_duration_ms", []string{"method"}, metrics.BucketCalls)
	metricTotalStaked  = metrics.LazyLoadGauge("staking_total_staked")
	metricHeight       = metrics.LazyLoadGauge("staking_height")
	metricCacheHits    = metrics.LazyLoadGaugeVec("state_cache", []string{"event"})
)
