// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/vechain/nftstaker/metrics"
)

var (
	metricQueryParameters = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"type", "parameters"})
	metricQueryOrder      = metrics.LazyLoadCounterVec("logdb_query_order", []string{"type", "order"})
	metricOffsetBucket    = metrics.LazyLoadHistogramVec("logdb_query_offset_bucket", []string{"type"}, []int64{
		0, 100, 1_000, 10_000, 100_000,
	})
	metricLimitBucket = metrics.LazyLoadHistogramVec("logdb_query_limit_bucket", []string{"type"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
	metricRowsInserted = metrics.LazyLoadCounterVec("logdb_rows_inserted", []string{"type"})
)

func metricsHandleEventsFilter(filter *EventFilter) {
	if !metrics.Enabled() {
		return
	}
	params := make([]string, 0, 5)
	if filter.TokenID != nil {
		params = append(params, "tokenId")
	}
	if len(filter.Types) > 0 {
		params = append(params, "type")
	}
	if filter.Caller != nil {
		params = append(params, "caller")
	}
	if filter.CallID != nil {
		params = append(params, "callId")
	}
	if filter.Range != nil {
		params = append(params, "range")
	}
	metricQueryParameters().AddWithLabel(1, map[string]string{"type": "event", "parameters": strings.Join(params, ",")})
	metricsHandleCommon(filter.Options, filter.Order, "event")
}

func metricsHandleInstructionsFilter(filter *InstructionFilter) {
	if !metrics.Enabled() {
		return
	}
	params := make([]string, 0, 4)
	if filter.Recipient != nil {
		params = append(params, "recipient")
	}
	if filter.Kind != nil {
		params = append(params, "kind")
	}
	if filter.CallID != nil {
		params = append(params, "callId")
	}
	if filter.Range != nil {
		params = append(params, "range")
	}
	metricQueryParameters().AddWithLabel(1, map[string]string{"type": "instruction", "parameters": strings.Join(params, ",")})
	metricsHandleCommon(filter.Options, filter.Order, "instruction")
}

func metricsHandleCommon(options *Options, order Order, queryType string) {
	if order == DESC {
		metricQueryOrder().AddWithLabel(1, map[string]string{"type": queryType, "order": "desc"})
	} else {
		metricQueryOrder().AddWithLabel(1, map[string]string{"type": queryType, "order": "asc"})
	}
	if options == nil {
		return
	}
	metricOffsetBucket().ObserveWithLabels(int64(min(options.Offset, 100_001)), map[string]string{"type": queryType})
	metricLimitBucket().ObserveWithLabels(int64(min(options.Limit, 1001)), map[string]string{"type": queryType})
}
