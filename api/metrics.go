// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vechain/nftstaker/metrics"
)

var (
	requestLabels = []string{"name", "code", "method"}

	metricRequests        = metrics.LazyLoadCounterVec("api_request_count", requestLabels)
	metricRequestDuration = metrics.LazyLoadHistogramVec("api_duration_ms", requestLabels, metrics.BucketHTTP)
	metricResponseBytes   = metrics.LazyLoadCounterVec("api_response_bytes", []string{"name"})
)

// statusRecorder remembers what the handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	code    int
	written int64
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.written += int64(n)
	return n, err
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return "unknown"
}

// metricsMiddleware labels requests by route name rather than path, so token ids
// and other path values never become label values.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		name := routeName(r)
		labels := map[string]string{"name": name, "code": strconv.Itoa(rec.code), "method": r.Method}
		metricRequests().AddWithLabel(1, labels)
		metricRequestDuration().ObserveWithLabels(time.Since(start).Milliseconds(), labels)
		metricResponseBytes().AddWithLabel(rec.written, map[string]string{"name": name})
	})
}
