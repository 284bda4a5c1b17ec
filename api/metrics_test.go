// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/api/utils"
	"github.com/vechain/nftstaker/metrics"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return body, resp.StatusCode
}

func TestMetricsMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Path("/probe/{id}").
		Methods(http.MethodGet).
		Name("GET /probe/{id}").
		HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			if mux.Vars(r)["id"] == "bad" {
				return utils.BadRequest(io.EOF)
			}
			return utils.WriteJSON(w, utils.M{"id": mux.Vars(r)["id"]})
		}))
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	httpGet(t, ts.URL+"/probe/1")
	httpGet(t, ts.URL+"/probe/2")
	_, code := httpGet(t, ts.URL+"/probe/bad")
	assert.Equal(t, http.StatusBadRequest, code)

	body, _ := httpGet(t, ts.URL+"/metrics")
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, m := range families["nftstaker_api_request_count"].GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		if labels["name"] != "GET /probe/{id}" {
			continue
		}
		assert.Equal(t, http.MethodGet, labels["method"])
		counts[labels["code"]] += m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"200": 2, "400": 1}, counts)

	written := families["nftstaker_api_response_bytes"]
	require.NotNil(t, written)
	assert.NotEmpty(t, written.GetMetric())
}
