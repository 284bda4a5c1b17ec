// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health serves the readiness report of the node.
package health

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/nftstaker/api/utils"
	"github.com/vechain/nftstaker/health"
)

type API struct {
	health *health.Health
}

func New(h *health.Health) *API {
	return &API{health: h}
}

// report replies 503 until the node is bootstrapped and its store readable,
// so load balancers can probe it directly.
func (a *API) report(w http.ResponseWriter, _ *http.Request) error {
	status := a.health.Status()
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", utils.JSONContentType)
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(status)
}

func (a *API) Mount(root *mux.Router, pathPrefix string) {
	root.PathPrefix(pathPrefix).Subrouter().
		Path("").
		Methods(http.MethodGet).
		Name("admin_health").
		HandlerFunc(utils.WrapHandlerFunc(a.report))
}
