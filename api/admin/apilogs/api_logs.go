// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package apilogs switches the request logger of the public API on and off.
package apilogs

import (
	"net/http"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstaker/api/utils"
)

var logger = log.New("pkg", "apilogs")

// LogStatus is both the body of a toggle request and the reply.
type LogStatus struct {
	Enabled bool `json:"enabled"`
}

// Toggle exposes the flag read by the request logger middleware.
type Toggle struct {
	flag *atomic.Bool
}

func New(flag *atomic.Bool) *Toggle {
	return &Toggle{flag: flag}
}

func (t *Toggle) status(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &LogStatus{Enabled: t.flag.Load()})
}

func (t *Toggle) toggle(w http.ResponseWriter, r *http.Request) error {
	var req LogStatus
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(err)
	}
	if prev := t.flag.Swap(req.Enabled); prev != req.Enabled {
		logger.Info("request logging switched", "enabled", req.Enabled)
	}
	return utils.WriteJSON(w, &req)
}

func (t *Toggle) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods(http.MethodGet).Name("admin_apilogs_get").HandlerFunc(utils.WrapHandlerFunc(t.status))
	sub.Path("").Methods(http.MethodPost).Name("admin_apilogs_set").HandlerFunc(utils.WrapHandlerFunc(t.toggle))
}
