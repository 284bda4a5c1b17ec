// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves the operator endpoints. They are bound to their own
// listener and never exposed through the public API.
package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/api/admin/apilogs"
	healthAPI "github.com/vechain/nftstaker/api/admin/health"
	"github.com/vechain/nftstaker/api/admin/loglevel"
	"github.com/vechain/nftstaker/api/utils"
	"github.com/vechain/nftstaker/health"
)

// Deps are the runtime knobs the admin endpoints read and switch.
type Deps struct {
	LogLevel *slog.LevelVar
	APILogs  *atomic.Bool
	Health   *health.Health
}

func New(deps Deps) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = utils.WrapHandlerFunc(func(_ http.ResponseWriter, r *http.Request) error {
		return utils.NotFound(errors.Errorf("no admin endpoint at %s", r.URL.Path))
	})

	sub := router.PathPrefix("/admin").Subrouter()
	if deps.LogLevel != nil {
		loglevel.New(deps.LogLevel).Mount(sub, "/loglevel")
	}
	if deps.APILogs != nil {
		apilogs.New(deps.APILogs).Mount(sub, "/apilogs")
	}
	if deps.Health != nil {
		healthAPI.New(deps.Health).Mount(sub, "/health")
	}
	return handlers.CompressHandler(router)
}
