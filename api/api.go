// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstaker/api/events"
	"github.com/vechain/nftstaker/api/middleware"
	"github.com/vechain/nftstaker/api/staking"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/runtime"
	"github.com/vechain/nftstaker/thor"
)

var logger = log.New("pkg", "api")

const headerGenesisID = "x-genesis-id"

type Options struct {
	AllowedOrigins       string
	GenesisID            thor.Bytes32
	PprofOn              bool
	SkipLogs             bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	LogsLimit            uint64
}

// New returns the api router. logDB may be nil when SkipLogs is set.
func New(exec *runtime.Executor, logDB *logdb.LogDB, opts Options) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	staking.New(exec).
		Mount(router, "/staking")
	if !opts.SkipLogs && logDB != nil {
		events.New(logDB, opts.LogsLimit).
			Mount(router, "/staking")
	}

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	if !opts.GenesisID.IsZero() {
		genesisID := opts.GenesisID.String()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set(headerGenesisID, genesisID)
				next.ServeHTTP(w, r)
			})
		})
	}

	enabled := opts.EnableReqLogger
	if enabled == nil {
		enabled = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, enabled, opts.SlowQueriesThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", headerGenesisID}),
		handlers.ExposedHeaders([]string{headerGenesisID}),
	)(handler)

	return handler
}
