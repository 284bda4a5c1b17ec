// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	goruntime "runtime"
	"runtime/debug"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/metrics"
	"github.com/vechain/nftstaker/runtime"
)

// maxClockOffset is the host clock drift that gets reported. Staking periods are counted in seconds.
const maxClockOffset = 5 * time.Second

// levelHandler filters records by a level that can change at runtime.
type levelHandler struct {
	level *slog.LevelVar
	slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return lvl >= h.level.Level() && h.Handler.Enabled(ctx, lvl)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{h.level, h.Handler.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{h.level, h.Handler.WithGroup(name)}
}

func parseVerbosity(verbosity uint64) (*slog.LevelVar, error) {
	if verbosity > math.MaxInt32 {
		return nil, errors.Errorf("%s: %d out of range", verbosityFlag.Name, verbosity)
	}
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(int(verbosity)))
	return &level, nil
}

func newLogHandler(w io.Writer, level *slog.LevelVar, jsonLogs, useColor bool) slog.Handler {
	if jsonLogs {
		return &levelHandler{level, log.JSONHandler(w)}
	}
	return &levelHandler{level, log.NewTerminalHandler(w, useColor)}
}

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	level, err := parseVerbosity(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return nil, err
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetDefault(log.NewLogger(newLogHandler(os.Stderr, level, ctx.Bool(jsonLogsFlag.Name), useColor)))
	return level, nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	gene, err := genesis.Load(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "load genesis [%v]", path)
	}
	return gene, nil
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".org.vechain.nftstaker")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		return "", errors.WithMessagef(err, "create data dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		log.Warn("failed to get total mem", "err", err)
	} else {
		// limit to 1/4 of physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 4)
		if sizeMB > limitMB {
			sizeMB = limitMB
			log.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

// stateCacheEntries sizes the committed storage read cache, a slot entry is well under a kilobyte.
func stateCacheEntries(cacheMB int) int {
	return cacheMB * 256
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		log.Warn("failed to get fd limit", "err", err)
		return 500
	}
	if limit <= 1024 {
		log.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

func openMainDB(dataDir string, cacheMB int) (*lvldb.LevelDB, error) {
	log.Debug("cache size(MB)", "size", cacheMB)

	// keep the GC from counting the database cache
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	log.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache := suggestFDCache()
	log.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "open program database [%v]", dir)
	}
	return db, nil
}

func openLogDB(dataDir string) (*logdb.LogDB, error) {
	dir := filepath.Join(dataDir, "history.db")
	db, err := logdb.New(dir)
	if err != nil {
		return nil, errors.WithMessagef(err, "open log database [%v]", dir)
	}
	return db, nil
}

// startServer serves handler on addr until ctx is done.
func startServer(ctx context.Context, group *errgroup.Group, name, addr string, handler http.Handler) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.WithMessagef(err, "listen %s addr [%v]", name, addr)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.WithMessagef(err, "%s server", name)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info(fmt.Sprintf("stopping %s server...", name))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return "http://" + listener.Addr().String() + "/", nil
}

func startAdminServer(ctx context.Context, group *errgroup.Group, addr string, handler http.Handler) (string, error) {
	url, err := startServer(ctx, group, "admin", addr, handler)
	if err != nil {
		return "", err
	}
	return url + "admin", nil
}

func startMetricsServer(ctx context.Context, group *errgroup.Group, addr string) (string, error) {
	url, err := startServer(ctx, group, "metrics", addr, handlers.CompressHandler(metrics.HTTPHandler()))
	if err != nil {
		return "", err
	}
	return url + "metrics", nil
}

func checkClockOffset(server string) {
	if server == "" {
		return
	}
	resp, err := ntp.Query(server)
	if err != nil {
		log.Debug("failed to access NTP", "server", server, "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxClockOffset {
		log.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

// makeName formats the banner name as name/version/os-arch.
func makeName(name, version string) string {
	return fmt.Sprintf("%s/%s/%s-%s", name, version, goruntime.GOOS, goruntime.GOARCH)
}

func printStartupMessage(gene *genesis.Genesis, exec *runtime.Executor, fresh bool, instanceDir, apiURL, adminURL, metricsURL string) {
	height, _ := exec.Height()
	bootstrap := "resumed"
	if fresh {
		bootstrap = "instantiated"
	}
	if metricsURL == "" {
		metricsURL = "Disabled"
	}
	if adminURL == "" {
		adminURL = "Disabled"
	}

	fmt.Printf(`Starting %v
    Genesis     [ %v | %v ]
    Contract    [ %v ]
    State       [ %v at height %v ]
    Instance dir   [ %v ]
    API portal     [ %v ]
    Admin          [ %v ]
    Metrics        [ %v ]
`,
		makeName("NFT Staker", fullVersion()),
		gene.ID(), gene.Name(),
		exec.Contract(),
		bootstrap, height,
		instanceDir,
		apiURL,
		adminURL,
		metricsURL)
}
