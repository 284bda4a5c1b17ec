// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaker/api"
	"github.com/vechain/nftstaker/api/admin"
	"github.com/vechain/nftstaker/health"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/metrics"
	"github.com/vechain/nftstaker/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "NFT Staker",
		Usage:     "Collectible staking program with a REST API",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			persistFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiLogsLimitFlag,
			apiSlowQueriesThresholdFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			cacheFlag,
			ntpServerFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			adminAddrFlag,
			pprofFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer func() { log.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	go checkClockOffset(ctx.String(ntpServerFlag.Name))

	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))

	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
		if mainDB, err = openMainDB(instanceDir, cacheMB); err != nil {
			return err
		}
		if logDB, err = openLogDB(instanceDir); err != nil {
			mainDB.Close()
			return err
		}
	} else {
		instanceDir = "Memory"
		if mainDB, err = lvldb.NewMem(); err != nil {
			return err
		}
		if logDB, err = logdb.NewMem(); err != nil {
			mainDB.Close()
			return err
		}
	}
	defer func() {
		if stats, err := mainDB.Property("leveldb.stats"); err == nil {
			log.Debug("main database stats\n" + stats)
		}
		log.Info("closing main database...")
		mainDB.Close()
	}()
	defer func() { log.Info("closing log database..."); logDB.Close() }()

	var status *health.Health
	exec, err := runtime.New(&runtime.Config{
		Store:     mainDB,
		Contract:  gene.Contract(),
		CacheSize: stateCacheEntries(cacheMB),
		LogDB:     logDB,
		OnCommit: func(out *runtime.Output) {
			status.Committed(out.CallID, out.BlockNumber, time.Unix(int64(out.BlockTime), 0))
		},
	})
	if err != nil {
		return err
	}
	status = health.New(exec)
	fresh, err := exec.Bootstrap(gene)
	if err != nil {
		return err
	}
	status.BootstrapStatus(true)

	enableReqLogger := &atomic.Bool{}
	enableReqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler := api.New(exec, logDB, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		GenesisID:            gene.ID(),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableReqLogger:      enableReqLogger,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
	})

	group, groupCtx := errgroup.WithContext(exitCtx)

	apiURL, err := startServer(groupCtx, group, "API", ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	adminURL := ""
	if addr := ctx.String(adminAddrFlag.Name); addr != "" {
		if adminURL, err = startAdminServer(groupCtx, group, addr, admin.New(admin.Deps{LogLevel: logLevel, APILogs: enableReqLogger, Health: status})); err != nil {
			return err
		}
	}
	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		if metricsURL, err = startMetricsServer(groupCtx, group, ctx.String(metricsAddrFlag.Name)); err != nil {
			return err
		}
	}

	printStartupMessage(gene, exec, fresh, instanceDir, apiURL, adminURL, metricsURL)

	return group.Wait()
}
