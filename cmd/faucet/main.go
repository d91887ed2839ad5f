// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/vechain/faucet/api"
	"github.com/vechain/faucet/kv"
	"github.com/vechain/faucet/ledger"
	"github.com/vechain/faucet/log"
	"github.com/vechain/faucet/logdb"
	"github.com/vechain/faucet/lvldb"
	"github.com/vechain/faucet/metrics"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")

	appFlags = []cli.Flag{
		configFlag,
		dataDirFlag,
		persistFlag,
		genesisFlag,
		apiAddrFlag,
		apiCorsFlag,
		apiTimeoutFlag,
		apiLogsLimitFlag,
		enableAPILogsFlag,
		gasPriceFlag,
		verbosityFlag,
		jsonLogsFlag,
		enableMetricsFlag,
		metricsAddrFlag,
	}
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
		Name:      "Faucet",
		Usage:     "Single node ledger hosting withdrawal capped faucets",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags:     appFlags,
		Action:    defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	if err := applyConfig(ctx, appFlags); err != nil {
		return err
	}
	initLogger(ctx)
	defer func() { logger.Info("exited") }()

	gene, err := loadGenesis(ctx.String(genesisFlag.Name))
	if err != nil {
		return err
	}
	minGasPrice, err := parseGasPrice(ctx)
	if err != nil {
		return err
	}

	var (
		mainDB      kv.StoreCloser
		logDB       *logdb.LogDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
		if mainDB, err = openMainDB(instanceDir); err != nil {
			return err
		}
		if logDB, err = openLogDB(instanceDir); err != nil {
			mainDB.Close()
			return err
		}
	} else {
		instanceDir = "Memory"
		if mainDB, err = lvldb.NewMem(); err != nil {
			return errors.Wrap(err, "open main database")
		}
		if logDB, err = logdb.NewMem(); err != nil {
			mainDB.Close()
			return errors.Wrap(err, "open log database")
		}
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	l, err := ledger.New(mainDB, logDB, gene, minGasPrice)
	if err != nil {
		return err
	}

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	var handler http.Handler = api.New(l, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   enableMetrics,
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
	})
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = http.TimeoutHandler(handler, time.Duration(timeout)*time.Millisecond, "request timeout")
	}

	apiSrv, apiListener, err := newHTTPServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}

	printStartupMessage(gene, instanceDir, "http://"+apiListener.Addr().String()+"/", metricsURL(ctx))

	exitCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(exitCtx)
	runServer(groupCtx, group, "API", apiSrv, apiListener)

	if enableMetrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.HTTPHandler())
		metricsSrv, metricsListener, err := newHTTPServer(ctx.String(metricsAddrFlag.Name), mux)
		if err != nil {
			stop()
			group.Wait()
			return err
		}
		runServer(groupCtx, group, "metrics", metricsSrv, metricsListener)
	}

	return group.Wait()
}

// runServer serves srv on listener until ctx is done.
func runServer(ctx context.Context, group *errgroup.Group, name string, srv *http.Server, listener net.Listener) {
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "%s server", name)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("stopping server...", "name", name)
		return shutdownServer(srv)
	})
}

func metricsURL(ctx *cli.Context) string {
	if !metrics.Enabled() {
		return "disabled"
	}
	return "http://" + ctx.String(metricsAddrFlag.Name) + "/metrics"
}
