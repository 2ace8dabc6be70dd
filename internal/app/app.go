package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/httpclient"
	"fxconvert/internal/api"
	"fxconvert/internal/config"
	"fxconvert/internal/console"
	"fxconvert/internal/metrics"
	httpserver "fxconvert/internal/platform/http"
	"fxconvert/internal/rate"
	"fxconvert/internal/rate/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Run wires the application components and blocks in the console loop.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger, kept off stdout so it does not interleave with the console
	logrus.SetOutput(os.Stderr)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	registry := prometheus.NewRegistry()
	appMetrics := metrics.New(registry)

	// External client
	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}
	rateClient := httpclient.NewExchangeRateClient(
		baseHTTPClient,
		appCfg.ExchangeRateAPI.URL,
		appCfg.ExchangeRateAPI.BaseCurrency,
	)

	// Cache
	crossRateCache, err := cache.NewCrossRateCache(appCfg.Cache.MaxItems)
	if err != nil {
		logrus.WithError(err).Error("Failed to create cross rate cache")
		return err
	}
	defer crossRateCache.Close()

	// Services
	provider := rate.NewProvider(rateClient, appMetrics, appCfg.HTTPClient.Timeout())
	converter := rate.NewConverter(crossRateCache, appMetrics)
	store := rate.NewStore()

	shell := console.New(console.Options{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
	}, provider, converter, store)

	// Optional periodic refresh
	if interval := appCfg.Refresh.Interval(); interval > 0 {
		scheduler := rate.NewScheduler(shell.RequestRefresh, interval)
		// Ensure scheduler stops before the console returns
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Infof("✅ Scheduler activation successful, refreshing every %s", interval)
	}

	// Optional local HTTP API
	serverDone := make(chan error, 1)
	if appCfg.HTTPServer.Enabled() {
		router := api.NewRouter(handler.NewRateHandler(store, converter), registry)
		go func() {
			serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router)
			if serverErr != nil {
				logrus.WithError(serverErr).Error("HTTP server error")
			}
			serverDone <- serverErr
		}()
	} else {
		serverDone <- nil
	}

	runErr := shell.Run(ctx)
	// Console finished: cancel the root context to stop the server and scheduler
	stop()
	return errors.Join(runErr, <-serverDone)
}
