// Command web serves the calculator form and forwards submissions to the
// calculation service at CALCULATOR_URL.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"

	"go-chi-calculator/internal/client"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
)

const frontendName = "calculator-frontend"

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := observability.InitLogger(); err != nil {
		panic(err)
	}

	telemetryShutdown := func(context.Context) error { return nil }
	if cfg.TelemetryEnabled {
		observability.DefaultServiceName = frontendName
		telemetryShutdown, err = observability.Setup(ctx)
		if err != nil {
			panic(err)
		}
	}

	calc := client.NewClient(cfg.CalculatorURL, client.WithTimeout(cfg.ClientTimeout))

	srv := &http.Server{
		Addr:    cfg.WebAddr,
		Handler: client.NewWebHandler(calc, handlers.ServiceInfo{
			Name:        frontendName,
			Version:     cfg.ServiceVersion,
			Description: "Calculator form client",
		}),
	}

	go func() {
		observability.Logger.Info("web client started",
			zap.String("addr", cfg.WebAddr),
			zap.String("calculator_url", cfg.CalculatorURL),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("web client stopped", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, map[string]gfshutdown.Operation{
		"http-server": srv.Shutdown,
		"telemetry":   telemetryShutdown,
	})

	exitCode := <-wait
	observability.SyncLogger()
	os.Exit(exitCode)
}
