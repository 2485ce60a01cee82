// walletd serves a local HTTP view of an encrypted wallet file.
// Usage: WALLET_FILE_PATH=main.wallet go run ./cmd/walletd
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/AlexZinkM/legacy-wallet/docs"
	"github.com/AlexZinkM/legacy-wallet/internal/api"
	"github.com/AlexZinkM/legacy-wallet/internal/config"
	"github.com/AlexZinkM/legacy-wallet/internal/logging"
	"github.com/AlexZinkM/legacy-wallet/wallet"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := config.Get()

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("walletd stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	serializer, err := wallet.NewSerializer(cfg.KDFParams(), log.Named("wallet"))
	if err != nil {
		return err
	}

	if err := config.PromptForPassword(); err != nil {
		return err
	}
	defer config.ClearPassword()

	// Fail fast on a wrong password instead of on the first request
	password, err := config.GetPasswordBytes()
	if err != nil {
		return err
	}
	res, err := serializer.LoadFile(cfg.WalletFilePath, password)
	clear(password)
	if err != nil {
		return fmt.Errorf("failed to open wallet: %w", err)
	}
	log.Info("wallet opened",
		zap.String("path", cfg.WalletFilePath),
		zap.Uint32("version", res.Version),
		zap.Bool("watch_only", res.Keys.IsWatchOnly()),
		zap.Bool("legacy", res.IsLegacy()),
	)
	res.Wipe()

	router, err := api.SetupRouter(serializer, log.Named("http"))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              "127.0.0.1:" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
