package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd runs the HTTP API
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		a, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := &http.Server{
			Addr:              cfg.Server.ListenAddr(),
			Handler:           a.Router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		onServeExit := make(chan error, 1)
		go func() {
			log.Info("🚀 Serve: server starting", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				onServeExit <- err
			}
			close(onServeExit)
		}()

		onSignal := make(chan os.Signal, 1)
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(onSignal)

		select {
		case sig := <-onSignal:
			log.Info("Serve: exit by signal", zap.String("signal", sig.String()))
		case err, ok := <-onServeExit:
			if ok {
				log.Error("❌ Serve: server failed", zap.Error(err))
				return errors.Wrap(err, "server failed")
			}
		}

		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server shutdown")
		}
		log.Info("Serve: server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ServeCmd)
}
