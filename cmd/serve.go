package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mindscope/internal/logging"
	"github.com/abhisek/mindscope/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve questionnaires and reports over HTTP",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":8080", "Listen address")
	f.Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	f.Duration("write-timeout", 60*time.Second, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	if err := setupLogging(v, nil); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := buildDeps(ctx, v)
	if err != nil {
		return err
	}
	defer d.Close()

	h := server.New(d.bank, d.arbiter, d.remoteEnabled(), logging.New("http"))
	srv := &http.Server{
		Addr:         v.GetString("addr"),
		Handler:      h.Router(),
		ReadTimeout:  v.GetDuration("read-timeout"),
		WriteTimeout: v.GetDuration("write-timeout"),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server",
			"addr", srv.Addr,
			"remote", d.remoteEnabled(),
			"provider", d.provider,
			"model", d.model,
			"timeout", d.arbiter.Timeout(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
