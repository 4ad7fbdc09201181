package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/lojasmm/convostarter/internal/practice"
	"github.com/lojasmm/convostarter/internal/session"
	"github.com/lojasmm/convostarter/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice page over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		prompts, closePrompts, err := openPrompts(cfg, log)
		if err != nil {
			return err
		}
		defer closePrompts()

		resolver := practice.NewResolver(prompts, log.With("component", "resolver"))
		delays := practice.Delays{Generate: cfg.GenerateDelay, Check: cfg.CheckDelay}
		clock := clockwork.NewRealClock()
		sessionMgr := session.NewManager(func() *practice.Session {
			return practice.NewSession(resolver, clock, delays, log)
		}, clock)
		defer sessionMgr.CloseAll()

		cleanupCtx, stopCleanup := context.WithCancel(cmd.Context())
		defer stopCleanup()
		go sessionMgr.RunCleanup(cleanupCtx, cfg.SessionTTL, log.With("component", "sessions"))

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})
		web.NewHandler(sessionMgr, log.With("component", "web")).Routes(r)

		srv := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", "addr", srv.Addr, "prompt_store", cfg.PromptStore)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info("stopped")
		return nil
	},
}
