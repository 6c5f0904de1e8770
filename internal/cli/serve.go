package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/mlindqvist/pedigree/pkg/buildinfo"
	"github.com/mlindqvist/pedigree/pkg/graph"
	"github.com/mlindqvist/pedigree/pkg/layout"
	"github.com/mlindqvist/pedigree/pkg/pipeline"
)

// serveCommand creates the serve command exposing the layout pipeline over
// HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Endpoints:

  POST /api/v1/layout   compute a layout from a JSON genealogy input
  GET  /healthz         liveness probe
  GET  /version         build information

The layout endpoint accepts the same JSON format as 'pedigree layout' and
responds with the layout document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is cancelled
// or the listener fails.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.newRouter(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return withLogger(ctx, c.Logger)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printInfo("Serving layout API on %s", addr)
	c.Logger.Info("server started", "addr", addr)

	select {
	case <-ctx.Done():
		printWarning("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newRouter assembles the chi router with the API routes.
func (c *CLI) newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", handleHealth)
	r.Get("/version", handleVersion)
	r.Post("/api/v1/layout", c.handleLayout)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// handleLayout computes a layout for the posted genealogy input.
func (c *CLI) handleLayout(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context())

	in, err := graph.ReadInput(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := optionsFromParams(in.LayoutParams())
	opts.Logger = logger

	result, err := c.newRunner().Execute(r.Context(), in, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusRequestTimeout, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("served layout",
		"individuals", result.Stats.IndividualCount,
		"nodes", result.Stats.NodeCount,
		"fallback", result.Stats.Fallback)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifact)
}

// optionsFromParams maps embedded layout parameters onto pipeline options.
func optionsFromParams(p layout.Params) pipeline.Options {
	order := pipeline.SpouseOrderFemaleFirst
	if p.SpouseOrder == layout.SpouseOrderMaleFirst {
		order = pipeline.SpouseOrderMaleFirst
	}
	return pipeline.Options{
		NodeSpacing:       p.NodeSpacing,
		GenerationSpacing: p.GenerationSpacing,
		SpouseSpacing:     p.SpouseSpacing,
		FamilySpacing:     p.FamilySpacing,
		Width:             p.CanvasWidth,
		Height:            p.CanvasHeight,
		SpouseOrder:       order,
		Debug:             p.DebugMode,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
