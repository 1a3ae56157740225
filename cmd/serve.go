package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/startup-research/internal/model"
	"github.com/sells-group/startup-research/internal/query"
	"github.com/sells-group/startup-research/internal/store"
)

var servePort int

// researcher is the slice of the research service the API needs.
type researcher interface {
	ResearchMany(ctx context.Context, names []string) []model.EntityRecord
}

// answerer is the slice of the query engine the API needs.
type answerer interface {
	Answer(ctx context.Context, question string) (*query.Result, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildRouter(env.Service, env.Store, env.Engine),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter assembles the API routes.
func buildRouter(svc researcher, st store.Store, eng answerer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/research", handleResearch(svc))
		r.Get("/entities", handleListEntities(st))
		r.Get("/entities/{id}", handleGetEntity(st))
		r.Post("/query", handleQuery(eng))
	})

	return r
}

func handleResearch(svc researcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Entities []string `json:"entities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.Entities) == 0 {
			writeError(w, http.StatusBadRequest, "entities is required")
			return
		}

		records := svc.ResearchMany(r.Context(), req.Entities)
		writeJSON(w, http.StatusOK, map[string]any{
			"researched": len(records),
			"records":    records,
		})
	}
}

func handleListEntities(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := st.ListAll(r.Context())
		if err != nil {
			zap.L().Error("api: list entities failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "storage failure")
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func handleGetEntity(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec, err := st.Get(r.Context(), id)
		if err != nil {
			zap.L().Error("api: get entity failed", zap.String("id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "storage failure")
			return
		}
		if rec == nil {
			writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleQuery(eng answerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Query == "" {
			writeError(w, http.StatusBadRequest, "query is required")
			return
		}

		res, err := eng.Answer(r.Context(), req.Query)
		if err != nil {
			zap.L().Error("api: query failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "query failure")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
