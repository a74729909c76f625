// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/sponsor-eval/cliparse"
	"github.com/danielhkuo/sponsor-eval/evaluation"
	"github.com/danielhkuo/sponsor-eval/handlers"
	"github.com/danielhkuo/sponsor-eval/middleware"
	"github.com/danielhkuo/sponsor-eval/roster"
)

func NewRouter(sessions *evaluation.Manager, loader *roster.Loader, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	evalHandler := handlers.NewEvaluationHandler(sessions, cfg)
	rosterHandler := handlers.NewRosterHandler(loader, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /rubric", middleware.WithLogging(evalHandler.GetRubric))

	// Session lifecycle (requires X-Session-ID except for creation)
	mux.HandleFunc("POST /sessions", middleware.WithLogging(evalHandler.CreateSession))
	mux.HandleFunc("GET /session", middleware.WithLogging(evalHandler.GetSession))
	mux.HandleFunc("POST /session/identity", middleware.WithLogging(evalHandler.SubmitIdentity))
	mux.HandleFunc("POST /session/back", middleware.WithLogging(evalHandler.Back))
	mux.HandleFunc("POST /session/start-over", middleware.WithLogging(evalHandler.StartOver))

	// Projects and drafts
	mux.HandleFunc("GET /session/projects", middleware.WithLogging(evalHandler.ListProjects))
	mux.HandleFunc("POST /session/projects/{project}/select", middleware.WithLogging(evalHandler.SelectProject))
	mux.HandleFunc("PUT /session/draft", middleware.WithLogging(evalHandler.CommitDraft))
	mux.HandleFunc("POST /session/submit", middleware.WithLogging(evalHandler.Submit))

	// Admin
	mux.HandleFunc("POST /roster/reload", middleware.WithLogging(rosterHandler.Reload))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("sponsor-eval API v1"))
	})

	return mux
}
