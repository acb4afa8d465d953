package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/app"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/quiz"
)

// NewRouter wires the REST API, the websocket endpoint and the health check.
func NewRouter(service *app.QuizService, allowedOrigins []string) http.Handler {
	api := &API{service: service}
	ws := NewWSHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)

	r.Route("/api", func(ar chi.Router) {
		ar.Use(middleware.Timeout(30 * time.Second))
		ar.Get("/chapters", api.dashboard)
		ar.Get("/progress/{chapter}", api.progress)
		ar.Post("/sessions", api.startSession)
		ar.Get("/sessions/{id}", api.viewSession)
		ar.Delete("/sessions/{id}", api.abandonSession)
		ar.Post("/sessions/{id}/select", api.selectOption)
		ar.Post("/sessions/{id}/next", api.next)
		ar.Post("/results", api.submitResults)
	})
	return r
}

// API holds the REST handlers.
type API struct {
	service *app.QuizService
}

type startRequest struct {
	Chapter string `json:"chapter"`
	// IDs restricts the session to these question ids ("2,5"); used by retry.
	IDs string `json:"ids"`
}

type selectRequest struct {
	Index *int `json:"index"`
}

type resultsRequest struct {
	Chapter string `json:"chapter"`
	Answers string `json:"answers"`
}

func (a *API) dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := a.service.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (a *API) progress(w http.ResponseWriter, r *http.Request) {
	p, err := a.service.Progress(r.Context(), chi.URLParam(r, "chapter"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) startSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Chapter == "" {
		writeJSON(w, http.StatusBadRequest, errorPayload{Code: "invalid_payload", Message: "chapter is required"})
		return
	}
	view, err := a.service.Start(r.Context(), req.Chapter, quiz.ParseIDs(req.IDs))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (a *API) viewSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.service.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) abandonSession(w http.ResponseWriter, r *http.Request) {
	a.service.Abandon(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) selectOption(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Code: "invalid_payload", Message: "index is required"})
		return
	}
	view, err := a.service.Select(r.Context(), chi.URLParam(r, "id"), *req.Index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) next(w http.ResponseWriter, r *http.Request) {
	step, err := a.service.Next(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (a *API) submitResults(w http.ResponseWriter, r *http.Request) {
	var req resultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Chapter == "" {
		writeJSON(w, http.StatusBadRequest, errorPayload{Code: "invalid_payload", Message: "chapter and answers are required"})
		return
	}
	sub, err := a.service.SubmitPayload(r.Context(), req.Chapter, req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	_, status := classify(err)
	writeJSON(w, status, toErrorPayload(err))
}
