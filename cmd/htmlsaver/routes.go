package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/htmlsaver/pkg/httpserver"
	"github.com/dmitrymomot/htmlsaver/pkg/logger"
	"github.com/dmitrymomot/htmlsaver/pkg/saver"
)

type documentSender interface {
	Save(item saver.Document) error
}

type documentAPI struct {
	sender documentSender
	log    *slog.Logger
}

type acceptedResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// putDocument queues the request body under the name taken from the path.
func (a documentAPI) putDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if name == "" || strings.HasSuffix(name, "/") {
		httpserver.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "document name is required"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpserver.WriteJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "document is too large"})
			return
		}
		httpserver.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}

	if err := a.sender.Save(saver.Document{Key: name, HTML: string(body)}); err != nil {
		if errors.Is(err, saver.ErrEnqueueRejected) {
			a.log.WarnContext(r.Context(), "document rejected", logger.Key(name), logger.Error(err))
			w.Header().Set("Retry-After", "1")
			httpserver.WriteJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "saver is busy or shutting down"})
			return
		}
		a.log.ErrorContext(r.Context(), "failed to queue document", logger.Key(name), logger.Error(err))
		httpserver.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	httpserver.WriteJSON(w, http.StatusAccepted, acceptedResponse{Name: name, Status: "queued"})
}

type routerDeps struct {
	log         *slog.Logger
	sender      documentSender
	checks      []httpserver.Check
	metrics     http.Handler
	maxBodySize int64
}

func newRouter(d routerDeps) http.Handler {
	api := documentAPI{sender: d.sender, log: d.log}

	r := chi.NewRouter()
	r.Use(httpserver.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httpserver.AccessLog(d.log))

	r.Get("/health", httpserver.HealthCheckHandler(d.log, d.checks...))
	r.Get("/health/live", httpserver.HealthCheckHandler(d.log))
	if d.metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.metrics)
	}
	r.With(httpserver.LimitBody(d.maxBodySize)).Put("/documents/*", api.putDocument)

	return r
}
