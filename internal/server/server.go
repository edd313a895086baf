// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the blog agent over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pdiddy/blog-engine/internal/store"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// DegradedHeader is set to "true" on responses whose article contains
// placeholder text in place of generated content.
const DegradedHeader = "X-Blog-Degraded"

const shutdownTimeout = 10 * time.Second

// Writer produces articles; *agent.Agent satisfies it.
type Writer interface {
	Write(ctx context.Context, req types.Request) (*types.Article, error)
}

// Archive stores generated articles; *store.Store satisfies it.
type Archive interface {
	SaveArticle(ctx context.Context, a *types.Article) error
	ListArticles(ctx context.Context, q store.ArticleQuery) ([]types.Article, error)
	ArticleBySlug(ctx context.Context, slug string) (types.Article, error)
}

// Server routes HTTP requests to the agent and the archive.
type Server struct {
	writer   Writer
	archive  Archive
	origins  map[string]bool
	addr     string
	validate *validator.Validate
	log      zerolog.Logger
}

// New returns a Server. archive may be nil, in which case articles are not
// archived and the /articles endpoints answer 404.
func New(w Writer, archive Archive, cfg types.ServerConfig, log zerolog.Logger) *Server {
	origins := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[o] = true
	}
	addr := cfg.Addr
	if addr == "" {
		addr = types.DefaultServerAddr
	}
	return &Server{
		writer:   w,
		archive:  archive,
		origins:  origins,
		addr:     addr,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Routes returns the HTTP handler with CORS and request logging applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /articles", s.handleListArticles)
	mux.HandleFunc("GET /articles/{slug}", s.handleArticle)
	return s.logMiddleware(s.corsMiddleware(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// --- Handlers ---

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Topic is required")
		return
	}

	article, err := s.writer.Write(r.Context(), req)
	switch {
	case errors.Is(err, types.ErrEmptyTopic):
		writeError(w, http.StatusBadRequest, "Topic is required")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("generating article")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.archive != nil {
		if err := s.archive.SaveArticle(r.Context(), article); err != nil {
			s.log.Warn().Err(err).Str("slug", article.Metadata.Slug).Msg("archiving article")
		}
	}

	if article.Degraded {
		w.Header().Set(DegradedHeader, "true")
	}
	writeJSON(w, http.StatusOK, article.Response())
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusNotFound, "Article archive is disabled")
		return
	}

	q := store.ArticleQuery{
		Query:   r.URL.Query().Get("q"),
		Keyword: r.URL.Query().Get("keyword"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		q.Limit = n
	}

	articles, err := s.archive.ListArticles(r.Context(), q)
	if err != nil {
		s.log.Error().Err(err).Msg("listing articles")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]articleSummary, len(articles))
	for i := range articles {
		out[i] = summarize(&articles[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusNotFound, "Article archive is disabled")
		return
	}

	article, err := s.archive.ArticleBySlug(r.Context(), r.PathValue("slug"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("loading article")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if article.Degraded {
		w.Header().Set(DegradedHeader, "true")
	}
	writeJSON(w, http.StatusOK, article.Response())
}

// articleSummary is one entry of the archive listing.
type articleSummary struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	Tone        string    `json:"tone"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	ReadingTime string    `json:"readingTime"`
	Degraded    bool      `json:"degraded"`
	CreatedAt   time.Time `json:"createdAt"`
}

func summarize(a *types.Article) articleSummary {
	return articleSummary{
		ID:          a.ID,
		Topic:       a.Topic,
		Tone:        string(a.Tone),
		Title:       a.Metadata.Title,
		Slug:        a.Metadata.Slug,
		ReadingTime: types.FormatReadingTime(a.Metadata.ReadingTime),
		Degraded:    a.Degraded,
		CreatedAt:   a.CreatedAt,
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}
