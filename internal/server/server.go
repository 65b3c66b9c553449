package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloud-ru/mcp-amortization-go/internal/cache"
	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/internal/log"
	"github.com/cloud-ru/mcp-amortization-go/internal/metrics"
	"github.com/cloud-ru/mcp-amortization-go/internal/tools"
)

const maxBodyBytes = 1 << 20

// Server отдает инструменты по HTTP
type Server struct {
	tools  map[string]tools.ToolHandler
	cache  cache.Cache
	logger *log.Logger
}

func New(registry map[string]tools.ToolHandler, c cache.Cache, logger *log.Logger) *Server {
	return &Server{
		tools:  registry,
		cache:  c,
		logger: logger.WithComponent(log.ComponentHTTP),
	}
}

// Handler возвращает маршрутизатор со всеми эндпоинтами
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /tools", s.handleListTools)
	mux.HandleFunc("POST /tools/{name}", s.handleCallTool)
	mux.Handle("GET /metrics", promhttp.Handler())
	return s.logRequests(mux)
}

// ListenAndServe запускает HTTP сервер и останавливает его при отмене контекста
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", log.FieldAddr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tools": tools.Names(s.tools)})
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	handler, ok := s.tools[name]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tool %q", name))
		return
	}

	var params map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	// json.Marshal сортирует ключи map, поэтому результат годится как канонический вид
	canonical, err := json.Marshal(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	key := cache.Key(name, canonical)

	ctx := r.Context()
	if cached, ok := s.cache.Get(ctx, key); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		s.logger.DebugContext(ctx, "tool result served", log.FieldTool, name, log.FieldCacheHit, true)
		w.Header().Set("X-Cache", "HIT")
		writeRaw(w, http.StatusOK, []byte(cached))
		return
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	result, err := handler(ctx, params)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode tool result", log.FieldTool, name, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}

	if err := s.cache.Set(ctx, key, string(body)); err != nil {
		s.logger.WarnContext(ctx, "failed to cache tool result", log.FieldTool, name, log.FieldError, err)
	}
	s.logger.DebugContext(ctx, "tool result served", log.FieldTool, name, log.FieldCacheHit, false)
	w.Header().Set("X-Cache", "MISS")
	writeRaw(w, http.StatusOK, body)
}

func statusFor(err error) int {
	if errors.Is(err, tools.ErrInvalidParams) || errors.Is(err, calculations.ErrInvalidInput) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.InfoContext(r.Context(), "request",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, body)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
