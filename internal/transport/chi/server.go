package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docrag/internal/domain"
	"github.com/kailas-cloud/docrag/internal/logger"
	healthuc "github.com/kailas-cloud/docrag/internal/usecase/health"
	raguc "github.com/kailas-cloud/docrag/internal/usecase/rag"
)

// TimestampLayout is ISO-8601 local time without zone, microsecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000000"

const defaultMaxBodyBytes = 10 << 20

// errorHandler tries to handle an error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the RAG service over HTTP. It holds only immutable
// dependencies and is safe for concurrent use.
type Server struct {
	rag           *raguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(rag *raguc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		rag:          rag,
		health:       health,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		bodyTooLargeHandler,
	}
	return s
}

// WithMaxBodyBytes limits the size of request bodies.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/rag", func(r chi.Router) {
		r.Post("/query", s.Query)
		r.Post("/summarize", s.Summarize)
		r.Post("/analyze", s.Analyze)
	})
}

type queryRequest struct {
	Content  string `json:"content"`
	Question string `json:"question"`
}

type contentRequest struct {
	Content string `json:"content"`
}

type queryResponse struct {
	Answer      string   `json:"answer"`
	ContextUsed []string `json:"context_used"`
	Timestamp   string   `json:"timestamp"`
}

type statisticsResponse struct {
	WordCount      int `json:"word_count"`
	CharacterCount int `json:"character_count"`
	OriginalLength int `json:"original_length"`
}

type summaryResponse struct {
	Summary    string             `json:"summary"`
	Statistics statisticsResponse `json:"statistics"`
	Timestamp  string             `json:"timestamp"`
}

type topWordResponse struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type analyzeResponse struct {
	WordCount         int               `json:"word_count"`
	SentenceCount     int               `json:"sentence_count"`
	CharacterCount    int               `json:"character_count"`
	AverageWordLength float64           `json:"average_word_length"`
	TopWords          []topWordResponse `json:"top_words"`
	Timestamp         string            `json:"timestamp"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	resp := healthResponse{Status: string(report.Status), Service: report.Service}
	if len(report.Checks) > 0 {
		resp.Checks = make(map[string]string, len(report.Checks))
		for name, res := range report.Checks {
			resp.Checks[name] = string(res)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Query handles POST /api/rag/query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := s.decode(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	res, err := s.rag.Query(r.Context(), req.Content, req.Question)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	used := res.ContextUsed
	if used == nil {
		used = []string{}
	}
	writeJSON(w, http.StatusOK, queryResponse{
		Answer:      res.Answer,
		ContextUsed: used,
		Timestamp:   formatTimestamp(res.Timestamp),
	})
}

// Summarize handles POST /api/rag/summarize.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := s.decode(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	res, err := s.rag.Summarize(r.Context(), req.Content)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Summary: res.Summary,
		Statistics: statisticsResponse{
			WordCount:      res.Statistics.WordCount,
			CharacterCount: res.Statistics.CharacterCount,
			OriginalLength: res.Statistics.OriginalLength,
		},
		Timestamp: formatTimestamp(res.Timestamp),
	})
}

// Analyze handles POST /api/rag/analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := s.decode(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	res, err := s.rag.Analyze(r.Context(), req.Content)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	top := make([]topWordResponse, len(res.TopWords))
	for i, wc := range res.TopWords {
		top[i] = topWordResponse{Word: wc.Word, Count: wc.Count}
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		WordCount:         res.WordCount,
		SentenceCount:     res.SentenceCount,
		CharacterCount:    res.CharacterCount,
		AverageWordLength: res.AverageWordLength,
		TopWords:          top,
		Timestamp:         formatTimestamp(res.Timestamp),
	})
}

// decode reads a JSON body into dst. An empty body decodes as an empty
// request so that field validation reports what is missing.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return domain.NewValidationError("Invalid request body: %s", err.Error())
	}
	return nil
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}

	logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func validationHandler(w http.ResponseWriter, err error) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	writeError(w, http.StatusBadRequest, ve.Message)
	return true
}

func bodyTooLargeHandler(w http.ResponseWriter, err error) bool {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return false
	}
	writeError(w, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
	return true
}

func formatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
