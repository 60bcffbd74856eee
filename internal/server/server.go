package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/orwa-kh/syria-post-watch/internal/classifier"
	"github.com/orwa-kh/syria-post-watch/internal/domain"
	"github.com/orwa-kh/syria-post-watch/internal/extractor"
	"github.com/orwa-kh/syria-post-watch/internal/posturl"
	"github.com/orwa-kh/syria-post-watch/internal/ratelimit"
	"github.com/orwa-kh/syria-post-watch/internal/sheets"
	"github.com/orwa-kh/syria-post-watch/internal/telegram"
	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"github.com/orwa-kh/syria-post-watch/pkg/formatter"
	"github.com/orwa-kh/syria-post-watch/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Extractor  extractor.Client
	Classifier classifier.Client
	Sheets     sheets.Client
	Telegram   telegram.Client
	Logger     logger.Logger
	Config     *config.Config
}

type Server struct {
	Extractor  extractor.Client
	Classifier classifier.Client
	Sheets     sheets.Client
	Telegram   telegram.Client
	Logger     logger.Logger
	Config     *config.Config

	limiter ratelimit.Limiter
}

func New(opts Opts) *Server {
	return &Server{
		Extractor:  opts.Extractor,
		Classifier: opts.Classifier,
		Sheets:     opts.Sheets,
		Telegram:   opts.Telegram,
		Logger:     opts.Logger.WithComponent("Server"),
		Config:     opts.Config,
		limiter:    ratelimit.NewInMemoryLimiter(1, 2*time.Second, 5),
	}
}

// Handler builds the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/classify", s.handleClassify)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Config.App.Port),
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.Logger.Info(fmt.Sprintf("Starting server on :%d", s.Config.App.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.Logger.Error("Server failed to start", "error", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	// The status line is committed by the first Write; nothing useful can
	// be sent to the client after a write failure.
	if _, err := w.Write([]byte("ok")); err != nil {
		s.Logger.Error("Failed to write response", "Error", err)
	}
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.limiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	var req domain.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rawInput := strings.TrimSpace(req.Text)
	if rawInput == "" {
		writeError(w, http.StatusBadRequest, "Empty input")
		return
	}

	ctx := r.Context()

	text := rawInput
	author := req.Author
	postTime := req.PostTime
	url := req.URL

	if posturl.IsPostURL(rawInput) {
		extracted := s.Extractor.Extract(ctx, rawInput)
		if extracted.Failed() {
			s.Logger.Warn("Failed to extract post content",
				"url", rawInput, "error", extracted.Error)
			writeError(w, http.StatusBadRequest, "Could not extract text from the input")
			return
		}
		text = extracted.Text
		if extracted.Author != "" {
			author = extracted.Author
		}
		if extracted.Timestamp != "" {
			postTime = extracted.Timestamp
		}
		url = extracted.SourceURL
	}

	result, err := s.Classifier.Classify(ctx, text)
	if err != nil {
		s.Logger.Error("Classification failed", "error", err)
		writeError(w, http.StatusBadGateway, "classification failed")
		return
	}

	s.persistRow(ctx, req.Source, domain.LogRow{
		Timestamp: time.Now(),
		URL:       url,
		Text:      formatter.CleanText(text),
		Author:    author,
		PostTime:  postTime,
		Label:     result.Label,
		SourceTag: sourceTag(req.Source),
		Reason:    result.Reason,
	})

	writeJSON(w, http.StatusOK, domain.ClassifyResponse{
		Label:  result.Label,
		Reason: result.Reason,
	})
}

// persistRow logs the classification to the spreadsheet. Persistence failure
// is deliberately invisible to the caller: the classification result is the
// load-bearing output, the audit row is best effort.
func (s *Server) persistRow(ctx context.Context, source string, row domain.LogRow) {
	outcome, err := s.Sheets.Append(ctx, source, row)
	if err != nil {
		s.Logger.Error("Failed to persist classification row", "error", err)
		s.Telegram.SendMessageToUser("*Failed to persist classification row*\n" +
			formatter.EscapeMarkdownV2(err.Error()))
		return
	}
	if outcome == sheets.OutcomeDeduped {
		s.Logger.Info("Row deduplicated", "url", row.URL)
	}
}

func sourceTag(source string) string {
	if source == domain.SourcePopup {
		return domain.SourcePopup
	}
	return "extension"
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
