package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/export"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/logger"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/migration"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otp"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/qrcode"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/scanner"
)

// MaxBodySize limits request bodies. Images of QR codes fit easily.
const MaxBodySize = 4 << 20

// NoCodeMessage is reported for a credential whose code cannot be generated.
const NoCodeMessage = "no code available"

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithScanner replaces the default scanner.
func WithScanner(s *scanner.Scanner) Option {
	return func(h *Handler) {
		if s != nil {
			h.scanner = s
		}
	}
}

// WithQRSize sets the default edge length of generated PNG images.
func WithQRSize(px int) Option {
	return func(h *Handler) {
		if px > 0 {
			h.qrSize = px
		}
	}
}

// WithClock replaces time.Now for /v1/codes requests without ?at.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithRegistry registers the metrics on reg and serves reg on /metrics.
// Handlers built on the same registry share their counters.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(h *Handler) {
		if reg != nil {
			h.registry = reg
		}
	}
}

// Handler is the HTTP API.
type Handler struct {
	log      *slog.Logger
	scanner  *scanner.Scanner
	qrSize   int
	now      func() time.Time
	registry *prometheus.Registry
	metrics  *metrics
	router   chi.Router
}

// NewHandler builds the router. Without WithRegistry a private registry with
// the Go runtime and process collectors is used.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		log:    logger.Noop(),
		qrSize: qrcode.DefaultSize,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.registry == nil {
		h.registry = prometheus.NewRegistry()
		h.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if h.scanner == nil {
		h.scanner = scanner.New(scanner.WithLogger(h.log))
	}
	h.log = h.log.With(logger.Component("api"))
	h.metrics = newMetrics(h.registry)

	r := chi.NewRouter()
	r.Use(RequestID, middleware.Recoverer)

	r.Get("/healthz", h.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/scan", h.handleScan)
		v1.Post("/codes", h.handleCodes)
		v1.Post("/qrcode", h.handleQRCode)
	})
	h.router = r
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

// handleScan responds with the export document of the credentials in the body.
func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.recognize(w, r)
	if !ok {
		return
	}
	doc, err := export.Marshal(creds, export.FormatJSON)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

type codeResponse struct {
	Kind      string `json:"kind"`
	Issuer    string `json:"issuer,omitempty"`
	Account   string `json:"account,omitempty"`
	Code      string `json:"code,omitempty"`
	Period    int    `json:"period,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
	Error     string `json:"error,omitempty"`
}

type codesResponse struct {
	At    int64          `json:"at"`
	Codes []codeResponse `json:"codes"`
}

// handleCodes responds with the current code of every credential in the body.
// ?at=<unix seconds> selects another instant.
func (h *Handler) handleCodes(w http.ResponseWriter, r *http.Request) {
	at := h.now()
	if v := r.URL.Query().Get("at"); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "at must be unix seconds"})
			return
		}
		at = time.Unix(sec, 0)
	}

	creds, ok := h.recognize(w, r)
	if !ok {
		return
	}

	resp := codesResponse{At: at.Unix(), Codes: make([]codeResponse, 0, len(creds))}
	for _, c := range creds {
		item := codeResponse{Kind: string(c.Kind), Issuer: c.Issuer, Account: c.Account}
		code, err := otp.At(c, at)
		if err != nil {
			h.log.WarnContext(r.Context(), "code generation failed",
				logger.Kind(string(c.Kind)), logger.Issuer(c.Issuer), logger.Error(err))
			h.metrics.codes.WithLabelValues(string(c.Kind), "error").Inc()
			item.Error = NoCodeMessage
		} else {
			h.metrics.codes.WithLabelValues(string(c.Kind), "ok").Inc()
			item.Code, item.Period, item.Remaining = code.Value, code.Period, code.Remaining
		}
		resp.Codes = append(resp.Codes, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleQRCode responds with a PNG of the canonical URI. Several credentials are
// packed into one migration URI. ?size=<px> overrides the default size.
func (h *Handler) handleQRCode(w http.ResponseWriter, r *http.Request) {
	size := h.qrSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 4096 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "size must be between 1 and 4096"})
			return
		}
		size = n
	}

	creds, ok := h.recognize(w, r)
	if !ok {
		return
	}

	content, err := qrContent(creds)
	switch {
	case errors.Is(err, migration.ErrUnsupportedPeriod):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: migration.ErrUnsupportedPeriod.Error()})
		return
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	png, err := qrcode.Generate(content, size)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// qrContent is the text encoded into the QR image: the URI of a single
// credential, or a migration URI carrying all of them.
func qrContent(creds []otpauth.Credential) (string, error) {
	if len(creds) == 1 {
		return otpauth.Render(creds[0]), nil
	}
	payload, err := migration.NewPayload(creds...)
	if err != nil {
		return "", err
	}
	return migration.URI(payload), nil
}

type errorResponse struct {
	Error string `json:"error"`
	Text  string `json:"text,omitempty"`
}

// recognize reads the body and scans it. An image body is decoded as a QR
// code first. On failure the response is written and ok is false.
func (h *Handler) recognize(w http.ResponseWriter, r *http.Request) (creds []otpauth.Credential, ok bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cannot read request body"})
		return nil, false
	}

	text := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "image/") {
		if text, err = qrcode.Decode(bytes.NewReader(body)); err != nil {
			h.metrics.scans.WithLabelValues(outcomeError).Inc()
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return nil, false
		}
	}

	creds, err = h.scanner.Scan(r.Context(), text)
	switch {
	case err == nil:
		h.metrics.scans.WithLabelValues(outcomeOK).Inc()
		return creds, true
	case errors.Is(err, scanner.ErrInvalidPayload):
		h.metrics.scans.WithLabelValues(outcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: scanner.ErrInvalidPayload.Error()})
	case errors.Is(err, scanner.ErrNotOTP):
		h.metrics.scans.WithLabelValues(outcomeNotOTP).Inc()
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "not an OTP credential", Text: text})
	default:
		h.metrics.scans.WithLabelValues(outcomeError).Inc()
		h.fail(w, r, http.StatusInternalServerError, err)
	}
	return nil, false
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.log.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), logger.Error(err))
	writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
}
