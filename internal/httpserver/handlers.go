package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/avivbaron/urldefang/internal/defang"
	"github.com/avivbaron/urldefang/internal/models"
)

// Converter is the minimal interface our handlers need.
// convert.Service satisfies this automatically.
type Converter interface {
	Sanitize(ctx context.Context, lines []string) (models.SanitizeResult, error)
	Unsanitize(ctx context.Context, lines []string) (models.UnsanitizeResult, error)
	Domains(ctx context.Context, lines []string) (models.DomainsResult, error)
}

type Handler struct {
	conv         Converter
	validate     *validator.Validate
	lineRule     string
	maxBodyBytes int64
}

func NewHandler(c Converter, maxLineLen int, maxBodyBytes int64) *Handler {
	if maxLineLen <= 0 {
		maxLineLen = 8192
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &Handler{
		conv:         c,
		validate:     validator.New(),
		lineRule:     fmt.Sprintf("dive,max=%d", maxLineLen),
		maxBodyBytes: maxBodyBytes,
	}
}

// POST /api/sanitize
// {"lines":["https://example.com"]} or {"text":"https://example.com\n..."}
func (h *Handler) handleSanitize(w http.ResponseWriter, r *http.Request) {
	lines, ok := h.decodeLines(w, r)
	if !ok {
		return
	}
	res, err := h.conv.Sanitize(r.Context(), lines)
	if err != nil {
		writeConvertErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /api/unsanitize
func (h *Handler) handleUnsanitize(w http.ResponseWriter, r *http.Request) {
	lines, ok := h.decodeLines(w, r)
	if !ok {
		return
	}
	res, err := h.conv.Unsanitize(r.Context(), lines)
	if err != nil {
		writeConvertErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /api/domains
func (h *Handler) handleDomains(w http.ResponseWriter, r *http.Request) {
	lines, ok := h.decodeLines(w, r)
	if !ok {
		return
	}
	res, err := h.conv.Domains(r.Context(), lines)
	if err != nil {
		writeConvertErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decodeLines reads and validates a ConvertRequest and flattens it into raw
// lines. On failure the error response is already written.
func (h *Handler) decodeLines(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req models.ConvertRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return nil, false
	}
	lines := requestLines(req)
	if err := h.validate.Var(lines, h.lineRule); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return nil, false
	}
	return lines, true
}

// requestLines splits multi-line entries so the line cap counts real lines.
// Empty entries are kept: they count towards the cap like blank lines do.
func requestLines(req models.ConvertRequest) []string {
	raw := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l == "" {
			raw = append(raw, l)
			continue
		}
		raw = append(raw, defang.RawLines(l)...)
	}
	return append(raw, defang.RawLines(req.Text)...)
}

func validationMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return "invalid request"
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		field := strings.ToLower(fe.Field())
		if field == "" {
			field = "lines"
		}
		parts = append(parts, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
	}
	return strings.Join(parts, "; ")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeConvertErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout")
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request canceled")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
