// Package api exposes the probing engine over http.
package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/portprobe/pkg/result"
	"github.com/projectdiscovery/portprobe/pkg/runner"
)

// CorrelationHeader carries the scan correlation id in requests and responses
const CorrelationHeader = "X-Correlation-ID"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Scanner runs a single scan
type Scanner interface {
	Scan(ctx context.Context, req runner.ScanRequest) (result.ScanResult, error)
}

type errorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type handler struct {
	scanner Scanner
}

// NewHandler routes the scan endpoints and, when uiDir is set, serves it as static files at /
func NewHandler(scanner Scanner, uiDir string) http.Handler {
	h := &handler{scanner: scanner}

	router := mux.NewRouter()
	router.Use(logMiddleware)
	router.HandleFunc("/api/scan", h.scan).Methods(http.MethodGet)
	router.HandleFunc("/api/scan/tcp", h.scan).Methods(http.MethodGet)
	if uiDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(uiDir)))
	}
	return router
}

func (h *handler) scan(w http.ResponseWriter, r *http.Request) {
	correlationID := r.Header.Get(CorrelationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	w.Header().Set(CorrelationHeader, correlationID)

	req, err := ParseScanRequest(r.URL.Query())
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.CorrelationID = correlationID

	scanResult, err := h.scanner.Scan(r.Context(), req)
	if err != nil {
		writeError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scanResult); err != nil {
		gologger.Warning().Str("correlation_id", correlationID).Msgf("Could not encode scan result: %s\n", err)
	}
}

func statusFor(err error) int {
	var cfgErr *runner.ConfigurationError
	var capErr *runner.CapabilityError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest
	case errors.As(err, &capErr):
		return http.StatusForbidden
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errorResponse{Message: message, Status: statusCode}); err != nil {
		gologger.Warning().Msgf("Could not encode error response: %s\n", err)
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gologger.Verbose().Msgf("%s %s %s\n", r.RemoteAddr, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}
