package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const (
	maxRequestBodyBytes = 100 << 10
	shutdownTimeout     = 5 * time.Second
	entryDocument       = "index.html"
)

var errInvalidRequestBody = errors.New("request body must be a JSON object")

type Server struct {
	config  Config
	scanner *Scanner
	router  *mux.Router
}

func NewServer(config Config, scanner *Scanner) *Server {
	s := &Server{
		config:  config,
		scanner: scanner,
		router:  mux.NewRouter(),
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	for _, scanPath := range []string{"/api/scan", "/api/scan/"} {
		s.router.HandleFunc(scanPath, s.handleScan).Methods(http.MethodPost)
	}
	s.router.PathPrefix("/api").HandlerFunc(handleAPINotFound)
	s.router.PathPrefix("/").
		Handler(spaHandler{staticPath: s.config.DistDir, indexPath: entryDocument}).
		Methods(http.MethodGet, http.MethodHead)

	s.router.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
}

// Handler wraps the router with panic recovery, access logging, request IDs
// and CORS. Access log lines go to accessLog.
func (s *Server) Handler(accessLog io.Writer) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{s.config.AllowedOrigin}),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	var h http.Handler = s.router
	h = cors(h)
	h = withRequestID(h)
	h = handlers.CombinedLoggingHandler(accessLog, h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)

	return h
}

// ListenAndServe listens on the configured port and blocks like Serve.
func (s *Server) ListenAndServe(ctx context.Context, accessLog io.Writer) error {
	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", s.config.Addr(), err)
	}

	return s.Serve(ctx, listener, accessLog)
}

// Serve blocks until ctx is done or the listener fails. Cancelling ctx shuts
// the server down gracefully and returns nil.
func (s *Server) Serve(ctx context.Context, listener net.Listener, accessLog io.Writer) error {
	srv := &http.Server{Handler: s.Handler(accessLog)}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	log.Printf("Server running on http://localhost:%s", listenerPort(listener))

	select {
	case err := <-serveErr:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		log.Println("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

func listenerPort(listener net.Listener) string {
	_, port, err := net.SplitHostPort(listener.Addr().String())
	if err != nil {
		return listener.Addr().String()
	}

	return port
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeScanRequest(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")

			return
		}

		writeError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	result, err := s.scanner.Scan(req.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	log.Printf(
		"[%s] scanned %q: flagged=%t reasons=%d",
		requestIDFromContext(r.Context()),
		req.URL,
		result.Flagged,
		len(result.Reasons),
	)

	writeJSON(w, http.StatusOK, result)
}

// decodeScanRequest only parses bodies sent as application/json. Other
// content types and top-level JSON arrays yield an empty request, so they
// end up as a missing URL rather than a decoding failure.
func decodeScanRequest(w http.ResponseWriter, r *http.Request) (ScanRequest, error) {
	var req ScanRequest

	if !isJSONContentType(r.Header.Get("Content-Type")) {
		return req, nil
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		return req, fmt.Errorf("cannot read request body: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0:
		return req, nil
	case raw[0] == '[' && json.Valid(raw):
		return req, nil
	case raw[0] != '{':
		return req, errInvalidRequestBody
	}

	err = json.Unmarshal(raw, &req)
	if err != nil {
		return req, fmt.Errorf("%w: %s", errInvalidRequestBody, err)
	}

	return req, nil
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)

	return err == nil && mediaType == "application/json"
}

func handleAPINotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Printf("cannot write response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
