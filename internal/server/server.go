package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"

	"github.com/jpalmerr/browserrun/internal/assets"
	"github.com/jpalmerr/browserrun/pages"
)

// rootContentType is the Content-Type of both root pages.
const rootContentType = "text/html"

// Handler answers a single request of a test run.
//
// Handler is immutable after [NewHandler] and safe for concurrent use by any
// number of connections.
type Handler struct {
	headless bool
	resolver *assets.Resolver
	logger   *slog.Logger
}

// NewHandler creates a [Handler].
//
// Parameters:
//   - workDir: directory holding generated artifacts (searched first)
//   - projectDir: directory holding hand-written assets (searched second)
//   - headless: selects the headless root page
//   - logger: logger for recovered panics
func NewHandler(workDir, projectDir string, headless bool, logger *slog.Logger) *Handler {
	return &Handler{
		headless: headless,
		resolver: assets.NewResolver(workDir, projectDir),
		logger:   logger,
	}
}

// ServeHTTP implements [http.Handler]. The method and headers of the request
// are not inspected; only the path selects the response.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	w := &trackingWriter{ResponseWriter: rw}
	defer h.recoverPanic(w, r)

	p := r.URL.Path
	if !strings.HasPrefix(p, "/") {
		notFound(w)
		return
	}

	if p == "/" {
		h.serveRoot(w)
		return
	}

	f, ok := h.resolver.Resolve(p)
	if !ok {
		notFound(w)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(http.StatusOK)
	// a failed copy means the client went away; nothing else to do
	_, _ = io.Copy(w, f)
}

// serveRoot writes the embedded root page for the configured mode.
func (h *Handler) serveRoot(w http.ResponseWriter) {
	content, err := pages.Index(h.headless)
	if err != nil {
		notFound(w)
		return
	}
	w.Header().Set("Content-Type", rootContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// recoverPanic keeps a panic confined to its own request. It logs the stack
// with a correlation ID and answers 404 unless the response has started.
func (h *Handler) recoverPanic(w *trackingWriter, r *http.Request) {
	rec := recover()
	if rec == nil {
		return
	}
	if rec == http.ErrAbortHandler {
		panic(rec)
	}

	correlationID := uuid.NewString()
	h.logger.Error("request handler panic",
		"correlation_id", correlationID,
		"path", r.URL.Path,
		"panic", fmt.Sprintf("%v", rec),
		"stack", string(debug.Stack()),
	)

	if !w.wroteHeader {
		w.Header().Del("Content-Type")
		notFound(w)
	}
}

// trackingWriter records whether the status line has been written.
type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (t *trackingWriter) WriteHeader(code int) {
	t.wroteHeader = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *trackingWriter) Write(b []byte) (int, error) {
	t.wroteHeader = true
	return t.ResponseWriter.Write(b)
}

// notFound writes a 404 with an empty body.
func notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

// Server binds a listener and serves a [Handler] on it.
//
// Server is started with [Server.Start] and runs until the context passed to
// Start is cancelled.
type Server struct {
	addr       string
	handler    http.Handler
	listener   net.Listener
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a new [Server].
//
// Parameters:
//   - addr: TCP address to listen on; port 0 picks an ephemeral port
//   - handler: request handler, usually a [Handler]
//   - logger: logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(addr string, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		addr:    addr,
		handler: handler,
		logger:  logger,
	}
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after the listener is bound,
// so [Server.Addr] is valid as soon as Start returns nil. Each accepted
// connection is served on its own goroutine and closed after one response.
// When ctx is cancelled the listener and all open connections are closed.
//
// Returns an error if the server fails to bind to the configured address.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify the address synchronously
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.addr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler: s.handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ErrorLog: slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
	}
	// one request per connection
	s.httpServer.SetKeepAlivesEnabled(false)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		if err := s.httpServer.Close(); err != nil {
			s.logger.Error("http server close error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address, or nil before [Server.Start].
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
