package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tickd-io/tickd/internal/domain/todo"
)

// Transport owns the HTTP server: it mounts the API routes behind the
// middleware chain, exposes /metrics, and shuts down gracefully when the
// context is cancelled.
type Transport struct {
	handler   *Handler
	server    *http.Server
	addr      string
	sink      todo.Sink
	logger    *slog.Logger
	itemCount func() int
}

// TransportOption is a functional option for configuring Transport.
type TransportOption func(*Transport)

// WithAddr sets the listen address. Default is "127.0.0.1:8484".
func WithAddr(addr string) TransportOption {
	return func(t *Transport) { t.addr = addr }
}

// WithTransportLogger sets the logger.
func WithTransportLogger(logger *slog.Logger) TransportOption {
	return func(t *Transport) { t.logger = logger }
}

// WithSink sets the error sink used by the recovery boundary.
func WithSink(sink todo.Sink) TransportOption {
	return func(t *Transport) { t.sink = sink }
}

// WithItemCount sets the collection-size callback for the items gauge.
func WithItemCount(fn func() int) TransportOption {
	return func(t *Transport) { t.itemCount = fn }
}

// NewTransport creates an HTTP transport serving the given API handler.
func NewTransport(handler *Handler, opts ...TransportOption) *Transport {
	t := &Transport{
		handler: handler,
		addr:    "127.0.0.1:8484",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins accepting HTTP connections.
// It blocks until the context is cancelled or the server fails.
func (t *Transport) Start(ctx context.Context) error {
	// Prometheus registry with runtime collectors.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(reg)
	if t.itemCount != nil {
		RegisterItemGauge(reg, t.itemCount)
	}

	// Middleware chain (outermost first):
	// 1. Metrics      - record duration and status for the full request
	// 2. RequestID    - correlation ID plus request-scoped logger
	// 3. Recovery     - catch-all 500 boundary, records to the error sink
	var apiHandler http.Handler = t.handler.Routes()
	if t.sink != nil {
		apiHandler = RecoveryMiddleware(t.sink, t.logger)(apiHandler)
	}
	apiHandler = RequestIDMiddleware(t.logger)(apiHandler)
	apiHandler = MetricsMiddleware(metrics)(apiHandler)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry: reg,
	}))
	mux.Handle("/", apiHandler)

	t.server = &http.Server{
		Addr:    t.addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		t.logger.Info("starting HTTP server", "addr", t.addr)
		if err := t.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		t.logger.Info("context cancelled, shutting down HTTP server")
		return t.shutdown()
	case err := <-errCh:
		return err
	}
}

// shutdown performs graceful shutdown of the HTTP server.
func (t *Transport) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := t.server.Shutdown(ctx); err != nil {
		t.logger.Error("error during server shutdown", "error", err)
		return err
	}

	t.logger.Info("HTTP server shutdown complete")
	return nil
}

// Close gracefully shuts down the transport.
func (t *Transport) Close() error {
	if t.server == nil {
		return nil
	}
	return t.shutdown()
}
