package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	rwerrors "github.com/matzehuels/rankwidth/pkg/errors"
	"github.com/matzehuels/rankwidth/pkg/observability"
)

const metricsShutdownTimeout = 5 * time.Second

// serveMetrics installs Prometheus search hooks and serves them on addr
// until stop is called. It returns the address actually bound, which
// differs from addr when addr asks for port 0.
func serveMetrics(addr string, logger *log.Logger) (bound string, stop func(), err error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, rwerrors.Wrap(rwerrors.ErrCodeInvalidConfig, err, "metrics address %s", addr)
	}

	hooks := observability.NewPrometheusHooks(reg)
	observability.SetSearchHooks(hooks)
	observability.SetScoringHooks(hooks)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warnf("Metrics server stopped: %v", err)
		}
	}()

	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Debugf("Metrics server shutdown: %v", err)
		}
		observability.Reset()
	}, nil
}
