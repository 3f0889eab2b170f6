package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/port/primary"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// NewRouter creates an HTTP mux with all application routes registered.
// A nil gatherer leaves /metrics unregistered.
func NewRouter(
	containerService primary.ContainerService,
	healthChecks []secondary.HealthChecker,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Container number endpoints
	mux.Handle("/containers/check", NewCheckHandler(containerService, logger))
	mux.Handle("/containers/normalize", NewNormalizeHandler(containerService))
	mux.Handle("/containers/check-digit", NewCheckDigitHandler(containerService))

	// Import endpoints
	mux.Handle("/imports", NewCreateImportHandler(containerService, logger))
	mux.Handle("/imports/{id}", NewCancelImportHandler(containerService, logger))
	mux.Handle("/imports/{id}/report", NewImportReportHandler(containerService, logger))

	// Health check endpoint
	mux.Handle("/health", NewHealthHandler(healthChecks))

	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return mux
}
