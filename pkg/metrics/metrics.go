package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ScanMetrics counts scan activity per vertex table. It satisfies graphar.Observer.
type ScanMetrics struct {
	BatchesClaimed *prometheus.CounterVec
	RowsProduced   *prometheus.CounterVec
	ScanErrors     *prometheus.CounterVec
	Executions     *prometheus.CounterVec
}

// NewScanMetrics registers the scan collectors with reg.
func NewScanMetrics(reg prometheus.Registerer) *ScanMetrics {
	f := promauto.With(reg)
	return &ScanMetrics{
		BatchesClaimed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "grapharscan_batches_claimed_total",
			Help: "Total number of non-empty batches materialized",
		}, []string{"table"}),
		RowsProduced: f.NewCounterVec(prometheus.CounterOpts{
			Name: "grapharscan_rows_produced_total",
			Help: "Total number of rows written to output batches",
		}, []string{"table"}),
		ScanErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "grapharscan_scan_errors_total",
			Help: "Total number of batches aborted by a storage error",
		}, []string{"table"}),
		Executions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "grapharscan_executions_total",
			Help: "Total number of scan executions started",
		}, []string{"table"}),
	}
}

func (m *ScanMetrics) ExecutionStarted(table string, rows int64) {
	m.Executions.WithLabelValues(table).Inc()
}

func (m *ScanMetrics) BatchClaimed(table string, rows int) {
	m.BatchesClaimed.WithLabelValues(table).Inc()
	m.RowsProduced.WithLabelValues(table).Add(float64(rows))
}

func (m *ScanMetrics) ScanFailed(table string) {
	m.ScanErrors.WithLabelValues(table).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
