package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"community-messaging/observability"

	"github.com/shirou/gopsutil/process"
)

// TelemetryWorker periodically refreshes the monitoring snapshot and logs
// it together with process resource usage, so an operator tailing the logs
// sees throughput and memory without hitting the debug endpoint.
type TelemetryWorker struct {
	log            *slog.Logger
	metrics        *observability.MonitoringManager
	metricInterval time.Duration
}

func NewTelemetryWorker(log *slog.Logger, metrics *observability.MonitoringManager, metricInterval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{
		log:            log,
		metrics:        metrics,
		metricInterval: metricInterval,
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	proc, _ := process.NewProcess(int32(os.Getpid()))

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.metrics.Refresh()
			stats := w.metrics.GetLatest()

			var rssMb uint64
			if proc != nil {
				if mem, err := proc.MemoryInfo(); err == nil {
					rssMb = mem.RSS / 1024 / 1024
				}
			}

			w.log.Info("telemetry",
				"messages_sent", stats.MessagesSent,
				"message_rate", stats.MessageRate,
				"receipts_inserted", stats.ReceiptsInserted,
				"cache_hits", stats.CacheHits,
				"cache_misses", stats.CacheMisses,
				"access_denied", stats.AccessDenied,
				"alloc_mb", stats.AllocMemMb,
				"rss_mb", rssMb,
			)
		}
	}
}
