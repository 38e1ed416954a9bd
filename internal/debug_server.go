package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"community-messaging/cache"
	"community-messaging/observability"
	"community-messaging/services"
	"community-messaging/storage"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/process"
)

// DebugServer exposes an operator-facing JSON stats endpoint: row counts per
// table, service counters, cache occupancy and process resource usage. It is
// not part of the public surface and binds its own port.
type DebugServer struct {
	store        *storage.Manager
	registry     *services.Registry
	metrics      *observability.MonitoringManager
	participants *cache.ParticipantCache
	port         int
	log          *slog.Logger
}

func NewDebugServer(
	store *storage.Manager,
	registry *services.Registry,
	metrics *observability.MonitoringManager,
	participants *cache.ParticipantCache,
	port int,
	log *slog.Logger,
) *DebugServer {
	return &DebugServer{
		store:        store,
		registry:     registry,
		metrics:      metrics,
		participants: participants,
		port:         port,
		log:          log,
	}
}

type statsPayload struct {
	Tables    map[string]int64              `json:"tables"`
	Counters  observability.MonitoringStats `json:"counters"`
	CacheSize int                           `json:"cache_size"`
	Process   processStats                  `json:"process"`
}

type processStats struct {
	RSSMb      uint64  `json:"rss_mb"`
	CPUPercent float64 `json:"cpu_percent"`
}

func (s *DebugServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	tables, err := s.store.TableCounts()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payload := statsPayload{
		Tables:    tables,
		Counters:  s.metrics.GetLatest(),
		CacheSize: s.participants.Len(),
		Process:   currentProcessStats(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("write stats response", "error", err)
	}
}

// handleUnread runs the real read-receipt aggregation for one user, giving
// operators a way to sanity-check badge numbers without the product API.
func (s *DebugServer) handleUnread(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user"))
	if err != nil {
		http.Error(w, "user query parameter must be a UUID", http.StatusBadRequest)
		return
	}

	report, err := s.registry.Receipts.UnreadCounts(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.log.Error("write unread response", "error", err)
	}
}

func currentProcessStats() processStats {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return processStats{}
	}
	stats := processStats{}
	if mem, err := proc.MemoryInfo(); err == nil {
		stats.RSSMb = mem.RSS / 1024 / 1024
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	return stats
}

// Run serves until the context is canceled, then shuts down within a short
// grace period. Implements contract.Worker so it runs under the supervisor.
type debugWorker struct {
	server *DebugServer
}

func (s *DebugServer) Worker() *debugWorker { return &debugWorker{server: s} }

func (w *debugWorker) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/stats", w.server.handleStats)
	mux.HandleFunc("/debug/unread", w.server.handleUnread)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", w.server.port),
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		w.server.log.Info("debug server listening", "port", w.server.port)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
