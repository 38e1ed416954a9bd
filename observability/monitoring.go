package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// MonitoringStats aggregates the counters exposed by the debug endpoint and
// logged by the telemetry worker.
type MonitoringStats struct {
	MessagesSent     uint64  `json:"messages_sent"`
	MessagesEdited   uint64  `json:"messages_edited"`
	MessagesDeleted  uint64  `json:"messages_deleted"`
	ReceiptsInserted uint64  `json:"receipts_inserted"`
	CacheHits        uint64  `json:"cache_hits"`
	CacheMisses      uint64  `json:"cache_misses"`
	AccessDenied     uint64  `json:"access_denied"`
	MessageRate      float64 `json:"message_rate"` // messages/s since last check
	AllocMemMb       uint64  `json:"alloc_mem_mb"`
	NumGC            uint32  `json:"num_gc"`
}

// MonitoringManager collects real-time counters from the services. Writers
// only touch atomics; the mutex guards the periodically computed snapshot.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats
	lastCheck   time.Time

	messagesSent     atomic.Uint64
	messagesEdited   atomic.Uint64
	messagesDeleted  atomic.Uint64
	receiptsInserted atomic.Uint64
	cacheHits        atomic.Uint64
	cacheMisses      atomic.Uint64
	accessDenied     atomic.Uint64

	// messages seen since the last rate computation
	rateWindow atomic.Uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{log: log, lastCheck: time.Now()}
}

func (mm *MonitoringManager) IncrMessagesSent() {
	mm.messagesSent.Add(1)
	mm.rateWindow.Add(1)
}

func (mm *MonitoringManager) IncrMessagesEdited() { mm.messagesEdited.Add(1) }

func (mm *MonitoringManager) IncrMessagesDeleted() { mm.messagesDeleted.Add(1) }

func (mm *MonitoringManager) AddReceiptsInserted(n uint64) { mm.receiptsInserted.Add(n) }

func (mm *MonitoringManager) IncrCacheHit() { mm.cacheHits.Add(1) }

func (mm *MonitoringManager) IncrCacheMiss() { mm.cacheMisses.Add(1) }

func (mm *MonitoringManager) IncrAccessDenied() { mm.accessDenied.Add(1) }

// Refresh recomputes the snapshot: cumulative counters, the message rate
// over the elapsed window, and Go memory stats.
func (mm *MonitoringManager) Refresh() {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	now := time.Now()
	duration := now.Sub(mm.lastCheck).Seconds()
	if duration > 0 {
		window := mm.rateWindow.Swap(0)
		mm.latestStats.MessageRate = float64(window) / duration
	}
	mm.lastCheck = now

	mm.latestStats.MessagesSent = mm.messagesSent.Load()
	mm.latestStats.MessagesEdited = mm.messagesEdited.Load()
	mm.latestStats.MessagesDeleted = mm.messagesDeleted.Load()
	mm.latestStats.ReceiptsInserted = mm.receiptsInserted.Load()
	mm.latestStats.CacheHits = mm.cacheHits.Load()
	mm.latestStats.CacheMisses = mm.cacheMisses.Load()
	mm.latestStats.AccessDenied = mm.accessDenied.Load()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC

	mm.log.Debug("stats refreshed",
		"messages_sent", mm.latestStats.MessagesSent,
		"message_rate", mm.latestStats.MessageRate,
		"cache_hits", mm.latestStats.CacheHits,
		"mem_mb", mm.latestStats.AllocMemMb,
	)
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.latestStats
}
