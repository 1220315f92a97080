package metrics

import (
	"runtime"
	"time"
)

// RuntimeSnapshot holds a point-in-time process reading reported by the
// service status endpoint.
type RuntimeSnapshot struct {
	HeapAllocBytes uint64    `json:"heap_alloc_bytes"`
	SysBytes       uint64    `json:"sys_bytes"`
	NumGC          uint32    `json:"num_gc"`
	Goroutines     int       `json:"goroutines"`
	Uptime         string    `json:"uptime"`
	StartedAt      time.Time `json:"started_at"`
}

// RuntimeCollector reads process runtime statistics.
type RuntimeCollector struct {
	started time.Time
}

// NewRuntimeCollector creates a collector anchored at the current time.
func NewRuntimeCollector() *RuntimeCollector {
	return &RuntimeCollector{started: time.Now()}
}

// Snapshot reads current runtime statistics.
func (rc *RuntimeCollector) Snapshot() RuntimeSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeSnapshot{
		HeapAllocBytes: m.HeapAlloc,
		SysBytes:       m.Sys,
		NumGC:          m.NumGC,
		Goroutines:     runtime.NumGoroutine(),
		Uptime:         time.Since(rc.started).Round(time.Millisecond).String(),
		StartedAt:      rc.started,
	}
}
