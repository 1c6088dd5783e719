package metrics

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/nakabonne/tstorage"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	metricAPILatency = "http_request_ms"
	metricAPIErrors  = "http_request_errors"
)

var (
	store tstorage.Storage
	mu    sync.RWMutex
)

// InitMetrics opens the embedded time-series store under the workdir. Before
// InitMetrics is called (or after Close) all recorders are no-ops, which
// keeps tests free of filesystem side effects.
func InitMetrics(workdir string) error {
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "data", "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7*24*time.Hour),
	)
	if err != nil {
		return err
	}
	mu.Lock()
	store = s
	mu.Unlock()
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// RecordAPIRequest stores one request latency sample, plus an error sample
// when the response was a server error. Called inline from the webserver
// middleware; there is no background collector.
func RecordAPIRequest(status int, latencyMs float64) {
	mu.RLock()
	defer mu.RUnlock()
	if store == nil {
		return
	}
	now := time.Now().Unix()
	rows := []tstorage.Row{
		{Metric: metricAPILatency, DataPoint: tstorage.DataPoint{Timestamp: now, Value: latencyMs}},
	}
	if status >= 500 {
		rows = append(rows, tstorage.Row{
			Metric: metricAPIErrors, DataPoint: tstorage.DataPoint{Timestamp: now, Value: 1},
		})
	}
	_ = store.InsertRows(rows)
}

// RequestSummary summarizes request latencies over the trailing window.
type RequestSummary struct {
	Window   string  `json:"window"`
	Count    int     `json:"count"`
	Errors   int     `json:"errors"`
	MeanMs   float64 `json:"mean_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P90Ms    float64 `json:"p90_ms"`
	P99Ms    float64 `json:"p99_ms"`
	MaxMs    float64 `json:"max_ms"`
	Sampled  bool    `json:"sampled"`
}

func SummarizeRequests(window time.Duration) *RequestSummary {
	summary := &RequestSummary{Window: window.String()}
	mu.RLock()
	defer mu.RUnlock()
	if store == nil {
		return summary
	}
	end := time.Now().Unix()
	start := end - int64(window.Seconds())

	points, err := store.Select(metricAPILatency, nil, start, end)
	if err != nil || len(points) == 0 {
		return summary
	}
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.Value)
	}
	summary.Sampled = true
	summary.Count = len(values)
	summary.MeanMs, _ = stats.Mean(values)
	summary.P50Ms, _ = stats.Percentile(values, 50)
	summary.P90Ms, _ = stats.Percentile(values, 90)
	summary.P99Ms, _ = stats.Percentile(values, 99)
	summary.MaxMs, _ = stats.Max(values)

	if errPoints, err := store.Select(metricAPIErrors, nil, start, end); err == nil {
		summary.Errors = len(errPoints)
	}
	return summary
}

// SystemSnapshot is an on-demand host/process status probe for the admin
// dashboard, sampled at request time.
type SystemSnapshot struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemTotal   uint64  `json:"mem_total"`
	MemUsed    uint64  `json:"mem_used"`
	MemPercent float64 `json:"mem_percent"`
	Goroutines int     `json:"goroutines"`
}

func Snapshot() *SystemSnapshot {
	snap := &SystemSnapshot{Goroutines: runtime.NumGoroutine()}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemTotal = vm.Total
		snap.MemUsed = vm.Used
		snap.MemPercent = vm.UsedPercent
	}
	return snap
}
