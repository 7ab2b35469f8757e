package metrics

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

var (
	systemCPUUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "Current CPU usage percentage",
		},
		[]string{"core"},
	)

	systemMemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "system_memory_usage_bytes",
			Help: "Current memory usage in bytes",
		},
		[]string{"type"},
	)

	goHeapAlloc = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "api_go_heap_alloc_bytes",
			Help: "Heap memory in use by the API service",
		},
		[]string{"service"},
	)

	goHeapSys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "api_go_heap_sys_bytes",
			Help: "Heap memory reserved by the API service",
		},
		[]string{"service"},
	)

	goGoroutines = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "api_go_goroutines",
			Help: "Number of goroutines in the API service",
		},
		[]string{"service"},
	)

	systemMetricsOnce sync.Once
)

// StartSystemMetricsCollection samples system and runtime metrics on a fixed
// interval. Safe to call more than once; only the first call starts the
// collector.
func StartSystemMetricsCollection(serviceName string, interval time.Duration) {
	systemMetricsOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for range ticker.C {
				collectSystemMetrics()
				collectRuntimeMetrics(serviceName)
			}
		}()
	})
}

func collectSystemMetrics() {
	if cpuPercentages, err := cpu.Percent(0, true); err == nil {
		for i, percentage := range cpuPercentages {
			systemCPUUsage.WithLabelValues(fmt.Sprintf("cpu%d", i)).Set(percentage)
		}
	}

	if vmstat, err := mem.VirtualMemory(); err == nil {
		systemMemoryUsage.WithLabelValues("total").Set(float64(vmstat.Total))
		systemMemoryUsage.WithLabelValues("available").Set(float64(vmstat.Available))
		systemMemoryUsage.WithLabelValues("used").Set(float64(vmstat.Used))
		systemMemoryUsage.WithLabelValues("free").Set(float64(vmstat.Free))
	}
}

func collectRuntimeMetrics(serviceName string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	goHeapAlloc.WithLabelValues(serviceName).Set(float64(m.HeapAlloc))
	goHeapSys.WithLabelValues(serviceName).Set(float64(m.HeapSys))
	goGoroutines.WithLabelValues(serviceName).Set(float64(runtime.NumGoroutine()))
}
