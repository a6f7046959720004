package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// GoroutineMonitor tracks goroutine counts against a baseline taken at
// construction, so leaked player workers show up as growth.
type GoroutineMonitor struct {
	mu              sync.RWMutex
	baseline        int
	current         int
	peak            int
	checkInterval   time.Duration
	alertThreshold  int
	lastAlert       time.Time
	alertCooldown   time.Duration
	stopChan        chan struct{}
	stopOnce        sync.Once
	componentCounts map[string]int
}

// NewGoroutineMonitor creates a new goroutine monitor. interval <= 0 uses one
// second; threshold is the goroutine count above which a warning is logged.
func NewGoroutineMonitor(interval time.Duration, threshold int) *GoroutineMonitor {
	if interval <= 0 {
		interval = time.Second
	}
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		baseline:        baseline,
		current:         baseline,
		peak:            baseline,
		checkInterval:   interval,
		alertThreshold:  threshold,
		alertCooldown:   time.Minute,
		stopChan:        make(chan struct{}),
		componentCounts: make(map[string]int),
	}
}

// Start begins periodic sampling in the background
func (gm *GoroutineMonitor) Start() {
	go gm.monitor()
	log.Debug().
		Int("baseline", gm.baseline).
		Dur("interval", gm.checkInterval).
		Msg("Started goroutine monitoring")
}

// Stop stops the background sampling. It is safe to call more than once.
func (gm *GoroutineMonitor) Stop() {
	gm.stopOnce.Do(func() { close(gm.stopChan) })
}

// monitor is the main monitoring loop
func (gm *GoroutineMonitor) monitor() {
	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.Sample()
		case <-gm.stopChan:
			return
		}
	}
}

// Sample takes a reading now, logs it and returns the current count
func (gm *GoroutineMonitor) Sample() int {
	current := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.current = current
	if current > gm.peak {
		gm.peak = current
	}
	growth := current - gm.baseline

	shouldAlert := gm.alertThreshold > 0 && current > gm.alertThreshold &&
		time.Since(gm.lastAlert) > gm.alertCooldown
	if shouldAlert {
		gm.lastAlert = time.Now()
	}
	peak := gm.peak
	gm.mu.Unlock()

	log.Debug().
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("peak", peak).
		Int("growth", growth).
		Msg("Goroutine metrics")

	if shouldAlert {
		log.Warn().
			Int("current", current).
			Int("threshold", gm.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
	return current
}

// CheckLeaks waits up to grace for the goroutine count to fall back to
// baseline+tolerance and returns how many goroutines remain above it.
func (gm *GoroutineMonitor) CheckLeaks(tolerance int, grace time.Duration) int {
	deadline := time.Now().Add(grace)
	for {
		excess := gm.Sample() - gm.baseline - tolerance
		if excess <= 0 {
			return 0
		}
		if time.Now().After(deadline) {
			log.Warn().
				Int("excess", excess).
				Interface("components", gm.GetMetrics().ComponentCounts).
				Msg("Goroutines still running after sessions finished")
			return excess
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// AdjustComponent adds delta to a component's goroutine count. Callers add
// when they start goroutines and subtract when those have returned, so the
// counts logged with a leak show what was still meant to be running.
func (gm *GoroutineMonitor) AdjustComponent(name string, delta int) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.componentCounts[name] += delta
	if gm.componentCounts[name] == 0 {
		delete(gm.componentCounts, name)
	}
}

// GetMetrics returns current goroutine metrics
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return GoroutineMetrics{
		Current:         gm.current,
		Baseline:        gm.baseline,
		Peak:            gm.peak,
		Growth:          gm.current - gm.baseline,
		ComponentCounts: copyMap(gm.componentCounts),
	}
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current         int            `json:"current"`
	Baseline        int            `json:"baseline"`
	Peak            int            `json:"peak"`
	Growth          int            `json:"growth"`
	ComponentCounts map[string]int `json:"component_counts"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
