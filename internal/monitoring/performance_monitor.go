// Package monitoring tracks frame timing for the engine loop.
package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameAvg is the number of frames averaged into one FPS reading.
const DefaultFrameAvg = 30

// PerformanceMonitor tracks frame rate and per-stage timings
type PerformanceMonitor struct {
	frameCount  atomic.Uint64
	frameTime   atomic.Uint64 // nanoseconds
	raycastTime atomic.Uint64
	renderTime  atomic.Uint64
	updateTime  atomic.Uint64

	mutex     sync.RWMutex
	frameAvg  int
	dtSum     float64
	dtFrames  int
	fps       float64
	startTime time.Time
}

// NewPerformanceMonitor averages FPS over frameAvg frames. Non-positive values
// use DefaultFrameAvg.
func NewPerformanceMonitor(frameAvg int) *PerformanceMonitor {
	if frameAvg <= 0 {
		frameAvg = DefaultFrameAvg
	}
	return &PerformanceMonitor{
		frameAvg:  frameAvg,
		startTime: time.Now(),
	}
}

// RecordFrame adds one frame's delta time in seconds. The FPS reading is
// refreshed every frameAvg frames.
func (pm *PerformanceMonitor) RecordFrame(dt float64) {
	pm.frameCount.Add(1)
	pm.frameTime.Store(uint64(dt * float64(time.Second)))

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.dtSum += dt
	pm.dtFrames++
	if pm.dtFrames >= pm.frameAvg {
		if pm.dtSum > 0 {
			pm.fps = float64(pm.dtFrames) / pm.dtSum
		}
		pm.dtSum = 0
		pm.dtFrames = 0
	}
}

// FPS is the last averaged frame rate.
func (pm *PerformanceMonitor) FPS() float64 {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	return pm.fps
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame records the elapsed time as one frame and returns it.
func (ft *FrameTimer) EndFrame() time.Duration {
	elapsed := time.Since(ft.startTime)
	ft.monitor.RecordFrame(elapsed.Seconds())
	return elapsed
}

// Metrics is a snapshot of the monitor.
type Metrics struct {
	Frames          uint64
	FramesPerSecond float64
	FrameTime       time.Duration
	RaycastTime     time.Duration
	RenderTime      time.Duration
	UpdateTime      time.Duration
	Uptime          time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	return Metrics{
		Frames:          pm.frameCount.Load(),
		FramesPerSecond: pm.fps,
		FrameTime:       time.Duration(pm.frameTime.Load()),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		RenderTime:      time.Duration(pm.renderTime.Load()),
		UpdateTime:      time.Duration(pm.updateTime.Load()),
		Uptime:          time.Since(pm.startTime),
	}
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.renderTime.Store(0)
	pm.updateTime.Store(0)

	pm.mutex.Lock()
	pm.dtSum = 0
	pm.dtFrames = 0
	pm.fps = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	// Store timing based on function name
	switch name {
	case "raycast":
		pm.raycastTime.Store(uint64(duration.Nanoseconds()))
	case "render":
		pm.renderTime.Store(uint64(duration.Nanoseconds()))
	case "update":
		pm.updateTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}
