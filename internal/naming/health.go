package naming

import (
	"runtime"
	"time"
)

// Snapshot is a freshly-computed view of system health, taken once per
// generation call. Never persisted.
type Snapshot struct {
	StoreReachable bool      `json:"store_reachable"`
	MemoryPressure bool      `json:"memory_pressure"`
	Taken          time.Time `json:"taken"`
}

// Action is the degradation level derived from a Snapshot.
type Action int

const (
	// ActionNormal runs the full pipeline.
	ActionNormal Action = iota
	// ActionDegraded runs the pipeline but drops optional enrichment.
	ActionDegraded
	// ActionEmergency bypasses the pipeline: zero external calls.
	ActionEmergency
)

// String returns the action name for logs and health reports.
func (a Action) String() string {
	switch a {
	case ActionDegraded:
		return "degraded"
	case ActionEmergency:
		return "emergency"
	default:
		return "normal"
	}
}

// Action reduces the snapshot to its degradation level: both signals poor
// means emergency, one poor means degraded.
func (s Snapshot) Action() Action {
	switch {
	case !s.StoreReachable && s.MemoryPressure:
		return ActionEmergency
	case !s.StoreReachable || s.MemoryPressure:
		return ActionDegraded
	default:
		return ActionNormal
	}
}

// pipelinePolicy is the per-degradation-level strategy table (one variant,
// one policy) so the degradation behavior stays auditable in one place.
type pipelinePolicy struct {
	bypass       bool // emergency: cheap local name, no pipeline entry
	skipSequence bool // degraded: skip the ordinal range-count enrichment
}

var policies = map[Action]pipelinePolicy{
	ActionNormal:    {},
	ActionDegraded:  {skipSequence: true},
	ActionEmergency: {bypass: true},
}

// healthMonitor computes snapshots from the store breaker and heap usage.
// Probes are injectable for tests.
type healthMonitor struct {
	storeReachable func() bool
	heapInUse      func() uint64
	memLimit       uint64
	now            func() time.Time
}

func newHealthMonitor(storeReachable func() bool, memLimit uint64, now func() time.Time) *healthMonitor {
	return &healthMonitor{
		storeReachable: storeReachable,
		heapInUse:      liveHeapBytes,
		memLimit:       memLimit,
		now:            now,
	}
}

// snapshot computes a fresh health view. Cheap: one atomic breaker state
// read plus a runtime memstats read.
func (h *healthMonitor) snapshot() Snapshot {
	return Snapshot{
		StoreReachable: h.storeReachable(),
		MemoryPressure: h.memLimit > 0 && h.heapInUse() > h.memLimit,
		Taken:          h.now(),
	}
}

func liveHeapBytes() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapInuse
}
