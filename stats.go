package uce

import (
	"sync/atomic"
	"time"
)

// StatsReport is a point-in-time snapshot of capability exchange statistics.
type StatsReport struct {
	Time time.Time `json:"time"`
	// CoordinatorsActive is a number of coordinators with in-flight sub-requests.
	CoordinatorsActive uint64 `json:"coordinators_active"`
	// CoordinatorsTotal is a total number of created coordinators.
	CoordinatorsTotal uint64 `json:"coordinators_total"`
	// RequestsTotal is a total number of finished sub-requests.
	RequestsTotal uint64 `json:"requests_total"`
	// RequestsSucceeded is a number of sub-requests finished with success.
	RequestsSucceeded uint64 `json:"requests_succeeded"`
	// RequestsFailed is a number of sub-requests finished with a failure.
	RequestsFailed uint64 `json:"requests_failed"`
	// CapabilitiesDelivered is a total number of capability records delivered to callers.
	CapabilitiesDelivered uint64 `json:"capabilities_delivered"`
	// CapabilitiesSaved is a total number of capability records persisted to the cache.
	CapabilitiesSaved uint64 `json:"capabilities_saved"`
	// ForbiddenEvents is a number of forbidden responses reported by the network.
	ForbiddenEvents uint64 `json:"forbidden_events"`
}

// StatsRecorder records capability exchange statistics.
// A nil recorder is valid and records nothing.
type StatsRecorder struct {
	coordsActive atomic.Uint64
	coordsTotal  atomic.Uint64
	reqSucceeded atomic.Uint64
	reqFailed    atomic.Uint64
	capsDeliv    atomic.Uint64
	capsSaved    atomic.Uint64
	forbidden    atomic.Uint64
}

// NewStatsRecorder creates an empty recorder.
func NewStatsRecorder() *StatsRecorder { return &StatsRecorder{} }

// RecordCoordinatorStarted counts a newly created coordinator.
func (r *StatsRecorder) RecordCoordinatorStarted() {
	if r == nil {
		return
	}
	r.coordsActive.Add(1)
	r.coordsTotal.Add(1)
}

// RecordCoordinatorFinished counts a torn-down coordinator.
func (r *StatsRecorder) RecordCoordinatorFinished() {
	if r == nil {
		return
	}
	// Guard against teardown paths racing each other.
	for {
		cur := r.coordsActive.Load()
		if cur == 0 {
			return
		}
		if r.coordsActive.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// RecordRequestFinished counts a finished sub-request by outcome.
func (r *StatsRecorder) RecordRequestFinished(success bool) {
	if r == nil {
		return
	}
	if success {
		r.reqSucceeded.Add(1)
	} else {
		r.reqFailed.Add(1)
	}
}

// RecordCapabilitiesDelivered counts capability records delivered to a caller.
func (r *StatsRecorder) RecordCapabilitiesDelivered(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.capsDeliv.Add(uint64(n))
}

// RecordCapabilitiesSaved counts capability records persisted to the cache.
func (r *StatsRecorder) RecordCapabilitiesSaved(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.capsSaved.Add(uint64(n))
}

// RecordForbidden counts a forbidden response from the network.
func (r *StatsRecorder) RecordForbidden() {
	if r == nil {
		return
	}
	r.forbidden.Add(1)
}

// Report returns a snapshot of the recorded statistics.
func (r *StatsRecorder) Report() StatsReport {
	if r == nil {
		return StatsReport{Time: time.Now()}
	}
	succeeded := r.reqSucceeded.Load()
	failed := r.reqFailed.Load()
	return StatsReport{
		Time:                  time.Now(),
		CoordinatorsActive:    r.coordsActive.Load(),
		CoordinatorsTotal:     r.coordsTotal.Load(),
		RequestsTotal:         succeeded + failed,
		RequestsSucceeded:     succeeded,
		RequestsFailed:        failed,
		CapabilitiesDelivered: r.capsDeliv.Load(),
		CapabilitiesSaved:     r.capsSaved.Load(),
		ForbiddenEvents:       r.forbidden.Load(),
	}
}
