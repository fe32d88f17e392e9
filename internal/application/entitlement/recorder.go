package entitlement

import "github.com/atelier-community/atelier/internal/domain/entitlement"

// Recorder receives engine events for metrics.
type Recorder interface {
	ObserveResolution(feature entitlement.Feature, status entitlement.Status)
	IncStoreFallback(operation string)
	IncFailClosed(feature entitlement.Feature)
}

type nopRecorder struct{}

func (nopRecorder) ObserveResolution(entitlement.Feature, entitlement.Status) {}
func (nopRecorder) IncStoreFallback(string)                                   {}
func (nopRecorder) IncFailClosed(entitlement.Feature)                         {}

// NopRecorder discards every event.
func NopRecorder() Recorder { return nopRecorder{} }
