package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// AvailabilityWindow рабочее окно терапевта в определённый день недели
type AvailabilityWindow struct {
	Weekday time.Weekday
	Start   types.TimeString
	End     types.TimeString
}

// Therapist represents a person who can be booked
type Therapist struct {
	ID           string
	Name         string
	Active       bool
	Availability []AvailabilityWindow
}

// WindowsFor returns the therapist's availability windows for the weekday
func (t *Therapist) WindowsFor(weekday time.Weekday) []AvailabilityWindow {
	windows := make([]AvailabilityWindow, 0)
	for _, w := range t.Availability {
		if w.Weekday == weekday {
			windows = append(windows, w)
		}
	}
	return windows
}

// WorksOn returns true if the therapist has at least one window on the weekday
func (t *Therapist) WorksOn(weekday time.Weekday) bool {
	return len(t.WindowsFor(weekday)) > 0
}
