package utils

import (
	"fmt"
	"time"
)

// PhaseTimer accumulates named phase durations for a labeled operation. A nil
// timer is valid and records nothing, so call sites can leave timing off
// without guarding every Mark.
type PhaseTimer struct {
	label string
	last  time.Time
	names []string
	durs  []time.Duration
}

func NewPhaseTimer(label string) (pt *PhaseTimer) {
	pt = &PhaseTimer{
		label: label,
		last:  time.Now(),
	}
	return
}

// Mark closes the current phase under the given name and starts the next one.
func (pt *PhaseTimer) Mark(name string) {
	if pt == nil {
		return
	}
	now := time.Now()
	pt.names = append(pt.names, name)
	pt.durs = append(pt.durs, now.Sub(pt.last))
	pt.last = now
}

func (pt *PhaseTimer) Total() (total time.Duration) {
	if pt == nil {
		return
	}
	for _, d := range pt.durs {
		total += d
	}
	return
}

func (pt *PhaseTimer) Report() {
	if pt == nil {
		return
	}
	for i, name := range pt.names {
		fmt.Printf("[%s] %-28s %12.4fs\n", pt.label, name, pt.durs[i].Seconds())
	}
	fmt.Printf("[%s] %-28s %12.4fs\n", pt.label, "total", pt.Total().Seconds())
}
