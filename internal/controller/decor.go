package controller

import (
	"time"
)

// Electron animation timings.
const (
	ElectronBaseInterval = 2000 * time.Millisecond
	ElectronStagger      = 200 * time.Millisecond
	ElectronDimDuration  = 500 * time.Millisecond
	ElectronDimOpacity   = 0.3
	ElectronRestOpacity  = 0.8
)

// ApplyTooltips sets the role hint of every resistance and voltage input.
func ApplyTooltips(fields FieldSurface) int {
	n := 0
	for _, f := range fields.FormFields() {
		if hint := f.Hint(); hint != "" {
			fields.SetHint(f.Name, hint)
			n++
		}
	}
	return n
}

// ElectronAnimator pulses the electron elements of the diagram. Electron i
// dims every 2000+200*i ms and recovers 500 ms later.
type ElectronAnimator struct {
	surface AnimationSurface
	sched   Scheduler
	timers  map[string]Timer
	running bool
}

// NewElectronAnimator creates a stopped animator.
func NewElectronAnimator(surface AnimationSurface, sched Scheduler) *ElectronAnimator {
	return &ElectronAnimator{surface: surface, sched: sched, timers: make(map[string]Timer)}
}

// Start begins pulsing every electron on the page.
func (a *ElectronAnimator) Start() {
	if a.running {
		return
	}
	a.running = true
	for i, id := range a.surface.Electrons() {
		a.schedule(id, ElectronBaseInterval+time.Duration(i)*ElectronStagger)
	}
}

func (a *ElectronAnimator) schedule(id string, interval time.Duration) {
	a.timers[id] = a.sched.AfterFunc(interval, func() {
		if !a.running {
			return
		}
		a.surface.SetElementOpacity(id, ElectronDimOpacity)
		a.sched.AfterFunc(ElectronDimDuration, func() {
			a.surface.SetElementOpacity(id, ElectronRestOpacity)
		})
		a.schedule(id, interval)
	})
}

// Stop cancels all pending pulses.
func (a *ElectronAnimator) Stop() {
	a.running = false
	for id, t := range a.timers {
		t.Stop()
		delete(a.timers, id)
	}
}
