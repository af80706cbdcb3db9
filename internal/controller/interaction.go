package controller

import (
	"time"

	"go.uber.org/zap"

	"github.com/muurk/mallas/internal/logging"
)

// Result highlighting parameters.
const (
	SettleDelay         = 500 * time.Millisecond
	HighlightBrightness = 1.3
	NormalBrightness    = 1.0
)

// ResultInteraction links result cards to the circuit diagram: hovering
// card i brightens the elements of mesh i+1.
type ResultInteraction struct {
	results ResultSurface
	sched   Scheduler
	timer   Timer
	active  bool
}

// NewResultInteraction creates an inactive controller.
func NewResultInteraction(results ResultSurface, sched Scheduler) *ResultInteraction {
	return &ResultInteraction{results: results, sched: sched}
}

// Activate arms the controller after the settle delay, provided the page
// has at least one result card by then.
func (r *ResultInteraction) Activate() {
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = r.sched.AfterFunc(SettleDelay, func() {
		r.timer = nil
		if r.results.ResultCards() == 0 {
			return
		}
		r.active = true
		logging.Debug("Result interaction active", zap.Int("cards", r.results.ResultCards()))
	})
}

// Active reports whether hovering has any effect.
func (r *ResultInteraction) Active() bool { return r.active }

// Hover highlights mesh i+1. It reports whether anything happened.
func (r *ResultInteraction) Hover(i int) bool {
	return r.setBrightness(i, HighlightBrightness)
}

// Unhover restores mesh i+1.
func (r *ResultInteraction) Unhover(i int) bool {
	return r.setBrightness(i, NormalBrightness)
}

func (r *ResultInteraction) setBrightness(i int, b float64) bool {
	if !r.active || i < 0 || i >= r.results.ResultCards() {
		return false
	}
	r.results.SetMeshBrightness(i+1, b)
	return true
}

// Stop cancels a pending activation.
func (r *ResultInteraction) Stop() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
