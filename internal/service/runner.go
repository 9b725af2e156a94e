package service

import (
	"context"
	"time"

	"crockpot_twin/internal/logger"
	"crockpot_twin/internal/models"
	"crockpot_twin/internal/repository"
)

// StatusObserver receives a status snapshot after every tick. The
// metrics and MQTT adapters implement it; nil disables observation.
type StatusObserver interface {
	Observe(status models.Status)
}

// EventObserver is optionally implemented by observers that also want
// the per-tick notifications.
type EventObserver interface {
	ObserveEvent(ev models.ApplianceEvent)
}

// fanoutObserver forwards snapshots and events to several observers.
type fanoutObserver []StatusObserver

func (f fanoutObserver) Observe(status models.Status) {
	for _, o := range f {
		o.Observe(status)
	}
}

func (f fanoutObserver) ObserveEvent(ev models.ApplianceEvent) {
	for _, o := range f {
		if eo, ok := o.(EventObserver); ok {
			eo.ObserveEvent(ev)
		}
	}
}

// ComposeObservers combines observers into one, skipping nils.
func ComposeObservers(observers ...StatusObserver) StatusObserver {
	var out fanoutObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// TickRunner drives the engine at a fixed cadence and fans out the
// results: notifications go to the audit log, snapshots to the observer.
// All I/O happens here, after the engine lock is released.
type TickRunner struct {
	engine   *Engine
	events   repository.EventRepo
	observer StatusObserver
}

func NewTickRunner(engine *Engine, events repository.EventRepo, observer StatusObserver) *TickRunner {
	return &TickRunner{engine: engine, events: events, observer: observer}
}

// Run blocks until ctx is cancelled, advancing the engine once per tick.
func (r *TickRunner) Run(ctx context.Context, tick time.Duration) {
	log := logger.Get("")
	if tick <= 0 {
		tick = time.Second
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	log.Infow("tick loop started", "interval", tick.String())
	for {
		select {
		case <-ctx.Done():
			log.Infow("tick loop stopped")
			return
		case <-ticker.C:
			notes := r.engine.Tick()
			eventObserver, _ := r.observer.(EventObserver)
			for _, ev := range notes {
				if err := r.events.Append(ctx, ev); err != nil {
					log.Errorw("append event", "type", ev.Type, "error", err)
				}
				if eventObserver != nil {
					eventObserver.ObserveEvent(ev)
				}
			}
			if r.observer != nil {
				r.observer.Observe(r.engine.Status())
			}
		}
	}
}
