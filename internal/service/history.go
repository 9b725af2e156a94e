package service

import (
	"context"
	"io"

	"crockpot_twin/internal/models"
	"crockpot_twin/internal/sim"
)

// HistoryService exposes the sampled temperature log. All operations go
// through the engine lock since the tick loop writes the same buffer.
type HistoryService struct {
	engine *Engine
}

func NewHistoryService(engine *Engine) *HistoryService {
	return &HistoryService{engine: engine}
}

func (s *HistoryService) Entries() []models.LogEntry {
	var out []models.LogEntry
	s.engine.withHistory(func(h *sim.History) { out = h.Entries() })
	return out
}

func (s *HistoryService) Recent(count int) []models.LogEntry {
	var out []models.LogEntry
	s.engine.withHistory(func(h *sim.History) { out = h.Recent(count) })
	return out
}

func (s *HistoryService) Stats() models.HistoryStats {
	var out models.HistoryStats
	s.engine.withHistory(func(h *sim.History) { out = h.Stats() })
	return out
}

func (s *HistoryService) WriteCSV(w io.Writer) error {
	var err error
	s.engine.withHistory(func(h *sim.History) { err = h.WriteCSV(w) })
	return err
}

func (s *HistoryService) WriteJSON(w io.Writer) error {
	var err error
	s.engine.withHistory(func(h *sim.History) { err = h.WriteJSON(w) })
	return err
}

func (s *HistoryService) Import(r io.Reader) {
	s.engine.withHistory(func(h *sim.History) { h.ReadJSON(r) })
}

// ForceSample captures an entry immediately, outside the sampling cadence.
func (s *HistoryService) ForceSample(ctx context.Context) {
	s.engine.do(func(pot *sim.Crockpot) {
		if h := pot.History(); h != nil {
			h.ForceLog(pot.Status())
		}
	})
}

func (s *HistoryService) Clear() {
	s.engine.withHistory(func(h *sim.History) { h.Clear() })
}
