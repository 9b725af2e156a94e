package service

import (
	"context"
	"errors"
	"time"

	"crockpot_twin/internal/models"
	"crockpot_twin/internal/repository"
)

var errInvalidTimeRange = errors.New("invalid time range: from is after to")

// EventLogService queries the persisted audit trail.
type EventLogService struct {
	events repository.EventRepo
}

func NewEventLogService(events repository.EventRepo) *EventLogService {
	return &EventLogService{events: events}
}

// List returns events in the filter's inclusive window, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ApplianceEvent, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.events.List(ctx, from, to, f.Type)
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
