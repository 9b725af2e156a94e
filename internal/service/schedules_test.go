package service

import (
	"context"
	"errors"
	"testing"

	"crockpot_twin/internal/models"
)

func Test_validateSchedule(t *testing.T) {
	t.Parallel()

	valid := models.Schedule{
		Name: "Overnight",
		Steps: []models.ScheduleStep{
			{State: models.HeatLow, DurationSeconds: 4 * 3600},
			{State: models.HeatWarm, DurationSeconds: 0},
		},
	}

	cases := []struct {
		name     string
		schedule models.Schedule
		wantErr  error
	}{
		{name: "valid with trailing indefinite hold", schedule: valid, wantErr: nil},
		{
			name:     "blank name",
			schedule: models.Schedule{Name: "  ", Steps: valid.Steps},
			wantErr:  errScheduleNoName,
		},
		{
			name:     "no steps",
			schedule: models.Schedule{Name: "Empty"},
			wantErr:  errScheduleNoSteps,
		},
		{
			name: "negative duration",
			schedule: models.Schedule{Name: "Bad", Steps: []models.ScheduleStep{
				{State: models.HeatLow, DurationSeconds: -1},
			}},
			wantErr: errNegativeDuration,
		},
		{
			name: "indefinite step before the end",
			schedule: models.Schedule{Name: "Stuck", Steps: []models.ScheduleStep{
				{State: models.HeatHigh, DurationSeconds: 0},
				{State: models.HeatWarm, DurationSeconds: 600},
			}},
			wantErr: errIndefiniteNotFinal,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := validateSchedule(tc.schedule)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("validateSchedule: got %v; want %v", err, tc.wantErr)
			}
		})
	}

	t.Run("invalid heat state", func(t *testing.T) {
		t.Parallel()
		err := validateSchedule(models.Schedule{Name: "Bad", Steps: []models.ScheduleStep{
			{State: models.HeatState(7), DurationSeconds: 60},
		}})
		if err == nil {
			t.Fatalf("expected error for undefined heat state")
		}
	})
}

func TestScheduleService_SaveGetDelete(t *testing.T) {
	svc := NewScheduleService(newTestEngine(t))
	ctx := context.Background()

	custom := models.Schedule{
		Name: "Chili Night",
		Steps: []models.ScheduleStep{
			{State: models.HeatHigh, DurationSeconds: 2 * 3600},
			{State: models.HeatWarm, DurationSeconds: 0},
		},
	}

	if err := svc.Save(ctx, custom); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, ok := svc.Get("Chili Night")
	if !ok {
		t.Fatalf("saved schedule not found")
	}
	if len(got.Steps) != 2 || got.Steps[0].State != models.HeatHigh {
		t.Fatalf("unexpected schedule content: %+v", got)
	}

	// Presets plus the custom one.
	all := svc.List()
	if len(all) != 4 {
		t.Fatalf("expected 3 presets + 1 custom, got %d", len(all))
	}

	removed, err := svc.Delete(ctx, "Chili Night")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !removed {
		t.Fatalf("expected custom schedule to be removed")
	}

	if removed, _ := svc.Delete(ctx, "Slow Cook"); removed {
		t.Fatalf("presets must not be removable")
	}
}

func TestScheduleService_Save_RejectsInvalid(t *testing.T) {
	svc := NewScheduleService(newTestEngine(t))

	err := svc.Save(context.Background(), models.Schedule{Name: "No Steps"})
	if !errors.Is(err, errScheduleNoSteps) {
		t.Fatalf("expected errScheduleNoSteps, got %v", err)
	}
}
