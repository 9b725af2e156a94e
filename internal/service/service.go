package service

import (
	"context"
	"io"
	"time"

	"crockpot_twin/internal/models"
	"crockpot_twin/internal/repository"
)

// Appliance is the command surface consumed by UI and remote adapters.
type Appliance interface {
	SetState(ctx context.Context, state models.HeatState) error
	StartSchedule(ctx context.Context, name string) error
	StopSchedule(ctx context.Context) error
	InjectFault(ctx context.Context, active bool) error
	UpdateConfig(ctx context.Context, p ConfigParams) error
}

// Monitoring exposes read-only status snapshots.
type Monitoring interface {
	Status() models.Status
	ScheduleStatus() string
}

// Schedules manages the cooking-program registry (presets + custom).
type Schedules interface {
	List() []models.Schedule
	Get(name string) (models.Schedule, bool)
	Save(ctx context.Context, s models.Schedule) error
	Delete(ctx context.Context, name string) (bool, error)
}

// History exposes the sampled ring buffer and its serializations.
type History interface {
	Entries() []models.LogEntry
	Recent(count int) []models.LogEntry
	Stats() models.HistoryStats
	WriteCSV(w io.Writer) error
	WriteJSON(w io.Writer) error
	Import(r io.Reader)
	ForceSample(ctx context.Context)
	Clear()
}

// EventLog exposes the persisted audit trail with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ApplianceEvent, error)
}

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Runner drives the engine at one tick per second. Stop via context
// cancellation in main() for graceful shutdown.
type Runner interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services behind their interfaces.
type Service struct {
	Appliance
	Monitoring
	Schedules
	History
	EventLog
	Runner
	Authorization
}

// Deps carries everything NewService needs to wire the sub-services.
type Deps struct {
	Engine        *Engine
	Repos         *repository.Repository
	Observer      StatusObserver
	JWTSigningKey string
}

func NewService(d Deps) *Service {
	return &Service{
		Appliance:     NewApplianceService(d.Engine, d.Repos.Events),
		Monitoring:    NewMonitoringService(d.Engine),
		Schedules:     NewScheduleService(d.Engine),
		History:       NewHistoryService(d.Engine),
		EventLog:      NewEventLogService(d.Repos.Events),
		Runner:        NewTickRunner(d.Engine, d.Repos.Events, d.Observer),
		Authorization: NewAuthService(d.Repos.Auth, d.JWTSigningKey),
	}
}
