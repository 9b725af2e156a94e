package service

import "crockpot_twin/internal/models"

// MonitoringService serves read-only snapshots to the HTTP, MQTT and
// metrics adapters.
type MonitoringService struct {
	engine *Engine
}

func NewMonitoringService(engine *Engine) *MonitoringService {
	return &MonitoringService{engine: engine}
}

func (s *MonitoringService) Status() models.Status {
	return s.engine.Status()
}

func (s *MonitoringService) ScheduleStatus() string {
	return s.engine.ScheduleStatus()
}
