package models

import "time"

// Appliance event types recorded in the audit log.
const (
	EventStateChange      = "STATE_CHANGE"
	EventSafetyShutoff    = "SAFETY_SHUTOFF"
	EventScheduleStart    = "SCHEDULE_START"
	EventScheduleStop     = "SCHEDULE_STOP"
	EventScheduleStep     = "SCHEDULE_STEP"
	EventScheduleComplete = "SCHEDULE_COMPLETE"
	EventFaultInjected    = "FAULT_INJECTED"
	EventConfigUpdate     = "CONFIG_UPDATE"
)

// ApplianceEvent is a single audit-log entry.
type ApplianceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
