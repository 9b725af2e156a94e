package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crockpot_twin/internal/models"
)

// Metrics exports the appliance state to Prometheus. It implements the
// tick runner's observer interfaces; a nil *Metrics disables export.
type Metrics struct {
	temperature    prometheus.Gauge
	heatState      prometheus.Gauge
	relayMain      prometheus.Gauge
	relayAux       prometheus.Gauge
	sensorFault    prometheus.Gauge
	uptime         prometheus.Gauge
	scheduleActive prometheus.Gauge
	ticksTotal     prometheus.Counter
	eventsTotal    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crockpot_temperature_fahrenheit",
			Help: "Current pot temperature reading.",
		}),
		heatState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crockpot_heat_state",
			Help: "Heat state (0 off, 1 warm, 2 low, 3 high).",
		}),
		relayMain: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crockpot_relay_main",
			Help: "Main heating relay output (0 or 1).",
		}),
		relayAux: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crockpot_relay_aux",
			Help: "Auxiliary heating relay output (0 or 1).",
		}),
		sensorFault: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crockpot_sensor_fault",
			Help: "Whether the temperature sensor is faulted (0 or 1).",
		}),
		uptime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crockpot_uptime_seconds",
			Help: "Simulated seconds since the controller started.",
		}),
		scheduleActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crockpot_schedule_active",
			Help: "Whether a cooking schedule is running (0 or 1).",
		}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crockpot_ticks_total",
			Help: "Total simulation ticks processed.",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crockpot_events_total",
			Help: "Total appliance events recorded, by type.",
		}, []string{"type"}),
	}

	prometheus.MustRegister(
		m.temperature,
		m.heatState,
		m.relayMain,
		m.relayAux,
		m.sensorFault,
		m.uptime,
		m.scheduleActive,
		m.ticksTotal,
		m.eventsTotal,
	)

	return m
}

// Observe refreshes all gauges from a status snapshot.
func (m *Metrics) Observe(status models.Status) {
	if m == nil {
		return
	}
	m.temperature.Set(status.TemperatureF)
	m.heatState.Set(float64(status.State))
	m.relayMain.Set(boolGauge(status.RelayMain))
	m.relayAux.Set(boolGauge(status.RelayAux))
	m.sensorFault.Set(boolGauge(status.SensorFault))
	m.uptime.Set(float64(status.UptimeSeconds))
	m.scheduleActive.Set(boolGauge(status.ScheduleActive))
	m.ticksTotal.Inc()
}

// ObserveEvent counts an appliance event by type.
func (m *Metrics) ObserveEvent(ev models.ApplianceEvent) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(ev.Type).Inc()
}

// Handler serves the Prometheus exposition endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
