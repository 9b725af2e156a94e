package sim

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"crockpot_twin/internal/models"
)

// History defaults: one sample per minute, 24 hours of retention.
const (
	DefaultLogIntervalSeconds = 60
	DefaultMaxLogEntries      = 1440
)

// csvHeader is the fixed column order of the tabular export.
var csvHeader = []string{
	"timestamp", "temperature_f", "state", "relay_main", "relay_aux",
	"schedule_active", "schedule_name", "schedule_step",
}

// historyDocument is the structured export/import shape.
type historyDocument struct {
	LogIntervalSeconds int               `json:"log_interval_seconds"`
	EntryCount         int               `json:"entry_count"`
	Entries            []models.LogEntry `json:"entries"`
}

// History is a bounded, time-sampled ring buffer of status snapshots.
// Tick is called once per second; an entry is captured every interval
// seconds and the oldest entry is evicted at capacity.
type History struct {
	interval   int
	maxEntries int

	entries       []models.LogEntry
	sinceLastSamp int

	schedActive bool
	schedName   string
	schedStep   int
}

// NewHistory builds a log with the given sampling interval and capacity.
// Non-positive arguments fall back to the defaults.
func NewHistory(intervalSeconds, maxEntries int) *History {
	if intervalSeconds <= 0 {
		intervalSeconds = DefaultLogIntervalSeconds
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxLogEntries
	}
	return &History{interval: intervalSeconds, maxEntries: maxEntries}
}

// Interval returns seconds between samples.
func (h *History) Interval() int { return h.interval }

// EntryCount returns the number of buffered entries.
func (h *History) EntryCount() int { return len(h.entries) }

// SetScheduleInfo updates the schedule metadata stamped onto entries.
func (h *History) SetScheduleInfo(active bool, name string, step int) {
	h.schedActive = active
	h.schedName = name
	h.schedStep = step
}

// Tick advances the sampling counter and captures an entry when the
// interval elapses. Returns whether a sample was taken.
func (h *History) Tick(status models.Status) bool {
	h.sinceLastSamp++
	if h.sinceLastSamp >= h.interval {
		h.sinceLastSamp = 0
		h.append(status)
		return true
	}
	return false
}

// ForceLog captures an entry immediately and resets the counter.
func (h *History) ForceLog(status models.Status) {
	h.append(status)
	h.sinceLastSamp = 0
}

func (h *History) append(status models.Status) {
	entry := models.LogEntry{
		Timestamp:      status.UptimeSeconds,
		TemperatureF:   status.TemperatureF,
		State:          status.State,
		RelayMain:      status.RelayMain,
		RelayAux:       status.RelayAux,
		ScheduleActive: h.schedActive,
		ScheduleName:   h.schedName,
		ScheduleStep:   h.schedStep,
	}
	if len(h.entries) >= h.maxEntries {
		// FIFO eviction: drop the oldest.
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, entry)
}

// Entries returns all entries in insertion order.
func (h *History) Entries() []models.LogEntry {
	out := make([]models.LogEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Recent returns the most recent count entries, oldest first.
func (h *History) Recent(count int) []models.LogEntry {
	if count >= len(h.entries) {
		return h.Entries()
	}
	out := make([]models.LogEntry, count)
	copy(out, h.entries[len(h.entries)-count:])
	return out
}

// Temperatures projects the temperature column of the whole buffer.
func (h *History) Temperatures() []float64 {
	out := make([]float64, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.TemperatureF
	}
	return out
}

// Clear empties the buffer and resets the sampling counter.
func (h *History) Clear() {
	h.entries = nil
	h.sinceLastSamp = 0
}

// Stats aggregates the whole buffer; all zeros when empty.
func (h *History) Stats() models.HistoryStats {
	if len(h.entries) == 0 {
		return models.HistoryStats{}
	}
	stats := models.HistoryStats{
		MinTempF:   h.entries[0].TemperatureF,
		MaxTempF:   h.entries[0].TemperatureF,
		EntryCount: len(h.entries),
	}
	sum := 0.0
	for _, e := range h.entries {
		if e.TemperatureF < stats.MinTempF {
			stats.MinTempF = e.TemperatureF
		}
		if e.TemperatureF > stats.MaxTempF {
			stats.MaxTempF = e.TemperatureF
		}
		sum += e.TemperatureF
	}
	stats.AvgTempF = sum / float64(len(h.entries))
	stats.DurationSeconds = h.entries[len(h.entries)-1].Timestamp - h.entries[0].Timestamp
	return stats
}

// WriteCSV serializes all entries as rows, oldest first. Booleans are
// encoded as 0/1 and the state by its symbolic name.
func (h *History) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range h.entries {
		row := []string{
			strconv.Itoa(e.Timestamp),
			strconv.FormatFloat(e.TemperatureF, 'f', 1, 64),
			e.State.String(),
			boolDigit(e.RelayMain),
			boolDigit(e.RelayAux),
			boolDigit(e.ScheduleActive),
			e.ScheduleName,
			strconv.Itoa(e.ScheduleStep),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ExportCSV writes the tabular form to a file, creating parent dirs.
func (h *History) ExportCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv export: %w", err)
	}
	defer f.Close()
	return h.WriteCSV(f)
}

// WriteJSON serializes the structured document form.
func (h *History) WriteJSON(w io.Writer) error {
	doc := historyDocument{
		LogIntervalSeconds: h.interval,
		EntryCount:         len(h.entries),
		Entries:            h.Entries(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportJSON writes the structured form to a file, creating parent dirs.
func (h *History) ExportJSON(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json export: %w", err)
	}
	defer f.Close()
	return h.WriteJSON(f)
}

// ReadJSON loads a structured document back into the buffer, trimming
// to capacity. Any decode failure leaves an empty buffer, not an error.
func (h *History) ReadJSON(r io.Reader) {
	h.entries = nil
	var doc historyDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return
	}
	entries := doc.Entries
	if len(entries) > h.maxEntries {
		entries = entries[len(entries)-h.maxEntries:]
	}
	h.entries = append([]models.LogEntry(nil), entries...)
}

// ImportJSON loads the structured form from a file. A missing or
// unreadable file results in an empty buffer.
func (h *History) ImportJSON(path string) {
	f, err := os.Open(path)
	if err != nil {
		h.entries = nil
		return
	}
	defer f.Close()
	h.ReadJSON(f)
}

// ExportFilename generates a timestamped export name such as
// "crockpot_log_20260831_120000.csv".
func ExportFilename(extension string) string {
	return fmt.Sprintf("crockpot_log_%s.%s", time.Now().Format("20060102_150405"), extension)
}
