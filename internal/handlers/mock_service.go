package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crockpot_twin/internal/models"
	"crockpot_twin/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockAppliance struct {
	setStateErr    error
	startErr       error
	stopErr        error
	injectErr      error
	updateErr      error
	lastState      models.HeatState
	lastStartName  string
	lastFault      bool
	lastConfig     service.ConfigParams
	setStateCalls  int
	startCalls     int
	stopCalls      int
	injectCalls    int
	updateCfgCalls int
}

func (m *mockAppliance) SetState(ctx context.Context, state models.HeatState) error {
	m.setStateCalls++
	m.lastState = state
	return m.setStateErr
}
func (m *mockAppliance) StartSchedule(ctx context.Context, name string) error {
	m.startCalls++
	m.lastStartName = name
	return m.startErr
}
func (m *mockAppliance) StopSchedule(ctx context.Context) error {
	m.stopCalls++
	return m.stopErr
}
func (m *mockAppliance) InjectFault(ctx context.Context, active bool) error {
	m.injectCalls++
	m.lastFault = active
	return m.injectErr
}
func (m *mockAppliance) UpdateConfig(ctx context.Context, p service.ConfigParams) error {
	m.updateCfgCalls++
	m.lastConfig = p
	return m.updateErr
}

type mockMonitoring struct {
	status  models.Status
	display string
}

func (m *mockMonitoring) Status() models.Status  { return m.status }
func (m *mockMonitoring) ScheduleStatus() string { return m.display }

type mockSchedules struct {
	schedules []models.Schedule
	getOK     bool
	got       models.Schedule
	saveErr   error
	deleted   bool
	deleteErr error

	lastSaved   models.Schedule
	lastDeleted string
}

func (m *mockSchedules) List() []models.Schedule { return m.schedules }
func (m *mockSchedules) Get(name string) (models.Schedule, bool) {
	return m.got, m.getOK
}
func (m *mockSchedules) Save(ctx context.Context, s models.Schedule) error {
	m.lastSaved = s
	return m.saveErr
}
func (m *mockSchedules) Delete(ctx context.Context, name string) (bool, error) {
	m.lastDeleted = name
	return m.deleted, m.deleteErr
}

type mockHistory struct {
	entries    []models.LogEntry
	recent     []models.LogEntry
	stats      models.HistoryStats
	csvErr     error
	jsonErr    error
	csvBody    string
	jsonBody   string
	lastRecent int
	imports    int
	samples    int
	clears     int
}

func (m *mockHistory) Entries() []models.LogEntry { return m.entries }
func (m *mockHistory) Recent(count int) []models.LogEntry {
	m.lastRecent = count
	return m.recent
}
func (m *mockHistory) Stats() models.HistoryStats { return m.stats }
func (m *mockHistory) WriteCSV(w io.Writer) error {
	if m.csvErr != nil {
		return m.csvErr
	}
	_, err := io.WriteString(w, m.csvBody)
	return err
}
func (m *mockHistory) WriteJSON(w io.Writer) error {
	if m.jsonErr != nil {
		return m.jsonErr
	}
	_, err := io.WriteString(w, m.jsonBody)
	return err
}
func (m *mockHistory) Import(r io.Reader)              { m.imports++ }
func (m *mockHistory) ForceSample(ctx context.Context) { m.samples++ }
func (m *mockHistory) Clear()                          { m.clears++ }

type mockEventLog struct {
	resp     []models.ApplianceEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ApplianceEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
