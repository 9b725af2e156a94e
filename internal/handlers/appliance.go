package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crockpot_twin/internal/models"
	"crockpot_twin/internal/service"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusStateSet = "state_set"
	statusFaultSet = "fault_set"
	statusCfgSet   = "config_updated"
	statusStarted  = "started"
	statusStopped  = "stopped"

	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status string plus the current appliance snapshot.
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	resp["appliance"] = h.services.Monitoring.Status()
	c.JSON(http.StatusOK, resp)
}

// Request DTO for setting the heat state.
type stateRequest struct {
	State string `json:"state" binding:"required"` // OFF | WARM | LOW | HIGH
}

// SetStateRequest is an exported model for Swagger docs of the setState payload.
type SetStateRequest struct {
	// State to set. Allowed: OFF, WARM, LOW, HIGH
	State string `json:"state" example:"HIGH"`
}

type faultRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type configRequest struct {
	SafetyTempF       float64 `json:"safety_temp_f" binding:"required"`
	ControlIntervalMS int     `json:"control_interval_ms" binding:"required"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Set heat state
// @Description  Switches the appliance to OFF, WARM, LOW or HIGH
// @Tags         appliance
// @Accept       json
// @Produce      json
// @Param        body  body   SetStateRequest  true  "State payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/appliance/state [post]
// @Security     BearerAuth
func (h *Handler) setState(c *gin.Context) {
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	state, err := models.ParseHeatState(req.State)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Appliance.SetState(c.Request.Context(), state); err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "appliance_set_state_failed", err, "state", req.State)
		return
	}
	h.respondWithStatusAndState(c, statusStateSet, gin.H{"state": state.String()})
}

// @Summary      Get appliance status
// @Tags         appliance
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/appliance/status [get]
// @Security     BearerAuth
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"appliance":        h.services.Monitoring.Status(),
		"schedule_display": h.services.Monitoring.ScheduleStatus(),
	})
}

// @Summary      Inject sensor fault
// @Description  Turns the simulated temperature sensor fault on or off
// @Tags         appliance
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/appliance/fault [post]
// @Security     BearerAuth
func (h *Handler) injectFault(c *gin.Context) {
	var req faultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	if err := h.services.Appliance.InjectFault(c.Request.Context(), *req.Active); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to inject fault", "appliance_inject_fault_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusFaultSet, gin.H{"active": *req.Active})
}

// @Summary      Update configuration
// @Description  Sets the safety shutoff ceiling and control interval
// @Tags         appliance
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/appliance/config [put]
// @Security     BearerAuth
func (h *Handler) updateConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	params := service.ConfigParams{
		SafetyTempF:       req.SafetyTempF,
		ControlIntervalMS: req.ControlIntervalMS,
	}
	if err := h.services.Appliance.UpdateConfig(c.Request.Context(), params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWithStatusAndState(c, statusCfgSet, gin.H{})
}

// isNotFound maps service sentinel errors to 404 responses.
func isNotFound(err error) bool {
	return errors.Is(err, service.ErrScheduleNotFound)
}
