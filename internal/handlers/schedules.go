package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crockpot_twin/internal/models"
)

// ScheduleRequest is an exported model for Swagger docs of the saveSchedule payload.
type ScheduleRequest struct {
	Name string `json:"name" example:"Chili Night"`
	// Steps run in order; duration 0 holds the final state indefinitely.
	Steps []struct {
		State           string `json:"state" example:"HIGH"`
		DurationSeconds int    `json:"duration_seconds" example:"7200"`
	} `json:"steps"`
	Repeat bool `json:"repeat" example:"false"`
}

// @Summary      List schedules
// @Description  Returns the built-in presets followed by custom schedules
// @Tags         schedules
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, schedules"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/schedules [get]
// @Security     BearerAuth
func (h *Handler) listSchedules(c *gin.Context) {
	schedules := h.services.Schedules.List()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(schedules),
		"schedules": schedules,
	})
}

// @Summary      Get schedule by name
// @Tags         schedules
// @Produce      json
// @Param        name  path  string  true  "Schedule name"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/schedules/{name} [get]
// @Security     BearerAuth
func (h *Handler) getSchedule(c *gin.Context) {
	name := c.Param("name")
	schedule, ok := h.services.Schedules.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"schedule":       schedule,
		"total_duration": models.FormatDuration(schedule.TotalDuration()),
	})
}

// @Summary      Save schedule
// @Description  Creates or replaces a custom schedule by name
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        body  body   ScheduleRequest  true  "Schedule payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/schedules [put]
// @Security     BearerAuth
func (h *Handler) saveSchedule(c *gin.Context) {
	var schedule models.Schedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	if err := h.services.Schedules.Save(c.Request.Context(), schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "name": schedule.Name})
}

// @Summary      Delete schedule
// @Description  Removes a custom schedule; presets cannot be deleted
// @Tags         schedules
// @Produce      json
// @Param        name  path  string  true  "Schedule name"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/schedules/{name} [delete]
// @Security     BearerAuth
func (h *Handler) deleteSchedule(c *gin.Context) {
	name := c.Param("name")
	removed, err := h.services.Schedules.Delete(c.Request.Context(), name)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to delete schedule", "schedule_delete_failed", err, "name", name)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found or not deletable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Start schedule
// @Description  Begins running the named schedule from its first step
// @Tags         schedules
// @Produce      json
// @Param        name  path  string  true  "Schedule name"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/schedules/{name}/start [post]
// @Security     BearerAuth
func (h *Handler) startSchedule(c *gin.Context) {
	name := c.Param("name")
	if err := h.services.Appliance.StartSchedule(c.Request.Context(), name); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWithStatusAndState(c, statusStarted, gin.H{"name": name})
}

// @Summary      Stop schedule
// @Description  Cancels the running schedule; the current heat state is kept
// @Tags         schedules
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/schedules/stop [post]
// @Security     BearerAuth
func (h *Handler) stopSchedule(c *gin.Context) {
	if err := h.services.Appliance.StopSchedule(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to stop schedule", "schedule_stop_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStopped, gin.H{})
}
