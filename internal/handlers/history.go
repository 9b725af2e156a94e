package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crockpot_twin/internal/sim"
)

const (
	exportFormatCSV  = "csv"
	exportFormatJSON = "json"
)

// @Summary      Get history entries
// @Description  Returns the sampled temperature log, oldest first. Use ?recent=N for the tail.
// @Tags         history
// @Produce      json
// @Param        recent  query  int  false  "Return only the most recent N entries"
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	entries := h.services.History.Entries()
	if qs := c.Query("recent"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'recent' value"})
			return
		}
		entries = h.services.History.Recent(n)
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// @Summary      Get history statistics
// @Description  Min/max/average temperature and covered duration over the whole buffer
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/history/stats [get]
// @Security     BearerAuth
func (h *Handler) getHistoryStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.History.Stats())
}

// @Summary      Export history
// @Description  Downloads the log as CSV or JSON with a timestamped filename
// @Tags         history
// @Produce      octet-stream
// @Param        format  query  string  false  "Export format"  Enums(csv,json)  default(csv)
// @Success      200  {file}  file
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history/export [get]
// @Security     BearerAuth
func (h *Handler) exportHistory(c *gin.Context) {
	format := c.DefaultQuery("format", exportFormatCSV)

	var (
		buf         bytes.Buffer
		contentType string
		err         error
	)
	switch format {
	case exportFormatCSV:
		contentType = "text/csv"
		err = h.services.History.WriteCSV(&buf)
	case exportFormatJSON:
		contentType = "application/json"
		err = h.services.History.WriteJSON(&buf)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format; use csv or json"})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to export history", "history_export_failed", err, "format", format)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+sim.ExportFilename(format)+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// @Summary      Import history
// @Description  Replaces the buffer with the posted JSON document. A malformed document results in an empty buffer.
// @Tags         history
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/history/import [post]
// @Security     BearerAuth
func (h *Handler) importHistory(c *gin.Context) {
	h.services.History.Import(c.Request.Body)
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
		"count":  len(h.services.History.Entries()),
	})
}

// @Summary      Force a history sample
// @Description  Captures an entry immediately, outside the sampling cadence
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/history/sample [post]
// @Security     BearerAuth
func (h *Handler) forceSample(c *gin.Context) {
	h.services.History.ForceSample(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Clear history
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/history [delete]
// @Security     BearerAuth
func (h *Handler) clearHistory(c *gin.Context) {
	h.services.History.Clear()
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
