package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDashboardReport(c *gin.Context) {
	report, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Dashboard report fetched successfully", report)
}

// GetMyReport summarizes the caller's own workload and completion rate.
func (h *Handler) GetMyReport(c *gin.Context) {
	report, err := h.reports.MyReport(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Report fetched successfully", report)
}

func (h *Handler) GetProjectReport(c *gin.Context) {
	projectID, err := parseID(c, "projectID")
	if err != nil {
		h.fail(c, err)
		return
	}

	report, err := h.reports.ProjectReport(c.Request.Context(), projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Project report fetched successfully", report)
}
