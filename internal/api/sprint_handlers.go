package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

type createSprintRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=200"`
	ProjectID   uint      `json:"projectId" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	Status      string    `json:"status" binding:"omitempty,oneof=planned active completed"`
}

func (h *Handler) CreateSprint(c *gin.Context) {
	var req createSprintRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	sprint, err := h.sprints.Create(c.Request.Context(), domain.CreateSprintInput{
		Title:       req.Title,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.SprintStatus(req.Status),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Sprint created successfully", sprint)
}

func (h *Handler) ListProjectSprints(c *gin.Context) {
	projectID, err := parseID(c, "projectID")
	if err != nil {
		h.fail(c, err)
		return
	}

	sprints, err := h.sprints.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Sprints fetched successfully", sprints)
}

func (h *Handler) GetActiveSprint(c *gin.Context) {
	projectID, err := parseID(c, "projectID")
	if err != nil {
		h.fail(c, err)
		return
	}

	sprint, err := h.sprints.Active(c.Request.Context(), projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Active sprint fetched successfully", sprint)
}

type reorderSprintsRequest struct {
	Orders []struct {
		SprintID uint `json:"sprintId" binding:"required"`
		Order    int  `json:"order"`
	} `json:"orders" binding:"required,min=1,dive"`
}

func (h *Handler) ReorderSprints(c *gin.Context) {
	projectID, err := parseID(c, "projectID")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req reorderSprintsRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	orders := make([]domain.SprintOrder, 0, len(req.Orders))
	for _, o := range req.Orders {
		orders = append(orders, domain.SprintOrder{SprintID: o.SprintID, Order: o.Order})
	}

	sprints, err := h.sprints.Reorder(c.Request.Context(), projectID, orders)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Sprints reordered successfully", sprints)
}

func (h *Handler) GetSprint(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	sprint, err := h.sprints.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Sprint fetched successfully", sprint)
}

func (h *Handler) GetSprintStats(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	report, err := h.sprints.Stats(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Sprint stats fetched successfully", report)
}

type updateSprintRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=2,max=200"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      *string    `json:"status" binding:"omitempty,oneof=planned active completed"`
}

func (h *Handler) UpdateSprint(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updateSprintRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	in := domain.UpdateSprintInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Status != nil {
		status := domain.SprintStatus(*req.Status)
		in.Status = &status
	}

	sprint, err := h.sprints.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Sprint updated successfully", sprint)
}

func (h *Handler) DeleteSprint(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.sprints.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Sprint deleted successfully", nil)
}
