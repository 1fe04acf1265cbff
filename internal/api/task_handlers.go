package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

type createTaskRequest struct {
	Title          string     `json:"title" binding:"required,min=2,max=200"`
	Description    string     `json:"description"`
	ProjectID      uint       `json:"projectId" binding:"required"`
	SprintID       *uint      `json:"sprintId"`
	AssigneeIDs    []uint     `json:"assignees"`
	Estimate       *float64   `json:"estimatedHours" binding:"omitempty,gte=0"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status         string     `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
	DueDate        *time.Time `json:"dueDate"`
	RequiresReview bool       `json:"requiresReview"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), domain.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		ProjectID:      req.ProjectID,
		SprintID:       req.SprintID,
		AssigneeIDs:    req.AssigneeIDs,
		Estimate:       req.Estimate,
		Priority:       domain.TaskPriority(req.Priority),
		Status:         domain.TaskStatus(req.Status),
		DueDate:        req.DueDate,
		RequiresReview: req.RequiresReview,
	}, actorFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Task created successfully", task)
}

// ListMyTasks returns tasks assigned to the caller, filterable by status,
// priority and a search term.
func (h *Handler) ListMyTasks(c *gin.Context) {
	filter := domain.TaskFilter{
		Status:   domain.TaskStatus(c.Query("status")),
		Priority: domain.TaskPriority(c.Query("priority")),
		Search:   c.Query("searchTerm"),
	}

	tasks, err := h.tasks.ListMine(c.Request.Context(), actorFrom(c).ID, filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *Handler) ListProjectTasks(c *gin.Context) {
	projectID, err := parseID(c, "projectID")
	if err != nil {
		h.fail(c, err)
		return
	}

	tasks, err := h.tasks.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *Handler) GetKanbanBoard(c *gin.Context) {
	projectID, err := parseID(c, "projectID")
	if err != nil {
		h.fail(c, err)
		return
	}

	var sprintID *uint
	if v := c.Query("sprintId"); v != "" {
		id, err := parseQueryID(v, "sprintId")
		if err != nil {
			h.fail(c, err)
			return
		}
		sprintID = &id
	}

	board, err := h.tasks.Kanban(c.Request.Context(), projectID, sprintID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Kanban board fetched successfully", board)
}

func (h *Handler) ListSprintTasks(c *gin.Context) {
	sprintID, err := parseID(c, "sprintID")
	if err != nil {
		h.fail(c, err)
		return
	}

	tasks, err := h.tasks.ListBySprint(c.Request.Context(), sprintID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Task fetched successfully", task)
}

type updateTaskRequest struct {
	Title          *string    `json:"title" binding:"omitempty,min=2,max=200"`
	Description    *string    `json:"description"`
	SprintID       *uint      `json:"sprintId"`
	ClearSprint    bool       `json:"clearSprint"`
	AssigneeIDs    []uint     `json:"assignees"`
	SetAssignees   bool       `json:"setAssignees"`
	Estimate       *float64   `json:"estimatedHours" binding:"omitempty,gte=0"`
	Priority       *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate        *time.Time `json:"dueDate"`
	ClearDueDate   bool       `json:"clearDueDate"`
	RequiresReview *bool      `json:"requiresReview"`
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	in := domain.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		SprintID:       req.SprintID,
		ClearSprint:    req.ClearSprint,
		AssigneeIDs:    req.AssigneeIDs,
		SetAssignees:   req.SetAssignees || req.AssigneeIDs != nil,
		Estimate:       req.Estimate,
		DueDate:        req.DueDate,
		ClearDueDate:   req.ClearDueDate,
		RequiresReview: req.RequiresReview,
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		in.Priority = &priority
	}

	task, err := h.tasks.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Task updated successfully", task)
}

type updateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in_progress review done"`
}

func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updateTaskStatusRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.tasks.UpdateStatus(c.Request.Context(), id, domain.TaskStatus(req.Status), actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Task status updated successfully", task)
}

type logTimeRequest struct {
	Hours float64 `json:"hours" binding:"required"`
}

func (h *Handler) LogTime(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req logTimeRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.tasks.LogTime(c.Request.Context(), id, req.Hours)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Time logged successfully", task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Task deleted successfully", nil)
}

type addSubtaskRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
}

func (h *Handler) AddSubtask(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req addSubtaskRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.tasks.AddSubtask(c.Request.Context(), id, req.Title)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Subtask added successfully", task)
}

type updateSubtaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	IsCompleted *bool   `json:"isCompleted"`
}

func (h *Handler) UpdateSubtask(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updateSubtaskRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.tasks.UpdateSubtask(c.Request.Context(), id, c.Param("subtaskID"), domain.UpdateSubtaskInput{
		Title:       req.Title,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Subtask updated successfully", task)
}

func (h *Handler) DeleteSubtask(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.tasks.DeleteSubtask(c.Request.Context(), id, c.Param("subtaskID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Subtask deleted successfully", task)
}
