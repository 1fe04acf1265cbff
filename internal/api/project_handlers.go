package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/pagination"
)

type createProjectRequest struct {
	Title         string     `json:"title" binding:"required,min=2,max=200"`
	Client        string     `json:"client" binding:"required,min=2,max=200"`
	Description   string     `json:"description"`
	StartDate     time.Time  `json:"startDate" binding:"required"`
	EndDate       *time.Time `json:"endDate"`
	Budget        *float64   `json:"budget" binding:"omitempty,gte=0"`
	Status        string     `json:"status" binding:"omitempty,oneof=planned active completed archived"`
	TeamMemberIDs []uint     `json:"teamMembers"`
	ManagerIDs    []uint     `json:"managers"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), domain.CreateProjectInput{
		Title:         req.Title,
		Client:        req.Client,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Budget:        req.Budget,
		Status:        domain.ProjectStatus(req.Status),
		TeamMemberIDs: req.TeamMemberIDs,
		ManagerIDs:    req.ManagerIDs,
	}, actorFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Project created successfully", project)
}

func projectFilterFromQuery(c *gin.Context) (domain.ProjectFilter, error) {
	filter := domain.ProjectFilter{
		Search: c.Query("searchTerm"),
		Status: domain.ProjectStatus(c.Query("status")),
		Client: c.Query("client"),
	}
	from, err := parseDateQuery(c.Query("startDateFrom"))
	if err != nil {
		return filter, err
	}
	to, err := parseDateQuery(c.Query("startDateTo"))
	if err != nil {
		return filter, err
	}
	filter.StartDateFrom = from
	filter.StartDateTo = to
	return filter, nil
}

func (h *Handler) ListProjects(c *gin.Context) {
	filter, err := projectFilterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	page := pageFromQuery(c)
	projects, total, err := h.projects.List(c.Request.Context(), filter, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondPage(c, http.StatusOK, "Projects fetched successfully", projects, pagination.NewMeta(page, total))
}

// ListMyProjects returns projects where the caller is a team member or manager.
func (h *Handler) ListMyProjects(c *gin.Context) {
	filter, err := projectFilterFromQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	page := pageFromQuery(c)
	projects, total, err := h.projects.ListMine(c.Request.Context(), actorFrom(c).ID, filter, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondPage(c, http.StatusOK, "Projects fetched successfully", projects, pagination.NewMeta(page, total))
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.projects.GetByIDOrSlug(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Project fetched successfully", project)
}

func (h *Handler) GetProjectStats(c *gin.Context) {
	project, stats, err := h.projects.Stats(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Project stats fetched successfully", gin.H{
		"project": project,
		"stats":   stats,
	})
}

type updateProjectRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=2,max=200"`
	Client      *string    `json:"client" binding:"omitempty,min=2,max=200"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Budget      *float64   `json:"budget" binding:"omitempty,gte=0"`
	Status      *string    `json:"status" binding:"omitempty,oneof=planned active completed archived"`
}

func (h *Handler) UpdateProject(c *gin.Context) {
	id, err := parseQueryID(c.Param("idOrSlug"), "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	in := domain.UpdateProjectInput{
		Title:       req.Title,
		Client:      req.Client,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		in.Status = &status
	}

	project, err := h.projects.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Project updated successfully", project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id, err := parseQueryID(c.Param("idOrSlug"), "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Project deleted successfully", nil)
}

type teamMembersRequest struct {
	UserIDs []uint `json:"userIds" binding:"required,min=1"`
}

func (h *Handler) AddTeamMembers(c *gin.Context) {
	id, err := parseQueryID(c.Param("idOrSlug"), "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req teamMembersRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	project, err := h.projects.AddTeamMembers(c.Request.Context(), id, req.UserIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Team members added successfully", project)
}

func (h *Handler) RemoveTeamMembers(c *gin.Context) {
	id, err := parseQueryID(c.Param("idOrSlug"), "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req teamMembersRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	project, err := h.projects.RemoveTeamMembers(c.Request.Context(), id, req.UserIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Team members removed successfully", project)
}
