package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/pagination"
)

// Handler holds the services the HTTP layer delegates to.
type Handler struct {
	auth     domain.AuthService
	users    domain.UserService
	projects domain.ProjectService
	sprints  domain.SprintService
	tasks    domain.TaskService
	comments domain.CommentService
	reports  domain.ReportService
	dev      bool
}

func NewHandler(
	auth domain.AuthService,
	users domain.UserService,
	projects domain.ProjectService,
	sprints domain.SprintService,
	tasks domain.TaskService,
	comments domain.CommentService,
	reports domain.ReportService,
	dev bool,
) *Handler {
	return &Handler{
		auth:     auth,
		users:    users,
		projects: projects,
		sprints:  sprints,
		tasks:    tasks,
		comments: comments,
		reports:  reports,
		dev:      dev,
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	writeError(c, err, h.dev)
}

// parseID reads a uint path parameter, mapping garbage to a 400.
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, domain.BadRequest("invalid " + name)
	}
	return uint(id), nil
}

// parseQueryID is parseID for query string values.
func parseQueryID(value, name string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, domain.BadRequest("invalid " + name)
	}
	return uint(id), nil
}

func pageFromQuery(c *gin.Context) pagination.Params {
	return pagination.Parse(
		c.Query("page"),
		c.Query("limit"),
		c.Query("sortBy"),
		c.Query("sortOrder"),
	)
}

// parseDateQuery accepts a calendar date or a full RFC 3339 timestamp.
func parseDateQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, domain.BadRequest("invalid date, use YYYY-MM-DD or RFC 3339")
	}
	return &t, nil
}
