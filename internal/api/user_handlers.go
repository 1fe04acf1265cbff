package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/pagination"
)

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile fetched successfully", user)
}

type updateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
}

// adminUpdateUserRequest additionally covers activation state, which a
// user cannot change on their own profile.
type adminUpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	IsActive   *bool   `json:"isActive"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), actorFrom(c).ID, domain.UpdateUserInput{
		Name:       req.Name,
		Department: req.Department,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile updated successfully", user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	err := h.users.ChangePassword(c.Request.Context(), actorFrom(c).ID, domain.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *Handler) GetTeamMembers(c *gin.Context) {
	users, err := h.users.TeamMembers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Team members fetched successfully", users)
}

func (h *Handler) ListUsers(c *gin.Context) {
	filter := domain.UserFilter{
		Search:     c.Query("searchTerm"),
		Role:       domain.Role(c.Query("role")),
		Department: c.Query("department"),
	}
	if v := c.Query("isActive"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			h.fail(c, domain.BadRequest("invalid isActive, use true or false"))
			return
		}
		filter.IsActive = &active
	}

	page := pageFromQuery(c)
	users, total, err := h.users.List(c.Request.Context(), filter, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondPage(c, http.StatusOK, "Users fetched successfully", users, pagination.NewMeta(page, total))
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User fetched successfully", user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req adminUpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, domain.UpdateUserInput{
		Name:       req.Name,
		Department: req.Department,
		IsActive:   req.IsActive,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User updated successfully", user)
}

type updateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager member"`
}

func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updateUserRoleRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	user, err := h.users.UpdateRole(c.Request.Context(), id, domain.Role(req.Role))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User role updated successfully", user)
}

// DeleteUser removes the account permanently. The normal flow is
// deactivation through UpdateUser, which keeps the account for history
// on tasks and comments.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *Handler) GetUserStats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User stats fetched successfully", stats)
}
