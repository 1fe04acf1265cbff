package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

type createCommentRequest struct {
	Content         string `json:"content" binding:"required,min=1,max=2000"`
	ParentCommentID *uint  `json:"parentCommentId"`
}

func (h *Handler) CreateComment(c *gin.Context) {
	taskID, err := parseID(c, "taskID")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req createCommentRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), taskID, domain.CreateCommentInput{
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}, actorFrom(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Comment created successfully", comment)
}

func (h *Handler) ListTaskComments(c *gin.Context) {
	taskID, err := parseID(c, "taskID")
	if err != nil {
		h.fail(c, err)
		return
	}

	comments, err := h.comments.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Comments fetched successfully", comments)
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

func (h *Handler) UpdateComment(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updateCommentRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), id, req.Content, actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Comment updated successfully", comment)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.comments.Delete(c.Request.Context(), id, actorFrom(c)); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Comment deleted successfully", nil)
}
