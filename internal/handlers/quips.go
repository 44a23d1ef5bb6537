package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/models"
	"github.com/csssensei/quiply/backend/internal/response"
	"github.com/csssensei/quiply/backend/internal/services"
)

type QuipHandler struct {
	quips *services.QuipService
}

func NewQuipHandler(quips *services.QuipService) *QuipHandler {
	return &QuipHandler{quips: quips}
}

// quipJSON shapes a quip for list/detail responses, counts included. Counts
// are always computed live from the vote/comment/repost tables.
func quipJSON(quips *services.QuipService, q models.Quip) gin.H {
	return gin.H{
		"id":             q.ID,
		"user_id":        q.UserID,
		"username":       q.User.Username,
		"content":        q.Content,
		"definition":     q.Definition,
		"usage_examples": q.UsageExamples,
		"created_at":     q.CreatedAt,
		"quip_ups_count": quips.CountUps(q.ID),
		"comments_count": quips.CountComments(q.ID),
		"reposts_count":  quips.CountReposts(q.ID),
	}
}

func quipListJSON(quips *services.QuipService, list []models.Quip) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, q := range list {
		out = append(out, quipJSON(quips, q))
	}
	return out
}

// GetFeed returns the paginated reverse-chronological feed.
func (h *QuipHandler) GetFeed(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	sortBy := c.DefaultQuery("sort", "smart")

	quips, err := h.quips.GetFeed(sortBy, page, services.DefaultPerPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, quipListJSON(h.quips, quips), "")
}

// CreateQuip creates a new quip (requires authentication).
func (h *QuipHandler) CreateQuip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}

	var input models.CreateQuipRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	quip, err := h.quips.Create(userID, input.Content, input.Definition, input.UsageExamples)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"id":             quip.ID,
		"user_id":        quip.UserID,
		"username":       quip.User.Username,
		"content":        quip.Content,
		"definition":     quip.Definition,
		"usage_examples": quip.UsageExamples,
		"created_at":     quip.CreatedAt,
	}, "Quip created successfully")
}

// GetQuip returns a single quip by ID
func (h *QuipHandler) GetQuip(c *gin.Context) {
	quipID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	quip, found, err := h.quips.GetByID(quipID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		response.Error(c, apperr.NotFound("Quip not found"))
		return
	}

	response.OK(c, quipJSON(h.quips, *quip), "")
}

// DeleteQuip deletes a quip (owner only).
func (h *QuipHandler) DeleteQuip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}
	quipID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.quips.Delete(userID, quipID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Quip deleted successfully")
}

func (h *QuipHandler) AddUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}
	quipID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.quips.AddUp(userID, quipID); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, nil, "Upvoted successfully")
}

func (h *QuipHandler) RemoveUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}
	quipID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.quips.RemoveUp(userID, quipID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Upvote removed successfully")
}

func (h *QuipHandler) AddRepost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}
	quipID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.quips.AddRepost(userID, quipID); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, nil, "Reposted successfully")
}

func (h *QuipHandler) RemoveRepost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}
	quipID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.quips.RemoveRepost(userID, quipID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Repost removed successfully")
}
