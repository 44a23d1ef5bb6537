package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/models"
	"github.com/csssensei/quiply/backend/internal/response"
	"github.com/csssensei/quiply/backend/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
	quips    *services.QuipService
}

func NewCommentHandler(comments *services.CommentService, quips *services.QuipService) *CommentHandler {
	return &CommentHandler{comments: comments, quips: quips}
}

// commentJSON serializes a comment with its live up count and its replies,
// recursively.
func (h *CommentHandler) commentJSON(comment models.Comment) (gin.H, error) {
	replies, err := h.comments.Replies(comment.ID)
	if err != nil {
		return nil, err
	}

	repliesJSON := make([]gin.H, 0, len(replies))
	for _, reply := range replies {
		replyJSON, err := h.commentJSON(reply)
		if err != nil {
			return nil, err
		}
		repliesJSON = append(repliesJSON, replyJSON)
	}

	return gin.H{
		"id":                comment.ID,
		"user_id":           comment.UserID,
		"username":          comment.User.Username,
		"content":           comment.Content,
		"created_at":        comment.CreatedAt,
		"comment_ups_count": h.comments.CountUps(comment.ID),
		"replies":           repliesJSON,
	}, nil
}

// GetComments returns a quip's top-level comments with nested replies.
func (h *CommentHandler) GetComments(c *gin.Context) {
	quipID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	comments, err := h.comments.GetQuipComments(quipID)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := make([]gin.H, 0, len(comments))
	for _, comment := range comments {
		commentJSON, err := h.commentJSON(comment)
		if err != nil {
			response.Error(c, err)
			return
		}
		data = append(data, commentJSON)
	}

	response.OK(c, data, "")
}

// CreateComment creates a comment or threaded reply on a quip.
func (h *CommentHandler) CreateComment(c *gin.Context) {
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

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	comment, err := h.comments.Create(userID, quipID, input.Content, input.ParentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"id":                comment.ID,
		"user_id":           comment.UserID,
		"quip_id":           comment.QuipID,
		"parent_comment_id": comment.ParentCommentID,
		"content":           comment.Content,
		"created_at":        comment.CreatedAt,
	}, "Comment created successfully")
}

// DeleteComment deletes a comment and its replies (owner only).
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}
	commentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.comments.Delete(userID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Comment deleted successfully")
}

func (h *CommentHandler) AddUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}
	commentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.comments.AddUp(userID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, nil, "Upvoted successfully")
}

func (h *CommentHandler) RemoveUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}
	commentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.comments.RemoveUp(userID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Upvote removed successfully")
}
