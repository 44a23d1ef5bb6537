package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/csssensei/quiply/backend/internal/response"
	"github.com/csssensei/quiply/backend/internal/services"
)

type UserHandler struct {
	auth  *services.AuthService
	quips *services.QuipService
}

func NewUserHandler(auth *services.AuthService, quips *services.QuipService) *UserHandler {
	return &UserHandler{auth: auth, quips: quips}
}

// GetUserProfile returns a user's public profile with aggregate stats and
// their top three quips by up count.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	user, err := h.auth.GetUserByUsername(c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	totalQuips, totalUps, totalReposts, top, err := h.quips.UserProfileStats(user.ID, 3)
	if err != nil {
		response.Error(c, err)
		return
	}

	topQuips := make([]gin.H, 0, len(top))
	for _, stat := range top {
		topQuips = append(topQuips, gin.H{
			"id":             stat.Quip.ID,
			"content":        stat.Quip.Content,
			"quip_ups_count": stat.Ups,
		})
	}

	response.OK(c, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"bio":        user.Bio,
		"created_at": user.CreatedAt,
		"stats": gin.H{
			"total_quips":    totalQuips,
			"total_quip_ups": totalUps,
			"total_reposts":  totalReposts,
		},
		"top_quips": topQuips,
	}, "")
}

// GetUserQuips returns a user's quips, newest first.
func (h *UserHandler) GetUserQuips(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	quips, err := h.quips.GetUserQuips(c.Param("username"), page, services.DefaultPerPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, quipListJSON(h.quips, quips), "")
}

// GetUserReposts returns the quips a user reposted, newest repost first.
func (h *UserHandler) GetUserReposts(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	quips, err := h.quips.GetUserReposts(c.Param("username"), page, services.DefaultPerPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, quipListJSON(h.quips, quips), "")
}
