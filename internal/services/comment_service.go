package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/models"
	"github.com/csssensei/quiply/backend/internal/validate"
)

type CommentService struct {
	db     *gorm.DB
	logger *log.Logger
}

func NewCommentService(db *gorm.DB, logger *log.Logger) *CommentService {
	return &CommentService{db: db, logger: logger}
}

// Create adds a comment under a quip. A reply's parent must exist and belong
// to the same quip; nesting depth is otherwise unbounded.
func (s *CommentService) Create(userID, quipID int, content string, parentID *int) (*models.Comment, error) {
	if errs := validate.CommentInput(content); len(errs) > 0 {
		return nil, apperr.ValidationDetails("Validation failed", errs.Details())
	}

	comment := models.Comment{
		UserID:          userID,
		QuipID:          quipID,
		ParentCommentID: parentID,
		Content:         strings.TrimSpace(content),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireQuip(tx, quipID); err != nil {
			return err
		}
		if parentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, *parentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Validation("Invalid parent comment")
				}
				return fmt.Errorf("lookup parent: %w", err)
			}
			if parent.QuipID != quipID {
				return apperr.Validation("Invalid parent comment")
			}
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, s.wrap("create comment", err)
	}

	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, s.wrap("create comment: reload", err)
	}
	return &comment, nil
}

// GetQuipComments returns the quip's top-level comments, newest first.
// Replies are fetched separately via Replies when serializing the thread.
func (s *CommentService) GetQuipComments(quipID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("User").
		Where("quip_id = ? AND parent_comment_id IS NULL", quipID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, s.wrap("get quip comments", err)
	}
	return comments, nil
}

// Replies returns a comment's direct replies in insertion order.
func (s *CommentService) Replies(commentID int) ([]models.Comment, error) {
	var replies []models.Comment
	err := s.db.Preload("User").
		Where("parent_comment_id = ?", commentID).
		Order("id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, s.wrap("get replies", err)
	}
	return replies, nil
}

// Delete removes a comment, its replies (recursively) and every affected
// comment's ups, in one transaction. Orphaned replies would be unreachable
// through the thread, so they go with the parent.
func (s *CommentService) Delete(userID, commentID int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Comment not found")
			}
			return fmt.Errorf("lookup comment: %w", err)
		}
		if comment.UserID != userID {
			return apperr.Authorization("Not authorized to delete this comment")
		}

		ids := []int{commentID}
		frontier := []int{commentID}
		for len(frontier) > 0 {
			var next []int
			if err := tx.Model(&models.Comment{}).
				Where("parent_comment_id IN ?", frontier).
				Pluck("id", &next).Error; err != nil {
				return fmt.Errorf("collect replies: %w", err)
			}
			ids = append(ids, next...)
			frontier = next
		}

		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentUp{}).Error; err != nil {
			return fmt.Errorf("delete comment ups: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		return nil
	})
	return s.wrapNil("delete comment", err)
}

func (s *CommentService) AddUp(userID, commentID int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Comment not found")
			}
			return fmt.Errorf("lookup comment: %w", err)
		}
		var existing models.CommentUp
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		if err == nil {
			return apperr.Conflict("Already upvoted")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup comment up: %w", err)
		}
		if err := tx.Create(&models.CommentUp{UserID: userID, CommentID: commentID}).Error; err != nil {
			if isDuplicateKey(err) {
				return apperr.Conflict("Already upvoted")
			}
			return fmt.Errorf("create comment up: %w", err)
		}
		return nil
	})
	return s.wrapNil("add comment up", err)
}

func (s *CommentService) RemoveUp(userID, commentID int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&models.CommentUp{})
		if res.Error != nil {
			return fmt.Errorf("delete comment up: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("Not upvoted")
		}
		return nil
	})
	return s.wrapNil("remove comment up", err)
}

func (s *CommentService) CountUps(commentID int) int64 {
	var n int64
	s.db.Model(&models.CommentUp{}).Where("comment_id = ?", commentID).Count(&n)
	return n
}

func (s *CommentService) wrap(op string, err error) error {
	return wrapErr(s.logger, op, err)
}

func (s *CommentService) wrapNil(op string, err error) error {
	if err == nil {
		return nil
	}
	return wrapErr(s.logger, op, err)
}
