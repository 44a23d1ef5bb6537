package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/models"
	"github.com/csssensei/quiply/backend/internal/validate"
)

type QuipService struct {
	db     *gorm.DB
	logger *log.Logger
}

func NewQuipService(db *gorm.DB, logger *log.Logger) *QuipService {
	return &QuipService{db: db, logger: logger}
}

func (s *QuipService) Create(userID int, content, definition, usageExamples string) (*models.Quip, error) {
	if errs := validate.QuipInput(content, definition, usageExamples); len(errs) > 0 {
		return nil, apperr.ValidationDetails("Validation failed", errs.Details())
	}

	quip := models.Quip{
		UserID:        userID,
		Content:       strings.TrimSpace(content),
		Definition:    trimToNil(definition),
		UsageExamples: trimToNil(usageExamples),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&quip).Error
	})
	if err != nil {
		return nil, s.wrap("create quip", err)
	}

	if err := s.db.Preload("User").First(&quip, quip.ID).Error; err != nil {
		return nil, s.wrap("create quip: reload", err)
	}
	return &quip, nil
}

// GetByID returns (nil, false, nil) for a missing quip; absence is not an
// error here, the caller decides.
func (s *QuipService) GetByID(id int) (*models.Quip, bool, error) {
	var quip models.Quip
	if err := s.db.Preload("User").First(&quip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, s.wrap("get quip", err)
	}
	return &quip, true, nil
}

// Delete removes a quip and everything hanging off it: the ups on its
// comments, the comments, its own ups, and its reposts, in one transaction.
func (s *QuipService) Delete(userID, quipID int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var quip models.Quip
		if err := tx.First(&quip, quipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Quip not found")
			}
			return fmt.Errorf("lookup quip: %w", err)
		}
		if quip.UserID != userID {
			return apperr.Authorization("Not authorized to delete this quip")
		}

		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("quip_id = ?", quipID)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentUp{}).Error; err != nil {
			return fmt.Errorf("delete comment ups: %w", err)
		}
		if err := tx.Where("quip_id = ?", quipID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("quip_id = ?", quipID).Delete(&models.QuipUp{}).Error; err != nil {
			return fmt.Errorf("delete quip ups: %w", err)
		}
		if err := tx.Where("quip_id = ?", quipID).Delete(&models.Repost{}).Error; err != nil {
			return fmt.Errorf("delete reposts: %w", err)
		}
		if err := tx.Delete(&models.Quip{}, quipID).Error; err != nil {
			return fmt.Errorf("delete quip: %w", err)
		}
		return nil
	})
	return s.wrapNil("delete quip", err)
}

// GetFeed returns quips newest first. The sort parameter is accepted for
// API compatibility; every value yields the same ordering.
func (s *QuipService) GetFeed(sortBy string, page, perPage int) ([]models.Quip, error) {
	_ = sortBy // only reverse-chronological exists

	var quips []models.Quip
	err := s.db.Preload("User").
		Order("created_at DESC").
		Offset(offsetFor(page, perPage)).
		Limit(perPage).
		Find(&quips).Error
	if err != nil {
		return nil, s.wrap("get feed", err)
	}
	return quips, nil
}

func (s *QuipService) AddUp(userID, quipID int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireQuip(tx, quipID); err != nil {
			return err
		}
		var existing models.QuipUp
		err := tx.Where("user_id = ? AND quip_id = ?", userID, quipID).First(&existing).Error
		if err == nil {
			return apperr.Conflict("Already upvoted")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup quip up: %w", err)
		}
		if err := tx.Create(&models.QuipUp{UserID: userID, QuipID: quipID}).Error; err != nil {
			if isDuplicateKey(err) {
				return apperr.Conflict("Already upvoted")
			}
			return fmt.Errorf("create quip up: %w", err)
		}
		return nil
	})
	return s.wrapNil("add quip up", err)
}

func (s *QuipService) RemoveUp(userID, quipID int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND quip_id = ?", userID, quipID).Delete(&models.QuipUp{})
		if res.Error != nil {
			return fmt.Errorf("delete quip up: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("Not upvoted")
		}
		return nil
	})
	return s.wrapNil("remove quip up", err)
}

func (s *QuipService) AddRepost(userID, quipID int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireQuip(tx, quipID); err != nil {
			return err
		}
		var existing models.Repost
		err := tx.Where("user_id = ? AND quip_id = ?", userID, quipID).First(&existing).Error
		if err == nil {
			return apperr.Conflict("Already reposted")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup repost: %w", err)
		}
		if err := tx.Create(&models.Repost{UserID: userID, QuipID: quipID}).Error; err != nil {
			if isDuplicateKey(err) {
				return apperr.Conflict("Already reposted")
			}
			return fmt.Errorf("create repost: %w", err)
		}
		return nil
	})
	return s.wrapNil("add repost", err)
}

func (s *QuipService) RemoveRepost(userID, quipID int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND quip_id = ?", userID, quipID).Delete(&models.Repost{})
		if res.Error != nil {
			return fmt.Errorf("delete repost: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("Not reposted")
		}
		return nil
	})
	return s.wrapNil("remove repost", err)
}

func (s *QuipService) GetUserQuips(username string, page, perPage int) ([]models.Quip, error) {
	user, err := s.userByUsername(username)
	if err != nil {
		return nil, err
	}

	var quips []models.Quip
	err = s.db.Preload("User").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Offset(offsetFor(page, perPage)).
		Limit(perPage).
		Find(&quips).Error
	if err != nil {
		return nil, s.wrap("get user quips", err)
	}
	return quips, nil
}

// GetUserReposts returns the quips a user reposted, newest repost first.
func (s *QuipService) GetUserReposts(username string, page, perPage int) ([]models.Quip, error) {
	user, err := s.userByUsername(username)
	if err != nil {
		return nil, err
	}

	var quips []models.Quip
	err = s.db.Model(&models.Quip{}).
		Joins("JOIN reposts ON reposts.quip_id = quips.id").
		Where("reposts.user_id = ?", user.ID).
		Order("reposts.created_at DESC").
		Offset(offsetFor(page, perPage)).
		Limit(perPage).
		Preload("User").
		Find(&quips).Error
	if err != nil {
		return nil, s.wrap("get user reposts", err)
	}
	return quips, nil
}

// Counts are derived live from the association tables, never stored.

func (s *QuipService) CountUps(quipID int) int64 {
	var n int64
	s.db.Model(&models.QuipUp{}).Where("quip_id = ?", quipID).Count(&n)
	return n
}

func (s *QuipService) CountComments(quipID int) int64 {
	var n int64
	s.db.Model(&models.Comment{}).Where("quip_id = ?", quipID).Count(&n)
	return n
}

func (s *QuipService) CountReposts(quipID int) int64 {
	var n int64
	s.db.Model(&models.Repost{}).Where("quip_id = ?", quipID).Count(&n)
	return n
}

// QuipStat pairs a quip with its live up count, for profile summaries.
type QuipStat struct {
	Quip models.Quip
	Ups  int64
}

// UserProfileStats aggregates a user's totals and their top quips by up
// count.
func (s *QuipService) UserProfileStats(userID, topN int) (totalQuips, totalUps, totalReposts int64, top []QuipStat, err error) {
	var quips []models.Quip
	if err = s.db.Where("user_id = ?", userID).Find(&quips).Error; err != nil {
		err = s.wrap("profile stats", err)
		return
	}

	totalQuips = int64(len(quips))
	stats := make([]QuipStat, 0, len(quips))
	for _, q := range quips {
		ups := s.CountUps(q.ID)
		totalUps += ups
		totalReposts += s.CountReposts(q.ID)
		stats = append(stats, QuipStat{Quip: q, Ups: ups})
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Ups > stats[j].Ups })
	if len(stats) > topN {
		stats = stats[:topN]
	}
	top = stats
	return
}

func (s *QuipService) userByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, s.wrap("lookup user", err)
	}
	return &user, nil
}

// trimToNil maps a blank optional field to NULL so responses can distinguish
// "unset" from an empty string.
func trimToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func requireQuip(tx *gorm.DB, quipID int) error {
	var quip models.Quip
	if err := tx.First(&quip, quipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Quip not found")
		}
		return fmt.Errorf("lookup quip: %w", err)
	}
	return nil
}

func (s *QuipService) wrap(op string, err error) error {
	return wrapErr(s.logger, op, err)
}

func (s *QuipService) wrapNil(op string, err error) error {
	if err == nil {
		return nil
	}
	return wrapErr(s.logger, op, err)
}
