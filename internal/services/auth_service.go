package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/models"
	"github.com/csssensei/quiply/backend/internal/validate"
)

type AuthService struct {
	db     *gorm.DB
	logger *log.Logger
	secret []byte
	ttl    time.Duration
}

func NewAuthService(db *gorm.DB, logger *log.Logger, secret string, ttl time.Duration) *AuthService {
	return &AuthService{db: db, logger: logger, secret: []byte(secret), ttl: ttl}
}

// Register creates a user with a bcrypt-hashed password. The plaintext is
// never stored.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if errs := validate.Registration(username, email, password); len(errs) > 0 {
		return nil, apperr.ValidationDetails("Validation failed", errs.Details())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Printf("register: hash password: %v", err)
		return nil, apperr.Internal("Failed to register user")
	}

	user := models.User{Username: username, Email: email, PasswordHash: string(hash)}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("username = ?", username).First(&existing).Error; err == nil {
			return apperr.Conflict("Username already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup username: %w", err)
		}
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			return apperr.Conflict("Email already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup email: %w", err)
		}
		if err := tx.Create(&user).Error; err != nil {
			if isDuplicateKey(err) {
				return apperr.Conflict("Username or email already exists")
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.wrap("register", err)
	}

	return &user, nil
}

// Login verifies credentials and issues a bearer token. The error is the
// same for an unknown username and a wrong password.
func (s *AuthService) Login(username, password string) (string, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.Authentication("Invalid credentials")
		}
		return "", s.wrap("login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Authentication("Invalid credentials")
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.Itoa(user.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Printf("login: sign token: %v", err)
		return "", apperr.Internal("Failed to generate token")
	}

	return signed, nil
}

// ParseToken verifies signature and expiry and returns the user id encoded
// as the token's subject.
func (s *AuthService) ParseToken(tokenString string) (int, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperr.Authentication("Invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, apperr.Authentication("Invalid or expired token")
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, apperr.Authentication("Invalid or expired token")
	}
	return userID, nil
}

func (s *AuthService) GetUserByID(id int) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, s.wrap("get user", err)
	}
	return &user, nil
}

func (s *AuthService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, s.wrap("get user", err)
	}
	return &user, nil
}

// UpdateUser sets the bio, the only mutable user field.
func (s *AuthService) UpdateUser(id int, bio string) (*models.User, error) {
	if errs := validate.Bio(bio); len(errs) > 0 {
		return nil, apperr.ValidationDetails("Validation failed", errs.Details())
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("User not found")
			}
			return fmt.Errorf("lookup user: %w", err)
		}
		user.Bio = strings.TrimSpace(bio)
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, s.wrap("update user", err)
	}
	return &user, nil
}

// DeleteUser removes a user and everything they own: their quips (with each
// quip's full cascade), their comments and the reply threads under them, and
// every up and repost they cast. No route exposes this yet; it backs account
// removal tooling.
func (s *AuthService) DeleteUser(id int) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("User not found")
			}
			return fmt.Errorf("lookup user: %w", err)
		}

		// Quips authored by the user take their comments, the ups on those
		// comments, and their own ups and reposts with them.
		var quipIDs []int
		if err := tx.Model(&models.Quip{}).Where("user_id = ?", id).Pluck("id", &quipIDs).Error; err != nil {
			return fmt.Errorf("collect quips: %w", err)
		}
		if len(quipIDs) > 0 {
			commentIDs := tx.Model(&models.Comment{}).Select("id").Where("quip_id IN ?", quipIDs)
			if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentUp{}).Error; err != nil {
				return fmt.Errorf("delete comment ups: %w", err)
			}
			if err := tx.Where("quip_id IN ?", quipIDs).Delete(&models.Comment{}).Error; err != nil {
				return fmt.Errorf("delete comments: %w", err)
			}
			if err := tx.Where("quip_id IN ?", quipIDs).Delete(&models.QuipUp{}).Error; err != nil {
				return fmt.Errorf("delete quip ups: %w", err)
			}
			if err := tx.Where("quip_id IN ?", quipIDs).Delete(&models.Repost{}).Error; err != nil {
				return fmt.Errorf("delete reposts: %w", err)
			}
			if err := tx.Where("id IN ?", quipIDs).Delete(&models.Quip{}).Error; err != nil {
				return fmt.Errorf("delete quips: %w", err)
			}
		}

		// Comments the user left on other quips go too, along with the reply
		// threads hanging under them.
		var frontier []int
		if err := tx.Model(&models.Comment{}).Where("user_id = ?", id).Pluck("id", &frontier).Error; err != nil {
			return fmt.Errorf("collect comments: %w", err)
		}
		ids := frontier
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
		if len(ids) > 0 {
			if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentUp{}).Error; err != nil {
				return fmt.Errorf("delete comment ups: %w", err)
			}
			if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
				return fmt.Errorf("delete comments: %w", err)
			}
		}

		// Votes and reposts the user cast elsewhere.
		if err := tx.Where("user_id = ?", id).Delete(&models.QuipUp{}).Error; err != nil {
			return fmt.Errorf("delete cast quip ups: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.CommentUp{}).Error; err != nil {
			return fmt.Errorf("delete cast comment ups: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Repost{}).Error; err != nil {
			return fmt.Errorf("delete cast reposts: %w", err)
		}

		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	return s.wrap("delete user", err)
}

func (s *AuthService) wrap(op string, err error) error {
	return wrapErr(s.logger, op, err)
}
