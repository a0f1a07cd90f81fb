package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"funnel/contexts/identity-access/session-service/domain/entities"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) UserForToken(ctx context.Context, token string, now time.Time) (entities.User, bool, error) {
	var session sessionModel
	err := r.db.WithContext(ctx).
		Where("token = ?", strings.TrimSpace(token)).
		First(&session).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	if !session.ExpiresAt.After(now.UTC()) {
		return entities.User{}, false, nil
	}

	var user userModel
	err = r.db.WithContext(ctx).
		Where("id = ?", session.UserID).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, err
	}
	return user.toEntity(), true, nil
}

type userModel struct {
	ID            string     `gorm:"column:id;primaryKey"`
	Email         string     `gorm:"column:email"`
	Name          string     `gorm:"column:name"`
	Image         *string    `gorm:"column:image"`
	EmailVerified *time.Time `gorm:"column:email_verified"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func (m userModel) toEntity() entities.User {
	image := ""
	if m.Image != nil {
		image = *m.Image
	}
	return entities.User{
		UserID:        m.ID,
		Email:         m.Email,
		Name:          m.Name,
		Image:         image,
		EmailVerified: m.EmailVerified,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type sessionModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id"`
	Token     string    `gorm:"column:token"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string {
	return "sessions"
}
