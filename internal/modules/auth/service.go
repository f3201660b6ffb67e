package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/pricing"
)

// Session is the storefront's database-backed session. It carries the
// remote bearer token plus the denormalized account fields the middleware
// needs on every request.
type Session struct {
	ID         string       `gorm:"primaryKey;type:char(36)"`
	AccountID  int64        `gorm:"not null;index:ix_sessions_account_id"`
	Token      string       `gorm:"type:varchar(512);not null"`
	Email      string       `gorm:"type:varchar(255);not null"`
	FirstName  string       `gorm:"type:varchar(100)"`
	LastName   string       `gorm:"type:varchar(100)"`
	Role       pricing.Role `gorm:"type:varchar(32);not null;default:'retail'"`
	ExpiresAt  time.Time    `gorm:"type:datetime(3);not null"`
	CreatedAt  time.Time    `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time    `gorm:"type:datetime(3);not null"`
	LastSeenAt time.Time    `gorm:"type:datetime(3);not null"`
}

func (Session) TableName() string { return "sessions" }

// Service signs customers in against the accounts service and owns the
// local session lifecycle.
type Service struct {
	api API
	db  *gorm.DB
	ttl time.Duration
	log *slog.Logger
}

func NewService(api API, db *gorm.DB, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{api: api, db: db, ttl: ttl, log: logger}
}

// Login authenticates remotely and creates the local session on success.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	account, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:         uuid.NewString(),
		AccountID:  account.ID,
		Token:      token,
		Email:      account.Email,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		Role:       account.Role,
		ExpiresAt:  time.Now().Add(s.ttl),
		LastSeenAt: time.Now(),
	}
	if sess.Role == "" {
		sess.Role = pricing.RoleRetail
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout always tears down the local session. The remote logout is
// best-effort: a failure is logged and never surfaced.
func (s *Service) Logout(ctx context.Context, sess *Session) error {
	if err := s.db.WithContext(ctx).Delete(&Session{}, "id = ?", sess.ID).Error; err != nil {
		return err
	}
	if err := s.api.Logout(ctx, sess.Token); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "remote_logout_failed",
			slog.Int64("account_id", sess.AccountID),
			slog.Any("err", err),
		)
	}
	return nil
}

// Find loads a live session by id.
func (s *Service) Find(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, time.Now()).
		First(&sess).Error
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Touch refreshes the last-seen stamp.
func (s *Service) Touch(ctx context.Context, id string) {
	if err := s.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", id).
		Update("last_seen_at", time.Now()).Error; err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "session_touch_failed", slog.Any("err", err))
	}
}
