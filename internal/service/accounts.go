package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovasilenko/shop_api/internal/events"
	"github.com/ovasilenko/shop_api/internal/hash"
	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/models"
	"github.com/ovasilenko/shop_api/internal/repo"
	"github.com/ovasilenko/shop_api/internal/tokens"
)

// AccountService backs both identity kinds. User and Admin rows live in
// separate tables and never mix; the only shared piece is the token format.
type AccountService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Producer  *events.Producer
}

type ProfileUpdate struct {
	Name     *string
	Password *string
}

func (s *AccountService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "user_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", "user_events", "error", err)
	}
}

func (s *AccountService) RegisterUser(ctx context.Context, email, password string, name *string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "account.register_user")

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		l.Warn("register_failed", "status", 409, "reason", "email already used")
		return nil, "", ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{Email: email, PasswordHash: pwHash, Name: name}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, "", err
	}

	token, err := tokens.Sign(user.ID, user.Email, tokens.RoleUser, s.JWTSecret)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userID": user.ID.String(),
		"email":  user.Email,
	})

	return &user, token, nil
}

func (s *AccountService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "account.login_user")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 404, "reason", "unknown email")
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return nil, "", ErrUnauthorized
	}

	token, err := tokens.Sign(user.ID, user.Email, tokens.RoleUser, s.JWTSecret)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, user.ID.String(), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID.String(),
	})

	return user, token, nil
}

func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) UpdateUser(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = upd.Name
	}
	if upd.Password != nil {
		pwHash, err := hash.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = pwHash
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) RegisterAdmin(ctx context.Context, email, password string, name *string) (*models.Admin, string, error) {
	l := logging.FromContext(ctx).With("svc", "account.register_admin")

	if _, err := s.Repo.GetAdminByEmail(ctx, email); err == nil {
		l.Warn("register_failed", "status", 409, "reason", "email already used")
		return nil, "", ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	admin := models.Admin{Email: email, PasswordHash: pwHash, Name: name}
	if err := s.Repo.CreateAdmin(ctx, &admin); err != nil {
		return nil, "", err
	}

	token, err := tokens.Sign(admin.ID, admin.Email, tokens.RoleAdmin, s.JWTSecret)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, admin.ID.String(), map[string]any{
		"type":    "admin_registered",
		"adminID": admin.ID.String(),
		"email":   admin.Email,
	})

	return &admin, token, nil
}

func (s *AccountService) LoginAdmin(ctx context.Context, email, password string) (*models.Admin, string, error) {
	l := logging.FromContext(ctx).With("svc", "account.login_admin")

	admin, err := s.Repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 404, "reason", "unknown email")
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	if !hash.CheckPassword(admin.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return nil, "", ErrUnauthorized
	}

	token, err := tokens.Sign(admin.ID, admin.Email, tokens.RoleAdmin, s.JWTSecret)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, admin.ID.String(), map[string]any{
		"type":    "admin_logged_in",
		"adminID": admin.ID.String(),
	})

	return admin, token, nil
}

func (s *AccountService) GetAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	admin, err := s.Repo.GetAdmin(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *AccountService) UpdateAdmin(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*models.Admin, error) {
	admin, err := s.GetAdmin(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		admin.Name = upd.Name
	}
	if upd.Password != nil {
		pwHash, err := hash.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = pwHash
	}

	if err := s.Repo.SaveAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
