package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/auth"
	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
)

// AdminService is the credential store and the administrator management surface
type AdminService struct {
	db     *database.Database
	cfg    *config.Config
	hasher auth.PasswordHasher
	gate   sessionGate
	logger *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(db *database.Database, cfg *config.Config, hasher auth.PasswordHasher, logger *zap.Logger) *AdminService {
	return &AdminService{
		db:     db,
		cfg:    cfg,
		hasher: hasher,
		gate:   newSessionGate(db),
		logger: logger,
	}
}

// FindByUsername looks up an administrator. A missing account is ErrNotFound.
func (s *AdminService) FindByUsername(ctx context.Context, username string) (*models.Administrator, error) {
	admin, err := s.db.GetAdministratorByUsername(ctx, username)
	if err != nil {
		if err = storeError(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get administrator: %w", err)
	}
	return admin, nil
}

// Verify reports whether plaintext matches the administrator's stored hash
func (s *AdminService) Verify(admin *models.Administrator, plaintext string) bool {
	if admin == nil {
		return false
	}
	return s.hasher.Compare(admin.PasswordHash, plaintext)
}

// SetPassword replaces the administrator's hash and clears the rotation flag
func (s *AdminService) SetPassword(ctx context.Context, admin *models.Administrator, plaintext string) error {
	if plaintext == "" {
		return fieldError("password", "password is required")
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return fieldError("password", err.Error())
	}

	if err := s.db.UpdatePasswordHash(ctx, admin.ID, hash, false); err != nil {
		return storeError(err)
	}

	admin.PasswordHash = hash
	admin.PasswordRotationRequired = false
	return nil
}

// SeedDefault creates the bootstrap administrator when no administrator
// exists. The account must change its password before it can manage
// content. Nil is returned when the store already has administrators.
func (s *AdminService) SeedDefault(ctx context.Context) (*models.Administrator, error) {
	count, err := s.db.CountAdministrators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count administrators: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	password := s.cfg.Bootstrap.Password
	generated := password == ""
	if generated {
		if password, err = randomPassword(); err != nil {
			return nil, fmt.Errorf("failed to generate bootstrap password: %w", err)
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	admin := &models.Administrator{
		Username:                 s.cfg.Bootstrap.Username,
		Email:                    strings.ToLower(strings.TrimSpace(s.cfg.Bootstrap.Email)),
		PasswordHash:             hash,
		PasswordRotationRequired: true,
	}
	if err := s.db.CreateAdministrator(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create bootstrap administrator: %w", storeError(err))
	}

	fields := []zap.Field{zap.String("username", admin.Username)}
	if generated {
		fields = append(fields, zap.String("password", password))
	}
	s.logger.Warn("Bootstrap administrator created; password change required at first login", fields...)

	return admin, nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ManagementIndex summarizes the management surface for the signed-in administrator
type ManagementIndex struct {
	Administrator      *models.Administrator `json:"administrator"`
	RotationRequired   bool                  `json:"password_rotation_required"`
	ArticleCount       int                   `json:"article_count"`
	AdministratorCount int                   `json:"administrator_count"`
	Categories         []string              `json:"categories"`
}

// Index returns the management index. It stays reachable while a password
// change is pending.
func (s *AdminService) Index(ctx context.Context, session *models.Session) (*ManagementIndex, error) {
	admin, err := s.gate.authorize(ctx, session, true)
	if err != nil {
		return nil, err
	}

	articles, err := s.db.CountArticles(ctx, database.ArticleFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}
	admins, err := s.db.CountAdministrators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count administrators: %w", err)
	}

	return &ManagementIndex{
		Administrator:      admin,
		RotationRequired:   admin.PasswordRotationRequired,
		ArticleCount:       articles,
		AdministratorCount: admins,
		Categories:         s.cfg.Content.Categories,
	}, nil
}

// ChangePassword rotates the signed-in administrator's own password. The
// current password must match and the new one must differ from it.
func (s *AdminService) ChangePassword(ctx context.Context, session *models.Session, current, next string) error {
	admin, err := s.gate.authorize(ctx, session, true)
	if err != nil {
		return err
	}

	if !s.Verify(admin, current) {
		return fieldError("current_password", "current password is incorrect")
	}
	if next == "" {
		return fieldError("new_password", "new password is required")
	}
	if next == current {
		return fieldError("new_password", "new password must differ from the current one")
	}

	if err := s.SetPassword(ctx, admin, next); err != nil {
		return err
	}
	s.logger.Info("Administrator password changed", zap.String("username", admin.Username))
	return nil
}

// ListAdministrators returns every administrator
func (s *AdminService) ListAdministrators(ctx context.Context, session *models.Session) ([]*models.Administrator, error) {
	if _, err := s.gate.authorize(ctx, session, false); err != nil {
		return nil, err
	}

	admins, err := s.db.ListAdministrators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list administrators: %w", err)
	}
	if admins == nil {
		admins = []*models.Administrator{}
	}
	return admins, nil
}

// GetAdministrator returns one administrator
func (s *AdminService) GetAdministrator(ctx context.Context, session *models.Session, id int64) (*models.Administrator, error) {
	if _, err := s.gate.authorize(ctx, session, false); err != nil {
		return nil, err
	}

	admin, err := s.db.GetAdministrator(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return admin, nil
}

// CreateAdministrator adds an administrator account
func (s *AdminService) CreateAdministrator(ctx context.Context, session *models.Session, in AdministratorInput) (*models.Administrator, error) {
	actor, err := s.gate.authorize(ctx, session, false)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(true); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fieldError("password", err.Error())
	}

	admin := &models.Administrator{
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		CreatedAt:    s.gate.now(),
	}
	if err := s.db.CreateAdministrator(ctx, admin); err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("Administrator created",
		zap.String("username", admin.Username),
		zap.String("created_by", actor.Username),
	)
	return admin, nil
}

// UpdateAdministrator edits an administrator. A blank password keeps the
// existing hash.
func (s *AdminService) UpdateAdministrator(ctx context.Context, session *models.Session, id int64, in AdministratorInput) (*models.Administrator, error) {
	actor, err := s.gate.authorize(ctx, session, false)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(false); err != nil {
		return nil, err
	}

	admin, err := s.db.GetAdministrator(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	admin.Username = in.Username
	admin.Email = strings.ToLower(in.Email)
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fieldError("password", err.Error())
		}
		admin.PasswordHash = hash
	}

	if err := s.db.UpdateAdministrator(ctx, admin); err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("Administrator updated",
		zap.Int64("administrator_id", admin.ID),
		zap.String("updated_by", actor.Username),
	)
	return admin, nil
}
