package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/auth"
	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
	"github.com/Effiong06/Agri-Naija-Centre/internal/metrics"
)

// AuthService handles login sessions
type AuthService struct {
	db     *database.Database
	cfg    *config.Config
	admins *AdminService
	gate   sessionGate
	logger *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(db *database.Database, cfg *config.Config, admins *AdminService, logger *zap.Logger) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		admins: admins,
		gate:   newSessionGate(db),
		logger: logger,
	}
}

// Login verifies credentials and establishes a session. Unknown usernames and
// wrong passwords both return ErrInvalidCredentials after a full hash
// comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrNotFound):
		s.admins.Verify(&models.Administrator{PasswordHash: s.dummy()}, password)
		metrics.ObserveLogin(false)
		s.logger.Info("Login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	}

	if !s.admins.Verify(admin, password) {
		metrics.ObserveLogin(false)
		s.logger.Info("Login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	now := s.gate.now()
	session := &models.Session{
		AdministratorID: admin.ID,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.cfg.Session.Expiration),
	}
	if err := s.db.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	metrics.ObserveLogin(true)
	s.logger.Info("Administrator logged in",
		zap.String("username", admin.Username),
		zap.Int64("administrator_id", admin.ID),
	)
	return session, nil
}

// dummy returns a hash used to keep the cost of unknown-user logins equal
// to that of real ones
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.admins.hasher.Hash("agri-naija-dummy-password")
		if err != nil {
			s.logger.Error("Failed to prepare dummy hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// RequireAuthenticated returns the administrator owning a valid session. Nil,
// unknown, expired, logged-out and orphaned sessions yield ErrUnauthenticated.
func (s *AuthService) RequireAuthenticated(ctx context.Context, session *models.Session) (*models.Administrator, error) {
	return s.gate.authorize(ctx, session, true)
}

// Logout ends a session. Ending a missing or nil session is not an error.
func (s *AuthService) Logout(ctx context.Context, session *models.Session) error {
	if session == nil {
		return nil
	}
	if err := s.db.DeleteSession(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("Administrator logged out", zap.Int64("administrator_id", session.AdministratorID))
	return nil
}

// IssueToken signs the cookie value for a session
func (s *AuthService) IssueToken(session *models.Session) (string, error) {
	return auth.GenerateSessionToken(session, s.cfg.Session.Secret, s.cfg.Session.Issuer)
}

// SessionFromToken decodes a cookie value. Invalid or expired tokens yield
// nil, the anonymous session.
func (s *AuthService) SessionFromToken(token string) *models.Session {
	if token == "" {
		return nil
	}
	session, err := auth.ParseSessionToken(token, s.cfg.Session.Secret, s.cfg.Session.Issuer)
	if err != nil {
		s.logger.Debug("Ignoring session cookie", zap.Error(err))
		return nil
	}
	return session
}

// CleanupExpired removes sessions past their expiry
func (s *AuthService) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.db.DeleteExpiredSessions(ctx, s.gate.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	if n > 0 {
		s.logger.Debug("Expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}
