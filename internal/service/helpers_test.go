package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Effiong06/Agri-Naija-Centre/internal/auth"
	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
	"github.com/Effiong06/Agri-Naija-Centre/internal/notify"
)

// setupTestDB creates a test database with migrations
func setupTestDB(t *testing.T) (*database.Database, *config.Config) {
	t.Helper()

	cfg := config.Default()
	cfg.Database.SQLite.Path = t.TempDir() + "/test.db"
	cfg.Session.Secret = "test-secret-12345"
	cfg.Session.Issuer = "agri-naija-test"
	cfg.Session.Expiration = time.Hour
	cfg.Bootstrap.Password = "bootstrap-pass"
	cfg.Mail.Recipients = []string{"editor@agri-naija.com"}
	cfg.Mail.Timeout = time.Second

	db, err := database.New(cfg)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(context.Background()), "Failed to run migrations")

	return db, cfg
}

type testServices struct {
	db       *database.Database
	cfg      *config.Config
	admins   *AdminService
	auth     *AuthService
	articles *ArticleService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db, cfg := setupTestDB(t)
	logger := zap.NewNop()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	admins := NewAdminService(db, cfg, hasher, logger)

	return &testServices{
		db:       db,
		cfg:      cfg,
		admins:   admins,
		auth:     NewAuthService(db, cfg, admins, logger),
		articles: NewArticleService(db, cfg, logger),
	}
}

// createAdmin stores an administrator with a known password
func (ts *testServices) createAdmin(t *testing.T, username, password string) *models.Administrator {
	t.Helper()
	hash, err := ts.admins.hasher.Hash(password)
	require.NoError(t, err)

	admin := &models.Administrator{
		Username:     username,
		Email:        username + "@agri-naija.com",
		PasswordHash: hash,
	}
	require.NoError(t, ts.db.CreateAdministrator(context.Background(), admin))
	return admin
}

// login creates an administrator and returns a live session for it
func (ts *testServices) login(t *testing.T, username string) *models.Session {
	t.Helper()
	ts.createAdmin(t, username, "pw-"+username)
	session, err := ts.auth.Login(context.Background(), username, "pw-"+username)
	require.NoError(t, err)
	return session
}

// MockDispatcher is a mock implementation of notify.Dispatcher for testing
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, msg notify.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
