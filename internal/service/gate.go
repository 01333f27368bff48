package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Effiong06/Agri-Naija-Centre/internal/database"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
)

// sessionGate resolves a session to its administrator. Every management
// operation passes through it before touching the store.
type sessionGate struct {
	db  *database.Database
	now func() time.Time
}

func newSessionGate(db *database.Database) sessionGate {
	return sessionGate{db: db, now: time.Now}
}

// authorize returns the administrator owning a live session. When
// allowRotation is false an administrator who still has to change their
// password gets ErrRotationRequired.
func (g sessionGate) authorize(ctx context.Context, session *models.Session, allowRotation bool) (*models.Administrator, error) {
	if session == nil || session.ID == "" {
		return nil, ErrUnauthenticated
	}

	stored, err := g.db.GetSession(ctx, session.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if stored.AdministratorID != session.AdministratorID || stored.Expired(g.now()) {
		return nil, ErrUnauthenticated
	}

	admin, err := g.db.GetAdministrator(ctx, stored.AdministratorID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load administrator: %w", err)
	}

	if admin.PasswordRotationRequired && !allowRotation {
		return nil, ErrRotationRequired
	}
	return admin, nil
}
