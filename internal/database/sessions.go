package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
)

// CreateSession stores a new login session. An empty ID is filled with a
// random UUID.
func (d *Database) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	session.CreatedAt = dbTime(session.CreatedAt)
	session.ExpiresAt = dbTime(session.ExpiresAt)

	query := d.rebind(`INSERT INTO sessions (id, administrator_id, created_at, expires_at) VALUES (?, ?, ?, ?)`)

	_, err := d.db.ExecContext(ctx, query,
		session.ID, session.AdministratorID, session.CreatedAt, session.ExpiresAt,
	)
	return translateError(err)
}

// GetSession retrieves a session by ID
func (d *Database) GetSession(ctx context.Context, id string) (*models.Session, error) {
	query := d.rebind(`SELECT id, administrator_id, created_at, expires_at FROM sessions WHERE id = ?`)

	var session models.Session
	err := d.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.AdministratorID, &session.CreatedAt, &session.ExpiresAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &session, nil
}

// DeleteSession removes a session. Deleting a missing session is not an error.
func (d *Database) DeleteSession(ctx context.Context, id string) error {
	_, err := d.db.ExecContext(ctx, d.rebind(`DELETE FROM sessions WHERE id = ?`), id)
	return err
}

// DeleteExpiredSessions removes every session that expired at or before now
// and returns how many were removed
func (d *Database) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := d.db.ExecContext(ctx, d.rebind(`DELETE FROM sessions WHERE expires_at <= ?`), dbTime(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
