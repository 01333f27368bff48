package database

import (
	"context"
	"time"

	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
)

const administratorColumns = `id, username, email, password_hash, password_rotation_required, created_at`

// CreateAdministrator inserts a new administrator and assigns its ID
func (d *Database) CreateAdministrator(ctx context.Context, admin *models.Administrator) error {
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	admin.CreatedAt = dbTime(admin.CreatedAt)

	query := d.rebind(`INSERT INTO administrators (username, email, password_hash, password_rotation_required, created_at)
	          VALUES (?, ?, ?, ?, ?) RETURNING id`)

	err := d.db.QueryRowContext(ctx, query,
		admin.Username, admin.Email, admin.PasswordHash, admin.PasswordRotationRequired, admin.CreatedAt,
	).Scan(&admin.ID)
	return translateError(err)
}

// GetAdministrator retrieves an administrator by ID
func (d *Database) GetAdministrator(ctx context.Context, id int64) (*models.Administrator, error) {
	query := d.rebind(`SELECT ` + administratorColumns + ` FROM administrators WHERE id = ?`)
	return d.scanAdministrator(ctx, query, id)
}

// GetAdministratorByUsername retrieves an administrator by username
func (d *Database) GetAdministratorByUsername(ctx context.Context, username string) (*models.Administrator, error) {
	query := d.rebind(`SELECT ` + administratorColumns + ` FROM administrators WHERE username = ?`)
	return d.scanAdministrator(ctx, query, username)
}

func (d *Database) scanAdministrator(ctx context.Context, query string, arg any) (*models.Administrator, error) {
	var admin models.Administrator
	err := d.db.QueryRowContext(ctx, query, arg).Scan(
		&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash,
		&admin.PasswordRotationRequired, &admin.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &admin, nil
}

// ListAdministrators retrieves all administrators ordered by ID
func (d *Database) ListAdministrators(ctx context.Context) ([]*models.Administrator, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+administratorColumns+` FROM administrators ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []*models.Administrator
	for rows.Next() {
		var admin models.Administrator
		if err := rows.Scan(
			&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash,
			&admin.PasswordRotationRequired, &admin.CreatedAt,
		); err != nil {
			return nil, err
		}
		admins = append(admins, &admin)
	}

	return admins, rows.Err()
}

// UpdateAdministrator replaces the mutable fields of an administrator in a
// single statement
func (d *Database) UpdateAdministrator(ctx context.Context, admin *models.Administrator) error {
	query := d.rebind(`UPDATE administrators
	          SET username = ?, email = ?, password_hash = ?, password_rotation_required = ?
	          WHERE id = ?`)

	res, err := d.db.ExecContext(ctx, query,
		admin.Username, admin.Email, admin.PasswordHash, admin.PasswordRotationRequired, admin.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// UpdatePasswordHash replaces an administrator's password hash and rotation flag
func (d *Database) UpdatePasswordHash(ctx context.Context, id int64, hash string, rotationRequired bool) error {
	query := d.rebind(`UPDATE administrators SET password_hash = ?, password_rotation_required = ? WHERE id = ?`)

	res, err := d.db.ExecContext(ctx, query, hash, rotationRequired, id)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// CountAdministrators returns the number of administrators
func (d *Database) CountAdministrators(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM administrators`).Scan(&count)
	return count, err
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func requireAffected(res rowsAffecter) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
