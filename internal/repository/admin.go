package repository

import (
	"context"

	"github.com/gocql/gocql"

	"packline_back_end/internal/models"
)

// ScyllaAdminRepository : comptes admin dans le keyspace admins,
// alimentés manuellement (pas d'inscription publique).
type ScyllaAdminRepository struct {
	session *gocql.Session
}

func NewScyllaAdminRepository(session *gocql.Session) *ScyllaAdminRepository {
	return &ScyllaAdminRepository{session: session}
}

func (r *ScyllaAdminRepository) Get(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser

	err := r.session.Query(
		`SELECT email, name, password_hash, created_at FROM admin_users WHERE email = ?`,
		email,
	).WithContext(ctx).Scan(&u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *ScyllaAdminRepository) SetPasswordHash(ctx context.Context, email, hash string) error {
	return r.session.Query(
		`UPDATE admin_users SET password_hash = ? WHERE email = ?`, hash, email,
	).WithContext(ctx).Exec()
}
