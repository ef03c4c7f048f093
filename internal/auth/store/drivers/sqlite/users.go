package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/likestem/authd/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, password_hash, email, contact_number,
	mfa_enabled, mfa_code, reset_token, reset_token_expires_at,
	created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) GetUserByResetToken(ctx context.Context, token string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token = ?`, token)
}

func (r *usersRepo) getUser(ctx context.Context, query string, arg any) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)

	var (
		u          domain.User
		mfaEnabled int64
		mfaCode    sql.NullString
		resetTok   sql.NullString
		resetExp   sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.ContactNumber,
		&mfaEnabled, &mfaCode, &resetTok, &resetExp,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.MFAEnabled = mfaEnabled != 0
	u.MFACode = mapNullStringPtr(mfaCode)
	u.ResetToken = mapNullStringPtr(resetTok)
	u.ResetTokenExpiresAt = mapNullTimePtr(resetExp)

	roles, err := r.userRoles(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	u.Roles = roles

	return u, nil
}

func (r *usersRepo) userRoles(ctx context.Context, userID string) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.name, r.created_at, r.updated_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ?
		ORDER BY r.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, email, contact_number,
			mfa_enabled, mfa_code, reset_token, reset_token_expires_at,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.Email, u.ContactNumber,
		boolToInt(u.MFAEnabled), mapOptionalString(u.MFACode),
		mapOptionalString(u.ResetToken), mapOptionalTime(u.ResetTokenExpiresAt),
		now, now,
	)
	if err != nil {
		return mapConstraint(err)
	}

	for _, role := range u.Roles {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`,
			u.ID, role.ID,
		)
		if err != nil {
			return mapConstraint(err)
		}
	}

	return nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return r.updateUser(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	)
}

func (r *usersRepo) SetMFACode(ctx context.Context, userID string, code *string) error {
	return r.updateUser(ctx,
		`UPDATE users SET mfa_code = ?, updated_at = ? WHERE id = ?`,
		mapOptionalString(code), time.Now().UTC(), userID,
	)
}

func (r *usersRepo) SetMFAEnabled(ctx context.Context, userID string, enabled bool) error {
	return r.updateUser(ctx,
		`UPDATE users SET mfa_enabled = ?, updated_at = ? WHERE id = ?`,
		boolToInt(enabled), time.Now().UTC(), userID,
	)
}

func (r *usersRepo) SetResetToken(ctx context.Context, userID string, token *string, expiresAt *time.Time) error {
	return r.updateUser(ctx,
		`UPDATE users SET reset_token = ?, reset_token_expires_at = ?, updated_at = ? WHERE id = ?`,
		mapOptionalString(token), mapOptionalTime(expiresAt), time.Now().UTC(), userID,
	)
}

func (r *usersRepo) updateUser(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapConstraint(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *usersRepo) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET reset_token = NULL, reset_token_expires_at = NULL, updated_at = ?
		WHERE reset_token IS NOT NULL AND reset_token_expires_at < ?`,
		now.UTC(), now.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
