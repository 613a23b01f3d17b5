package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jakechorley/gramconnect/pkg/auth"
	"github.com/jakechorley/gramconnect/pkg/db"
)

// SignUp creates an auth user and returns its ID
func (d *DB) SignUp(ctx context.Context, email, password string) (string, error) {
	email = auth.NormalizeEmail(email)
	if err := auth.ValidateSignUp(email, password); err != nil {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = d.pool.Exec(ctx, `
		INSERT INTO auth_users (id, email, password_hash)
		VALUES ($1, $2, $3)
	`, id, email, hash)
	if err != nil {
		if errors.Is(mapError(err), db.ErrDuplicate) {
			return "", auth.ErrUserExists
		}
		return "", fmt.Errorf("failed to insert auth user: %w", err)
	}

	return id, nil
}

// SignIn verifies credentials and returns the auth user ID
func (d *DB) SignIn(ctx context.Context, email, password string) (string, error) {
	var id, hash string
	err := d.pool.QueryRow(ctx, `
		SELECT id, password_hash FROM auth_users WHERE email = $1
	`, auth.NormalizeEmail(email)).Scan(&id, &hash)
	if err != nil {
		if errors.Is(mapError(err), db.ErrNotFound) {
			return "", auth.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to query auth user: %w", err)
	}

	if !auth.CheckPassword(hash, password) {
		return "", auth.ErrInvalidCredentials
	}

	return id, nil
}
