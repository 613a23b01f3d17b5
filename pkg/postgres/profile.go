package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/gramconnect/pkg/db"
)

// InsertProfile inserts a profile and fills in its created_at
func (d *DB) InsertProfile(ctx context.Context, profile *db.Profile) error {
	err := d.pool.QueryRow(ctx, `
		INSERT INTO profiles (id, name, email, phone, location, user_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, profile.ID, profile.Name, profile.Email, profile.Phone, profile.Location, profile.UserType).Scan(&profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", mapError(err))
	}
	return nil
}

// GetProfile retrieves a profile by ID
func (d *DB) GetProfile(ctx context.Context, id string) (*db.Profile, error) {
	var p db.Profile
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, location, user_type, created_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Location, &p.UserType, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", mapError(err))
	}
	return &p, nil
}
