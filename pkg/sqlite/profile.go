package sqlite

import (
	"context"
	"fmt"

	"github.com/jakechorley/gramconnect/pkg/db"
)

// InsertProfile inserts a profile and fills in its created_at
func (d *DB) InsertProfile(ctx context.Context, profile *db.Profile) error {
	ts := d.timestamp()
	_, err := d.conn.ExecContext(ctx, `
		INSERT INTO profiles (id, name, email, phone, location, user_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, profile.ID, profile.Name, profile.Email, profile.Phone, profile.Location, profile.UserType, ts)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", mapError(err))
	}
	profile.CreatedAt, err = parseTimestamp(ts)
	return err
}

// GetProfile retrieves a profile by ID
func (d *DB) GetProfile(ctx context.Context, id string) (*db.Profile, error) {
	var p db.Profile
	var createdAt string
	err := d.conn.QueryRowContext(ctx, `
		SELECT id, name, email, phone, location, user_type, created_at
		FROM profiles
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Location, &p.UserType, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", mapError(err))
	}
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	return &p, nil
}
