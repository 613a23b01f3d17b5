package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/gramconnect/pkg/db"
)

// GetJobs retrieves all jobs with their farmer's name and phone, newest first
func (d *DB) GetJobs(ctx context.Context) ([]db.JobWithFarmer, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT j.id, j.farmer_id, j.title, j.description, j.duration, j.pay_rate, j.time_slot,
		       j.skills_required, j.location, j.status, j.created_at, p.name, p.phone
		FROM jobs j
		LEFT JOIN profiles p ON p.id = j.farmer_id
		ORDER BY j.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []db.JobWithFarmer
	for rows.Next() {
		var j db.JobWithFarmer
		if err := rows.Scan(
			&j.ID, &j.FarmerID, &j.Title, &j.Description, &j.Duration, &j.PayRate, &j.TimeSlot,
			&j.SkillsRequired, &j.Location, &j.Status, &j.CreatedAt, &j.FarmerName, &j.FarmerPhone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}

// GetJob retrieves a job by ID
func (d *DB) GetJob(ctx context.Context, id string) (*db.Job, error) {
	var j db.Job
	err := d.pool.QueryRow(ctx, `
		SELECT id, farmer_id, title, description, duration, pay_rate, time_slot,
		       skills_required, location, status, created_at
		FROM jobs
		WHERE id = $1
	`, id).Scan(
		&j.ID, &j.FarmerID, &j.Title, &j.Description, &j.Duration, &j.PayRate, &j.TimeSlot,
		&j.SkillsRequired, &j.Location, &j.Status, &j.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", mapError(err))
	}
	return &j, nil
}

// InsertJob inserts a job and fills in its created_at
func (d *DB) InsertJob(ctx context.Context, job *db.Job) error {
	err := d.pool.QueryRow(ctx, `
		INSERT INTO jobs (id, farmer_id, title, description, duration, pay_rate, time_slot,
		                  skills_required, location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`, job.ID, job.FarmerID, job.Title, job.Description, job.Duration, job.PayRate, job.TimeSlot,
		job.SkillsRequired, job.Location, job.Status).Scan(&job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", mapError(err))
	}
	return nil
}
