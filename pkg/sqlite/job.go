package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jakechorley/gramconnect/pkg/db"
)

// GetJobs retrieves all jobs with their farmer's name and phone, newest first
func (d *DB) GetJobs(ctx context.Context) ([]db.JobWithFarmer, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT j.id, j.farmer_id, j.title, j.description, j.duration, j.pay_rate, j.time_slot,
		       j.skills_required, j.location, j.status, j.created_at, p.name, p.phone
		FROM jobs j
		LEFT JOIN profiles p ON p.id = j.farmer_id
		ORDER BY j.created_at DESC, j.rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []db.JobWithFarmer
	for rows.Next() {
		var j db.JobWithFarmer
		var farmerName, farmerPhone sql.NullString
		extra := []any{&farmerName, &farmerPhone}
		if err := scanJob(rows, &j.Job, extra...); err != nil {
			return nil, err
		}
		j.FarmerName = stringPtr(farmerName)
		j.FarmerPhone = stringPtr(farmerPhone)
		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}

// GetJob retrieves a job by ID
func (d *DB) GetJob(ctx context.Context, id string) (*db.Job, error) {
	row := d.conn.QueryRowContext(ctx, `
		SELECT id, farmer_id, title, description, duration, pay_rate, time_slot,
		       skills_required, location, status, created_at
		FROM jobs
		WHERE id = ?
	`, id)

	var j db.Job
	if err := scanJob(row, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// InsertJob inserts a job and fills in its created_at
func (d *DB) InsertJob(ctx context.Context, job *db.Job) error {
	ts := d.timestamp()
	_, err := d.conn.ExecContext(ctx, `
		INSERT INTO jobs (id, farmer_id, title, description, duration, pay_rate, time_slot,
		                  skills_required, location, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.FarmerID, job.Title, job.Description, job.Duration, job.PayRate, job.TimeSlot,
		job.SkillsRequired, job.Location, job.Status, ts)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", mapError(err))
	}
	job.CreatedAt, err = parseTimestamp(ts)
	return err
}

func scanJob(row scanner, j *db.Job, extra ...any) error {
	var description, duration, timeSlot, skills, location, status sql.NullString
	var payRate sql.NullInt64
	var createdAt string

	dest := []any{
		&j.ID, &j.FarmerID, &j.Title, &description, &duration, &payRate, &timeSlot,
		&skills, &location, &status, &createdAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return fmt.Errorf("failed to scan job: %w", mapError(err))
	}

	j.Description = stringPtr(description)
	j.Duration = stringPtr(duration)
	j.TimeSlot = stringPtr(timeSlot)
	j.SkillsRequired = stringPtr(skills)
	j.Location = stringPtr(location)
	j.Status = stringPtr(status)
	if payRate.Valid {
		v := int(payRate.Int64)
		j.PayRate = &v
	}

	var err error
	j.CreatedAt, err = parseTimestamp(createdAt)
	return err
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
