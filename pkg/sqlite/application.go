package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jakechorley/gramconnect/pkg/db"
)

const applicationDetailSelect = `
	SELECT a.id, a.job_id, a.worker_id, a.status, a.created_at,
	       j.farmer_id, j.title, p.name, p.phone, p.location, p.email
	FROM job_applications a
	INNER JOIN jobs j ON j.id = a.job_id
	LEFT JOIN profiles p ON p.id = a.worker_id
`

// GetApplicationsForFarmer retrieves applications on jobs owned by the farmer, newest first
func (d *DB) GetApplicationsForFarmer(ctx context.Context, farmerID string) ([]db.ApplicationDetail, error) {
	return d.queryApplicationDetails(ctx, applicationDetailSelect+`
		WHERE j.farmer_id = ?
		ORDER BY a.created_at DESC, a.rowid DESC
	`, farmerID)
}

// GetApplicationsForWorker retrieves applications made by the worker, newest first
func (d *DB) GetApplicationsForWorker(ctx context.Context, workerID string) ([]db.ApplicationDetail, error) {
	return d.queryApplicationDetails(ctx, applicationDetailSelect+`
		WHERE a.worker_id = ?
		ORDER BY a.created_at DESC, a.rowid DESC
	`, workerID)
}

// GetApplication retrieves one application with its parent job's owner
func (d *DB) GetApplication(ctx context.Context, id string) (*db.ApplicationDetail, error) {
	details, err := d.queryApplicationDetails(ctx, applicationDetailSelect+`
		WHERE a.id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("failed to get application: %w", db.ErrNotFound)
	}
	return &details[0], nil
}

// FindApplication retrieves the application for a (job, worker) pair
func (d *DB) FindApplication(ctx context.Context, jobID, workerID string) (*db.JobApplication, error) {
	row := d.conn.QueryRowContext(ctx, `
		SELECT id, job_id, worker_id, status, created_at
		FROM job_applications
		WHERE job_id = ? AND worker_id = ?
	`, jobID, workerID)

	var a db.JobApplication
	if err := scanApplication(row, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertApplication inserts an application and fills in its created_at
func (d *DB) InsertApplication(ctx context.Context, application *db.JobApplication) error {
	ts := d.timestamp()
	_, err := d.conn.ExecContext(ctx, `
		INSERT INTO job_applications (id, job_id, worker_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, application.ID, application.JobID, application.WorkerID, application.Status, ts)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", mapError(err))
	}
	application.CreatedAt, err = parseTimestamp(ts)
	return err
}

// UpdateApplicationStatus sets an application's status and returns the updated row
func (d *DB) UpdateApplicationStatus(ctx context.Context, id, status string) (*db.JobApplication, error) {
	row := d.conn.QueryRowContext(ctx, `
		UPDATE job_applications SET status = ? WHERE id = ?
		RETURNING id, job_id, worker_id, status, created_at
	`, status, id)

	var a db.JobApplication
	if err := scanApplication(row, &a); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return &a, nil
}

func (d *DB) queryApplicationDetails(ctx context.Context, query string, args ...any) ([]db.ApplicationDetail, error) {
	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var details []db.ApplicationDetail
	for rows.Next() {
		var a db.ApplicationDetail
		var jobTitle, name, phone, location, email sql.NullString
		if err := scanApplication(rows, &a.JobApplication, &a.JobFarmerID, &jobTitle, &name, &phone, &location, &email); err != nil {
			return nil, err
		}
		a.JobTitle = stringPtr(jobTitle)
		a.WorkerName = stringPtr(name)
		a.WorkerPhone = stringPtr(phone)
		a.WorkerLocation = stringPtr(location)
		a.WorkerEmail = stringPtr(email)
		details = append(details, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return details, nil
}

func scanApplication(row scanner, a *db.JobApplication, extra ...any) error {
	var status sql.NullString
	var createdAt string

	dest := []any{&a.ID, &a.JobID, &a.WorkerID, &status, &createdAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return fmt.Errorf("failed to scan application: %w", mapError(err))
	}

	a.Status = stringPtr(status)

	var err error
	a.CreatedAt, err = parseTimestamp(createdAt)
	return err
}
