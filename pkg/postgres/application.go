package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

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
	rows, err := d.pool.Query(ctx, applicationDetailSelect+`
		WHERE j.farmer_id = $1
		ORDER BY a.created_at DESC
	`, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query farmer applications: %w", err)
	}
	return collectApplicationDetails(rows)
}

// GetApplicationsForWorker retrieves applications made by the worker, newest first
func (d *DB) GetApplicationsForWorker(ctx context.Context, workerID string) ([]db.ApplicationDetail, error) {
	rows, err := d.pool.Query(ctx, applicationDetailSelect+`
		WHERE a.worker_id = $1
		ORDER BY a.created_at DESC
	`, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker applications: %w", err)
	}
	return collectApplicationDetails(rows)
}

// GetApplication retrieves one application with its parent job's owner
func (d *DB) GetApplication(ctx context.Context, id string) (*db.ApplicationDetail, error) {
	rows, err := d.pool.Query(ctx, applicationDetailSelect+`
		WHERE a.id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	details, err := collectApplicationDetails(rows)
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
	var a db.JobApplication
	err := d.pool.QueryRow(ctx, `
		SELECT id, job_id, worker_id, status, created_at
		FROM job_applications
		WHERE job_id = $1 AND worker_id = $2
	`, jobID, workerID).Scan(&a.ID, &a.JobID, &a.WorkerID, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", mapError(err))
	}
	return &a, nil
}

// InsertApplication inserts an application and fills in its created_at
func (d *DB) InsertApplication(ctx context.Context, application *db.JobApplication) error {
	err := d.pool.QueryRow(ctx, `
		INSERT INTO job_applications (id, job_id, worker_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, application.ID, application.JobID, application.WorkerID, application.Status).Scan(&application.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", mapError(err))
	}
	return nil
}

// UpdateApplicationStatus sets an application's status and returns the updated row
func (d *DB) UpdateApplicationStatus(ctx context.Context, id, status string) (*db.JobApplication, error) {
	var a db.JobApplication
	err := d.pool.QueryRow(ctx, `
		UPDATE job_applications SET status = $2 WHERE id = $1
		RETURNING id, job_id, worker_id, status, created_at
	`, id, status).Scan(&a.ID, &a.JobID, &a.WorkerID, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", mapError(err))
	}
	return &a, nil
}

func collectApplicationDetails(rows pgx.Rows) ([]db.ApplicationDetail, error) {
	defer rows.Close()

	var details []db.ApplicationDetail
	for rows.Next() {
		var a db.ApplicationDetail
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.WorkerID, &a.Status, &a.CreatedAt,
			&a.JobFarmerID, &a.JobTitle, &a.WorkerName, &a.WorkerPhone, &a.WorkerLocation, &a.WorkerEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		details = append(details, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return details, nil
}
