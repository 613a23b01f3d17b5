package db

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")
)

// AuthProvider defines the identity provider operations. Both return the auth user ID.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
}

// ProfileStore defines the interface for profile database operations
type ProfileStore interface {
	InsertProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, id string) (*Profile, error)
}

// JobStore defines the interface for job database operations
type JobStore interface {
	// GetJobs returns every job with its farmer's details, newest first
	GetJobs(ctx context.Context) ([]JobWithFarmer, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	InsertJob(ctx context.Context, job *Job) error
}

// ApplicationStore defines the interface for job application database operations
type ApplicationStore interface {
	// GetApplicationsForFarmer returns applications on jobs owned by the farmer, newest first
	GetApplicationsForFarmer(ctx context.Context, farmerID string) ([]ApplicationDetail, error)
	// GetApplicationsForWorker returns applications made by the worker, newest first
	GetApplicationsForWorker(ctx context.Context, workerID string) ([]ApplicationDetail, error)
	GetApplication(ctx context.Context, id string) (*ApplicationDetail, error)
	FindApplication(ctx context.Context, jobID, workerID string) (*JobApplication, error)
	InsertApplication(ctx context.Context, application *JobApplication) error
	UpdateApplicationStatus(ctx context.Context, id, status string) (*JobApplication, error)
}

// Database defines the interface for all database operations.
// Both the SQLite-backed sqlite.DB and postgres.DB implement this interface.
type Database interface {
	AuthProvider
	ProfileStore
	JobStore
	ApplicationStore
	Ping(ctx context.Context) error
	Close()
}
