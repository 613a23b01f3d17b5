package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/db"
)

const msgAlreadyApplied = "Already applied"

// ApplicationReadStore is the subset of db.Database used to list applications
type ApplicationReadStore interface {
	GetProfile(ctx context.Context, id string) (*db.Profile, error)
	GetApplicationsForFarmer(ctx context.Context, farmerID string) ([]db.ApplicationDetail, error)
	GetApplicationsForWorker(ctx context.Context, workerID string) ([]db.ApplicationDetail, error)
}

// ReviewStore is the subset of db.Database used to approve or reject an application
type ReviewStore interface {
	GetApplication(ctx context.Context, id string) (*db.ApplicationDetail, error)
	UpdateApplicationStatus(ctx context.Context, id, status string) (*db.JobApplication, error)
}

// ApplyStore is the subset of db.Database used to apply for a job
type ApplyStore interface {
	GetJob(ctx context.Context, id string) (*db.Job, error)
	FindApplication(ctx context.Context, jobID, workerID string) (*db.JobApplication, error)
	InsertApplication(ctx context.Context, application *db.JobApplication) error
}

// ListApplications returns the applications visible to the requester, newest first.
// Farmers see applications on jobs they own; workers see their own applications.
func ListApplications(ctx context.Context, store ApplicationReadStore, logger *zap.Logger, requesterID string) ([]model.Application, error) {
	if requesterID == "" {
		return nil, authorizationError(msgMustBeLoggedIn)
	}

	profile, err := store.GetProfile(ctx, requesterID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, authorizationError(msgUnauthorized)
		}
		return nil, upstreamError(err)
	}

	var rows []db.ApplicationDetail
	switch model.UserType(profile.UserType) {
	case model.UserTypeFarmer:
		rows, err = store.GetApplicationsForFarmer(ctx, requesterID)
	case model.UserTypeWorker:
		rows, err = store.GetApplicationsForWorker(ctx, requesterID)
	default:
		return nil, authorizationError(msgUnauthorized)
	}
	if err != nil {
		logger.Error("Failed to fetch applications", zap.String("requester_id", requesterID), zap.Error(err))
		return nil, upstreamError(err)
	}

	applications := make([]model.Application, 0, len(rows))
	for i := range rows {
		applications = append(applications, applicationFromRow(&rows[i]))
	}

	logger.Debug("Fetched applications",
		zap.String("requester_id", requesterID),
		zap.String("user_type", profile.UserType),
		zap.Int("count", len(applications)))
	return applications, nil
}

// UpdateApplicationStatus approves or rejects an application on a job owned by farmerID.
// Ownership is checked regardless of the application's current status.
func UpdateApplicationStatus(ctx context.Context, store ReviewStore, notifier Notifier, logger *zap.Logger, farmerID, applicationID string, req model.UpdateStatusRequest) (*db.JobApplication, error) {
	if farmerID == "" {
		return nil, authorizationError(msgMustBeLoggedIn)
	}
	if err := validateRequest(req, map[string]string{"Status": "Invalid status"}); err != nil {
		return nil, err
	}

	detail, err := store.GetApplication(ctx, applicationID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, upstreamError(err)
	}
	if detail == nil || detail.JobFarmerID != farmerID {
		logger.Warn("Rejected status update from non-owner",
			zap.String("application_id", applicationID),
			zap.String("requester_id", farmerID))
		return nil, authorizationError(msgUnauthorized)
	}

	updated, err := store.UpdateApplicationStatus(ctx, applicationID, string(req.Status))
	if err != nil {
		logger.Error("Failed to update application", zap.String("application_id", applicationID), zap.Error(err))
		return nil, upstreamError(err)
	}

	logger.Info("Application reviewed",
		zap.String("application_id", applicationID),
		zap.String("status", string(req.Status)))

	notifier.ApplicationReviewed(ctx, detail, req.Status)
	return updated, nil
}

// Apply records a pending application from workerID for a job.
// A second application for the same (job, worker) pair is rejected.
func Apply(ctx context.Context, store ApplyStore, notifier Notifier, logger *zap.Logger, workerID string, req model.ApplyRequest) error {
	if workerID == "" {
		return authorizationError(msgMustBeLoggedIn)
	}
	if err := validateRequest(req, map[string]string{"JobID": "Job ID is required"}); err != nil {
		return err
	}

	existing, err := store.FindApplication(ctx, req.JobID, workerID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return upstreamError(err)
	}
	if existing != nil {
		logger.Debug("Duplicate application", zap.String("job_id", req.JobID), zap.String("worker_id", workerID))
		return validationError(msgAlreadyApplied)
	}

	job, err := store.GetJob(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return validationError("Job not found")
		}
		return upstreamError(err)
	}

	status := string(model.StatusPending)
	application := &db.JobApplication{
		ID:       uuid.New().String(),
		JobID:    req.JobID,
		WorkerID: workerID,
		Status:   &status,
	}
	if err := store.InsertApplication(ctx, application); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return validationError(msgAlreadyApplied)
		}
		logger.Error("Failed to insert application", zap.String("job_id", req.JobID), zap.Error(err))
		return upstreamError(err)
	}

	logger.Info("Application submitted",
		zap.String("application_id", application.ID),
		zap.String("job_id", req.JobID),
		zap.String("worker_id", workerID))

	notifier.ApplicationSubmitted(ctx, job, workerID)
	return nil
}
