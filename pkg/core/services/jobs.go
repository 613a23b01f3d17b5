package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/db"
)

// PostJobStore is the subset of db.Database used to post a job
type PostJobStore interface {
	db.ProfileStore
	InsertJob(ctx context.Context, job *db.Job) error
}

// ListJobs returns every job, newest first, with farmer details filled in
func ListJobs(ctx context.Context, store db.JobStore, logger *zap.Logger) ([]model.Job, error) {
	rows, err := store.GetJobs(ctx)
	if err != nil {
		logger.Error("Failed to fetch jobs", zap.Error(err))
		return nil, upstreamError(err)
	}

	jobs := make([]model.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, jobFromRow(&rows[i].Job, rows[i].FarmerName, rows[i].FarmerPhone))
	}

	logger.Debug("Fetched jobs", zap.Int("count", len(jobs)))
	return jobs, nil
}

// PostJob creates a job owned by farmerID, located where the farmer is
func PostJob(ctx context.Context, store PostJobStore, logger *zap.Logger, farmerID string, req model.PostJobRequest) (*model.Job, error) {
	if farmerID == "" {
		return nil, authorizationError(msgMustBeLoggedIn)
	}
	if err := validateRequest(req, map[string]string{"Title": "Title is required"}); err != nil {
		return nil, err
	}
	if !req.PayRate.Valid {
		return nil, validationError("Pay rate is required")
	}

	farmer, err := store.GetProfile(ctx, farmerID)
	if err != nil {
		logger.Debug("Farmer lookup failed", zap.String("farmer_id", farmerID), zap.Error(err))
		return nil, &Error{Kind: KindUpstream, Message: "Farmer not found", Err: err}
	}

	payRate := req.PayRate.Value
	status := defaultJobStatus
	job := &db.Job{
		ID:             uuid.New().String(),
		FarmerID:       farmerID,
		Title:          req.Title,
		Description:    &req.Description,
		Duration:       &req.Duration,
		PayRate:        &payRate,
		TimeSlot:       &req.TimeSlot,
		SkillsRequired: &req.SkillsRequired,
		Location:       &farmer.Location,
		Status:         &status,
	}

	if err := store.InsertJob(ctx, job); err != nil {
		logger.Error("Failed to insert job", zap.String("farmer_id", farmerID), zap.Error(err))
		return nil, upstreamError(err)
	}

	logger.Info("Job posted",
		zap.String("job_id", job.ID),
		zap.String("farmer_id", farmerID),
		zap.String("title", job.Title),
		zap.Int("pay_rate", payRate))

	posted := jobFromRow(job, &farmer.Name, &farmer.Phone)
	return &posted, nil
}
