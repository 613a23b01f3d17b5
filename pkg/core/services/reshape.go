package services

import (
	"time"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/db"
)

const (
	defaultJobLocation    = "Location not specified"
	defaultUnknown        = "Unknown"
	defaultPhone          = "N/A"
	defaultJobStatus      = "active"
	defaultWorkerLocation = "Unknown"
)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func identityFromProfile(p *db.Profile) model.Identity {
	return model.Identity{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Type:     model.UserType(p.UserType),
		Location: p.Location,
		Phone:    p.Phone,
	}
}

// jobFromRow maps a jobs row to the client vocabulary, filling defaults for empty columns
func jobFromRow(j *db.Job, farmerName, farmerPhone *string) model.Job {
	payRate := 0
	if j.PayRate != nil {
		payRate = *j.PayRate
	}

	return model.Job{
		ID:             j.ID,
		FarmerID:       j.FarmerID,
		Title:          j.Title,
		Description:    orDefault(j.Description, ""),
		Duration:       orDefault(j.Duration, ""),
		PayRate:        payRate,
		TimeSlot:       orDefault(j.TimeSlot, ""),
		SkillsRequired: orDefault(j.SkillsRequired, ""),
		Location:       orDefault(j.Location, defaultJobLocation),
		FarmerName:     orDefault(farmerName, defaultUnknown),
		FarmerPhone:    orDefault(farmerPhone, defaultPhone),
		PostedDate:     formatTimestamp(j.CreatedAt),
		Status:         orDefault(j.Status, defaultJobStatus),
	}
}

func applicationFromRow(a *db.ApplicationDetail) model.Application {
	return model.Application{
		ID:             a.ID,
		JobID:          a.JobID,
		WorkerID:       a.WorkerID,
		WorkerName:     orDefault(a.WorkerName, defaultUnknown),
		WorkerLocation: orDefault(a.WorkerLocation, defaultWorkerLocation),
		WorkerPhone:    orDefault(a.WorkerPhone, defaultPhone),
		JobTitle:       orDefault(a.JobTitle, defaultUnknown),
		AppliedAt:      formatTimestamp(a.CreatedAt),
		Status:         model.ApplicationStatus(orDefault(a.Status, string(model.StatusPending))),
	}
}
