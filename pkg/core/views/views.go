// Package views derives dashboard view-models from an identity and the cached collections.
// Everything here is pure: no I/O, no clock, input order preserved.
package views

import (
	"github.com/jakechorley/gramconnect/pkg/core/model"
)

// PreviewLength is the number of description characters shown on a worker's job card
const PreviewLength = 100

// Action is a review action offered on an application row
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Status returns the application status the action moves to
func (a Action) Status() model.ApplicationStatus {
	if a == ActionApprove {
		return model.StatusApproved
	}
	return model.StatusRejected
}

// Dashboard is implemented by FarmerDashboard and WorkerDashboard
type Dashboard interface {
	UserType() model.UserType
	Greeting() string
}

type FarmerStats struct {
	ActiveJobs        int
	TotalApplications int
	PendingApprovals  int
}

type FarmerJob struct {
	Job              model.Job
	ApplicationCount int
	PendingCount     int
}

type ApplicationRow struct {
	Application model.Application
	Badge       string
	Actions     []Action
}

type FarmerDashboard struct {
	Identity     model.Identity
	Stats        FarmerStats
	Jobs         []FarmerJob
	Empty        bool
	Applications []ApplicationRow
}

func (FarmerDashboard) UserType() model.UserType { return model.UserTypeFarmer }

func (d FarmerDashboard) Greeting() string { return "Hello, " + d.Identity.Name + "!" }

// WorkerStats counts a worker's applications. Available is len(jobs) minus Applied, so it
// can differ from len(WorkerDashboard.Available).
type WorkerStats struct {
	Applied   int
	Approved  int
	Available int
}

type JobCard struct {
	Job     model.Job
	Preview string
}

type WorkerDashboard struct {
	Identity  model.Identity
	Stats     WorkerStats
	Available []JobCard
}

func (WorkerDashboard) UserType() model.UserType { return model.UserTypeWorker }

func (d WorkerDashboard) Greeting() string { return "Welcome, " + d.Identity.Name + "!" }

// Derive builds the dashboard matching the identity's type. It returns nil for an unknown type.
func Derive(identity model.Identity, jobs []model.Job, apps []model.Application) Dashboard {
	switch identity.Type {
	case model.UserTypeFarmer:
		return DeriveFarmer(identity, jobs, apps)
	case model.UserTypeWorker:
		return DeriveWorker(identity, jobs, apps)
	default:
		return nil
	}
}

// DeriveFarmer computes stats, the own-job list and the application list for a farmer
func DeriveFarmer(identity model.Identity, jobs []model.Job, apps []model.Application) FarmerDashboard {
	own := make(map[string]int)
	dash := FarmerDashboard{Identity: identity}

	for _, job := range jobs {
		if job.FarmerID != identity.ID {
			continue
		}
		own[job.ID] = len(dash.Jobs)
		dash.Jobs = append(dash.Jobs, FarmerJob{Job: job})
	}

	for _, app := range apps {
		idx, ok := own[app.JobID]
		if !ok {
			continue
		}
		dash.Jobs[idx].ApplicationCount++
		if app.Status == model.StatusPending {
			dash.Jobs[idx].PendingCount++
			dash.Stats.PendingApprovals++
		}
		dash.Applications = append(dash.Applications, NewApplicationRow(app))
	}

	dash.Stats.ActiveJobs = len(dash.Jobs)
	dash.Stats.TotalApplications = len(dash.Applications)
	dash.Empty = len(dash.Jobs) == 0
	return dash
}

// NewApplicationRow attaches the badge and any available actions to an application
func NewApplicationRow(app model.Application) ApplicationRow {
	row := ApplicationRow{Application: app, Badge: app.Status.Label()}
	if app.Status == model.StatusPending {
		row.Actions = []Action{ActionApprove, ActionReject}
	}
	return row
}

// DeriveWorker computes stats and the available job cards for a worker
func DeriveWorker(identity model.Identity, jobs []model.Job, apps []model.Application) WorkerDashboard {
	dash := WorkerDashboard{Identity: identity}
	applied := make(map[string]struct{})

	for _, app := range apps {
		if app.WorkerID != identity.ID {
			continue
		}
		applied[app.JobID] = struct{}{}
		dash.Stats.Applied++
		if app.Status == model.StatusApproved {
			dash.Stats.Approved++
		}
	}
	dash.Stats.Available = len(jobs) - dash.Stats.Applied

	for _, job := range jobs {
		if job.FarmerID == identity.ID {
			continue
		}
		if _, ok := applied[job.ID]; ok {
			continue
		}
		dash.Available = append(dash.Available, JobCard{Job: job, Preview: Preview(job.Description)})
	}
	return dash
}

// Preview returns the first PreviewLength characters of a description followed by "..."
func Preview(description string) string {
	runes := []rune(description)
	if len(runes) > PreviewLength {
		runes = runes[:PreviewLength]
	}
	return string(runes) + "..."
}

// FilterJob keeps only the application rows for one job. An empty jobID keeps them all.
func FilterJob(rows []ApplicationRow, jobID string) []ApplicationRow {
	if jobID == "" {
		return rows
	}
	var out []ApplicationRow
	for _, row := range rows {
		if row.Application.JobID == jobID {
			out = append(out, row)
		}
	}
	return out
}
