package dashboard

import (
	"context"
	"fmt"

	"github.com/jakechorley/gramconnect/pkg/clients/marketclient"
	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/core/views"
)

// fakeBackend is an in-memory marketplace keyed on the identity it is told about
type fakeBackend struct {
	caller func() string

	users []model.Identity
	jobs  []model.Job
	apps  []model.Application

	failJobs         bool
	failApplications bool
	failAction       string
	calls            []string
}

func (f *fakeBackend) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeBackend) Signup(ctx context.Context, req model.SignupRequest) marketclient.Response {
	f.record("signup")
	if req.Password == "" {
		return marketclient.Response{Error: "Password is required"}
	}
	id := fmt.Sprintf("u%d", len(f.users)+1)
	f.users = append(f.users, model.Identity{ID: id, Name: req.Name, Email: req.Email, Type: req.UserType})
	return marketclient.Response{Success: true, User: &f.users[len(f.users)-1]}
}

func (f *fakeBackend) Login(ctx context.Context, req model.LoginRequest) marketclient.Response {
	f.record("login")
	for _, u := range f.users {
		if u.Email == req.Email {
			user := u
			return marketclient.Response{Success: true, User: &user}
		}
	}
	return marketclient.Response{Error: "Invalid login credentials"}
}

func (f *fakeBackend) ListJobs(ctx context.Context) marketclient.Response {
	f.record("jobs")
	if f.failJobs {
		return marketclient.Response{Error: "HTTP error! status: 500"}
	}
	return marketclient.Response{Success: true, Jobs: append([]model.Job(nil), f.jobs...)}
}

func (f *fakeBackend) ListApplications(ctx context.Context) marketclient.Response {
	f.record("applications")
	if f.failApplications {
		return marketclient.Response{Error: "request timed out after 15s"}
	}
	return marketclient.Response{Success: true, Applications: append([]model.Application(nil), f.apps...)}
}

func (f *fakeBackend) PostJob(ctx context.Context, req model.PostJobRequest) marketclient.Response {
	f.record("postJob")
	if f.failAction == "postJob" {
		return marketclient.Response{}
	}
	job := model.Job{ID: fmt.Sprintf("j%d", len(f.jobs)+1), FarmerID: f.caller(), Title: req.Title, PayRate: req.PayRate.Value}
	f.jobs = append([]model.Job{job}, f.jobs...)
	return marketclient.Response{Success: true, Job: &job}
}

func (f *fakeBackend) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) marketclient.Response {
	f.record("update")
	if f.failAction == "update" {
		return marketclient.Response{Error: "Unauthorized"}
	}
	for i := range f.apps {
		if f.apps[i].ID == id {
			f.apps[i].Status = status
			return marketclient.Response{Success: true}
		}
	}
	return marketclient.Response{Error: "Unauthorized"}
}

func (f *fakeBackend) Apply(ctx context.Context, jobID string) marketclient.Response {
	f.record("apply")
	for _, a := range f.apps {
		if a.JobID == jobID && a.WorkerID == f.caller() {
			return marketclient.Response{Error: "Already applied"}
		}
	}
	f.apps = append([]model.Application{{
		ID:       fmt.Sprintf("a%d", len(f.apps)+1),
		JobID:    jobID,
		WorkerID: f.caller(),
		Status:   model.StatusPending,
	}}, f.apps...)
	return marketclient.Response{Success: true, Message: "Application submitted"}
}

type recordingRenderer struct {
	renders []views.Dashboard
}

func (r *recordingRenderer) Render(dash views.Dashboard) {
	r.renders = append(r.renders, dash)
}

func (r *recordingRenderer) last() views.Dashboard {
	if len(r.renders) == 0 {
		return nil
	}
	return r.renders[len(r.renders)-1]
}

type note struct {
	success bool
	message string
}

type recordingNotifier struct {
	notes []note
}

func (n *recordingNotifier) NotifySuccess(title, message string) {
	n.notes = append(n.notes, note{success: true, message: message})
}

func (n *recordingNotifier) NotifyError(title, message string) {
	n.notes = append(n.notes, note{success: false, message: message})
}

func (n *recordingNotifier) last() note {
	if len(n.notes) == 0 {
		return note{}
	}
	return n.notes[len(n.notes)-1]
}
