package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/db"
)

// memStore is an in-memory db.Database for service tests
type memStore struct {
	users        map[string]string // email -> id
	passwords    map[string]string // id -> password
	profiles     map[string]*db.Profile
	jobs         []*db.Job
	applications []*db.JobApplication
	clock        time.Time

	// injected failures
	signUpErr        error
	insertProfileErr error
	getJobsErr       error
	insertJobErr     error
	findErr          error
	insertAppErr     error
}

var _ db.Database = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]string{},
		passwords: map[string]string{},
		profiles:  map[string]*db.Profile{},
		clock:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) addProfile(id, name string, userType model.UserType) *db.Profile {
	p := &db.Profile{ID: id, Name: name, Email: id + "@example.com", Phone: "555-" + id, Location: name + "pur", UserType: string(userType)}
	m.profiles[id] = p
	return p
}

func (m *memStore) SignUp(ctx context.Context, email, password string) (string, error) {
	if m.signUpErr != nil {
		return "", m.signUpErr
	}
	if _, ok := m.users[email]; ok {
		return "", errors.New("User already registered")
	}
	id := fmt.Sprintf("user-%d", len(m.users)+1)
	m.users[email] = id
	m.passwords[id] = password
	return id, nil
}

func (m *memStore) SignIn(ctx context.Context, email, password string) (string, error) {
	id, ok := m.users[email]
	if !ok || m.passwords[id] != password {
		return "", errors.New("Invalid login credentials")
	}
	return id, nil
}

func (m *memStore) InsertProfile(ctx context.Context, profile *db.Profile) error {
	if m.insertProfileErr != nil {
		return m.insertProfileErr
	}
	profile.CreatedAt = m.tick()
	cp := *profile
	m.profiles[profile.ID] = &cp
	return nil
}

func (m *memStore) GetProfile(ctx context.Context, id string) (*db.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, fmt.Errorf("failed to get profile: %w", db.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) GetJobs(ctx context.Context) ([]db.JobWithFarmer, error) {
	if m.getJobsErr != nil {
		return nil, m.getJobsErr
	}
	var out []db.JobWithFarmer
	for i := len(m.jobs) - 1; i >= 0; i-- {
		j := db.JobWithFarmer{Job: *m.jobs[i]}
		if p, ok := m.profiles[j.FarmerID]; ok {
			j.FarmerName = &p.Name
			j.FarmerPhone = &p.Phone
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *memStore) GetJob(ctx context.Context, id string) (*db.Job, error) {
	for _, j := range m.jobs {
		if j.ID == id {
			cp := *j
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("failed to get job: %w", db.ErrNotFound)
}

func (m *memStore) InsertJob(ctx context.Context, job *db.Job) error {
	if m.insertJobErr != nil {
		return m.insertJobErr
	}
	job.CreatedAt = m.tick()
	cp := *job
	m.jobs = append(m.jobs, &cp)
	return nil
}

func (m *memStore) detail(a *db.JobApplication) db.ApplicationDetail {
	d := db.ApplicationDetail{JobApplication: *a}
	for _, j := range m.jobs {
		if j.ID == a.JobID {
			d.JobFarmerID = j.FarmerID
			title := j.Title
			d.JobTitle = &title
		}
	}
	if p, ok := m.profiles[a.WorkerID]; ok {
		d.WorkerName = &p.Name
		d.WorkerPhone = &p.Phone
		d.WorkerLocation = &p.Location
		d.WorkerEmail = &p.Email
	}
	return d
}

func (m *memStore) filterApplications(keep func(db.ApplicationDetail) bool) []db.ApplicationDetail {
	var out []db.ApplicationDetail
	for i := len(m.applications) - 1; i >= 0; i-- {
		d := m.detail(m.applications[i])
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func (m *memStore) GetApplicationsForFarmer(ctx context.Context, farmerID string) ([]db.ApplicationDetail, error) {
	return m.filterApplications(func(d db.ApplicationDetail) bool { return d.JobFarmerID == farmerID }), nil
}

func (m *memStore) GetApplicationsForWorker(ctx context.Context, workerID string) ([]db.ApplicationDetail, error) {
	return m.filterApplications(func(d db.ApplicationDetail) bool { return d.WorkerID == workerID }), nil
}

func (m *memStore) GetApplication(ctx context.Context, id string) (*db.ApplicationDetail, error) {
	for _, a := range m.applications {
		if a.ID == id {
			d := m.detail(a)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("failed to get application: %w", db.ErrNotFound)
}

func (m *memStore) FindApplication(ctx context.Context, jobID, workerID string) (*db.JobApplication, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, a := range m.applications {
		if a.JobID == jobID && a.WorkerID == workerID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("failed to find application: %w", db.ErrNotFound)
}

func (m *memStore) InsertApplication(ctx context.Context, application *db.JobApplication) error {
	if m.insertAppErr != nil {
		return m.insertAppErr
	}
	application.CreatedAt = m.tick()
	cp := *application
	m.applications = append(m.applications, &cp)
	return nil
}

func (m *memStore) UpdateApplicationStatus(ctx context.Context, id, status string) (*db.JobApplication, error) {
	for _, a := range m.applications {
		if a.ID == id {
			s := status
			a.Status = &s
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("failed to update application status: %w", db.ErrNotFound)
}

func (m *memStore) Ping(ctx context.Context) error { return nil }

func (m *memStore) Close() {}

// recordingNotifier captures notifier calls
type recordingNotifier struct {
	mu        sync.Mutex
	submitted []string
	reviewed  []model.ApplicationStatus
}

func (r *recordingNotifier) ApplicationSubmitted(ctx context.Context, job *db.Job, workerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted = append(r.submitted, job.ID+":"+workerID)
}

func (r *recordingNotifier) ApplicationReviewed(ctx context.Context, application *db.ApplicationDetail, status model.ApplicationStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviewed = append(r.reviewed, status)
}
