package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/db"
)

func setupMarket(t *testing.T) (*memStore, *recordingNotifier, string) {
	t.Helper()
	store := newMemStore()
	store.addProfile("farmer", "Ramesh", model.UserTypeFarmer)
	store.addProfile("other", "Suresh", model.UserTypeFarmer)
	store.addProfile("worker", "Kiran", model.UserTypeWorker)

	job, err := PostJob(context.Background(), store, zap.NewNop(), "farmer", model.PostJobRequest{Title: "Harvest wheat", PayRate: model.NewIntString(500)})
	require.NoError(t, err)
	return store, &recordingNotifier{}, job.ID
}

func TestApply(t *testing.T) {
	store, notifier, jobID := setupMarket(t)

	err := Apply(context.Background(), store, notifier, zap.NewNop(), "worker", model.ApplyRequest{JobID: jobID})
	require.NoError(t, err)

	require.Len(t, store.applications, 1)
	assert.Equal(t, "pending", *store.applications[0].Status)
	assert.Equal(t, []string{jobID + ":worker"}, notifier.submitted)

	t.Run("duplicate rejected without a second row", func(t *testing.T) {
		err := Apply(context.Background(), store, notifier, zap.NewNop(), "worker", model.ApplyRequest{JobID: jobID})
		assert.EqualError(t, err, "Already applied")
		assert.Len(t, store.applications, 1)
		assert.Len(t, notifier.submitted, 1)
	})
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name      string
		workerID  string
		jobID     string
		postedJob bool
		setup     func(*memStore)
		wantMsg   string
	}{
		{name: "not logged in", jobID: "x", wantMsg: "Must be logged in"},
		{name: "missing job id", workerID: "worker", wantMsg: "Job ID is required"},
		{name: "unknown job", workerID: "worker", jobID: "nope", wantMsg: "Job not found"},
		{
			name:     "lookup failure passed through",
			workerID: "worker",
			jobID:    "nope",
			setup:    func(m *memStore) { m.findErr = errors.New("timeout") },
			wantMsg:  "timeout",
		},
		{
			name:      "racing duplicate insert",
			workerID:  "worker",
			postedJob: true,
			setup:     func(m *memStore) { m.insertAppErr = db.ErrDuplicate },
			wantMsg:   "Already applied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, notifier, jobID := setupMarket(t)
			if tt.setup != nil {
				tt.setup(store)
			}
			if tt.postedJob {
				tt.jobID = jobID
			}

			err := Apply(context.Background(), store, notifier, zap.NewNop(), tt.workerID, model.ApplyRequest{JobID: tt.jobID})
			assert.EqualError(t, err, tt.wantMsg)
			assert.Empty(t, notifier.submitted)
		})
	}
}

func TestListApplications_Scope(t *testing.T) {
	store, notifier, jobID := setupMarket(t)
	require.NoError(t, Apply(context.Background(), store, notifier, zap.NewNop(), "worker", model.ApplyRequest{JobID: jobID}))

	t.Run("owning farmer", func(t *testing.T) {
		apps, err := ListApplications(context.Background(), store, zap.NewNop(), "farmer")
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, "worker", apps[0].WorkerID)
		assert.Equal(t, "Kiran", apps[0].WorkerName)
		assert.Equal(t, "Harvest wheat", apps[0].JobTitle)
		assert.Equal(t, model.StatusPending, apps[0].Status)
	})

	t.Run("other farmer", func(t *testing.T) {
		apps, err := ListApplications(context.Background(), store, zap.NewNop(), "other")
		require.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("worker sees own", func(t *testing.T) {
		apps, err := ListApplications(context.Background(), store, zap.NewNop(), "worker")
		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("not logged in", func(t *testing.T) {
		_, err := ListApplications(context.Background(), store, zap.NewNop(), "")
		assert.EqualError(t, err, "Must be logged in")
	})

	t.Run("unknown requester", func(t *testing.T) {
		_, err := ListApplications(context.Background(), store, zap.NewNop(), "ghost")
		assert.EqualError(t, err, "Unauthorized")
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	store, notifier, jobID := setupMarket(t)
	require.NoError(t, Apply(context.Background(), store, notifier, zap.NewNop(), "worker", model.ApplyRequest{JobID: jobID}))
	appID := store.applications[0].ID

	t.Run("invalid status", func(t *testing.T) {
		_, err := UpdateApplicationStatus(context.Background(), store, notifier, zap.NewNop(), "farmer", appID, model.UpdateStatusRequest{Status: "maybe"})
		assert.EqualError(t, err, "Invalid status")
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		_, err := UpdateApplicationStatus(context.Background(), store, notifier, zap.NewNop(), "other", appID, model.UpdateStatusRequest{Status: model.StatusApproved})
		assert.EqualError(t, err, "Unauthorized")
		assert.Equal(t, "pending", *store.applications[0].Status)
	})

	t.Run("unknown application", func(t *testing.T) {
		_, err := UpdateApplicationStatus(context.Background(), store, notifier, zap.NewNop(), "farmer", "missing", model.UpdateStatusRequest{Status: model.StatusApproved})
		assert.EqualError(t, err, "Unauthorized")
	})

	t.Run("owner approves", func(t *testing.T) {
		updated, err := UpdateApplicationStatus(context.Background(), store, notifier, zap.NewNop(), "farmer", appID, model.UpdateStatusRequest{Status: model.StatusApproved})
		require.NoError(t, err)
		assert.Equal(t, "approved", *updated.Status)
		assert.Equal(t, []model.ApplicationStatus{model.StatusApproved}, notifier.reviewed)
	})

	t.Run("owner may update a terminal application", func(t *testing.T) {
		updated, err := UpdateApplicationStatus(context.Background(), store, notifier, zap.NewNop(), "farmer", appID, model.UpdateStatusRequest{Status: model.StatusRejected})
		require.NoError(t, err)
		assert.Equal(t, "rejected", *updated.Status)
	})
}
