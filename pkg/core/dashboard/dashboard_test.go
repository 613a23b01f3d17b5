package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/core/session"
	"github.com/jakechorley/gramconnect/pkg/core/views"
)

type harness struct {
	backend  *fakeBackend
	store    *session.MemoryStore
	state    *AppState
	renderer *recordingRenderer
	notifier *recordingNotifier
	ctrl     *Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		backend:  &fakeBackend{},
		store:    &session.MemoryStore{},
		renderer: &recordingRenderer{},
		notifier: &recordingNotifier{},
	}
	h.state = NewAppState(h.store, h.backend)
	h.backend.caller = h.state.CurrentID
	h.ctrl = NewController(h.state, h.backend, h.renderer, h.notifier, zap.NewNop())
	return h
}

func (h *harness) loginAs(t *testing.T, name string, userType model.UserType) model.Identity {
	t.Helper()
	ctx := context.Background()
	email := name + "@example.com"
	require.True(t, h.ctrl.Signup(ctx, model.SignupRequest{Name: name, Email: email, Password: "secret1", UserType: userType}))
	identity, ok := h.ctrl.Login(ctx, model.LoginRequest{Email: email, Password: "secret1"})
	require.True(t, ok)
	return *identity
}

func TestAppState_InitRestoresSession(t *testing.T) {
	store := &session.MemoryStore{}
	require.NoError(t, store.Save(model.Identity{ID: "w1", Name: "Sita", Type: model.UserTypeWorker}))

	state := NewAppState(store, &fakeBackend{})
	assert.False(t, state.LoggedIn())
	require.NoError(t, state.Init())
	assert.Equal(t, "w1", state.CurrentID())

	identity := state.Identity()
	identity.Name = "changed"
	assert.Equal(t, "Sita", state.Identity().Name)
}

func TestLogin_PersistsAndGreets(t *testing.T) {
	h := newHarness(t)
	identity := h.loginAs(t, "Ramesh", model.UserTypeFarmer)

	stored, err := h.store.Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, identity.ID, stored.ID)
	assert.Equal(t, note{success: true, message: "Welcome Ramesh!"}, h.notifier.last())
}

func TestLogin_FailureKeepsLoggedOut(t *testing.T) {
	h := newHarness(t)
	_, ok := h.ctrl.Login(context.Background(), model.LoginRequest{Email: "nobody@example.com", Password: "x"})

	assert.False(t, ok)
	assert.False(t, h.state.LoggedIn())
	assert.Equal(t, note{message: "Invalid login credentials"}, h.notifier.last())
}

func TestSignup_ReportsServerError(t *testing.T) {
	h := newHarness(t)
	ok := h.ctrl.Signup(context.Background(), model.SignupRequest{Name: "x", UserType: model.UserTypeWorker})

	assert.False(t, ok)
	assert.Equal(t, note{message: "Password is required"}, h.notifier.last())
}

func TestEnter_RequiresIdentity(t *testing.T) {
	h := newHarness(t)
	err := h.ctrl.Enter(context.Background())

	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Equal(t, PhaseEntering, h.ctrl.Phase())
	assert.Empty(t, h.renderer.renders)
	assert.Empty(t, h.backend.calls)
}

func TestEnter_RendersVariantForIdentity(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "Ramesh", model.UserTypeFarmer)

	require.NoError(t, h.ctrl.Enter(context.Background()))

	assert.Equal(t, PhaseRendered, h.ctrl.Phase())
	dash, ok := h.renderer.last().(views.FarmerDashboard)
	require.True(t, ok)
	assert.Equal(t, "Hello, Ramesh!", dash.Greeting())
	assert.True(t, dash.Empty)
}

func TestFarmerWorkerScenario(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	farmer := h.loginAs(t, "Ramesh", model.UserTypeFarmer)
	require.NoError(t, h.ctrl.Enter(ctx))
	require.True(t, h.ctrl.PostJob(ctx, model.PostJobRequest{Title: "Harvest wheat", PayRate: model.NewIntString(500)}))
	assert.Equal(t, model.PostJobRequest{}, h.ctrl.Draft(), "form is reset after a successful post")
	assert.Equal(t, note{success: true, message: "Job posted!"}, h.notifier.last())

	fdash := h.renderer.last().(views.FarmerDashboard)
	require.Len(t, fdash.Jobs, 1)
	jobID := fdash.Jobs[0].Job.ID

	worker := h.loginAs(t, "Sita", model.UserTypeWorker)
	require.NoError(t, h.ctrl.Enter(ctx))
	wdash := h.renderer.last().(views.WorkerDashboard)
	assert.Equal(t, "Welcome, Sita!", wdash.Greeting())
	require.Len(t, wdash.Available, 1)

	require.True(t, h.ctrl.Apply(ctx, jobID))
	wdash = h.renderer.last().(views.WorkerDashboard)
	assert.Empty(t, wdash.Available)
	assert.Equal(t, 1, wdash.Stats.Applied)

	assert.False(t, h.ctrl.Apply(ctx, jobID))
	assert.Equal(t, note{message: "Already applied"}, h.notifier.last())
	assert.Len(t, h.backend.apps, 1)
	assert.Equal(t, PhaseRendered, h.ctrl.Phase())

	_, ok := h.ctrl.Login(ctx, model.LoginRequest{Email: farmer.Email, Password: "secret1"})
	require.True(t, ok)
	require.NoError(t, h.ctrl.Enter(ctx))
	fdash = h.renderer.last().(views.FarmerDashboard)
	require.Len(t, fdash.Applications, 1)
	row := fdash.Applications[0]
	assert.Equal(t, worker.ID, row.Application.WorkerID)
	assert.Equal(t, model.StatusPending, row.Application.Status)
	assert.Equal(t, []views.Action{views.ActionApprove, views.ActionReject}, row.Actions)

	require.True(t, h.ctrl.Approve(ctx, row.Application.ID))
	fdash = h.renderer.last().(views.FarmerDashboard)
	assert.Equal(t, model.StatusApproved, fdash.Applications[0].Application.Status)
	assert.Empty(t, fdash.Applications[0].Actions)
	assert.Equal(t, "Approved", fdash.Applications[0].Badge)
}

func TestMutationFailure_UsesFallbackAndKeepsCache(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.loginAs(t, "Ramesh", model.UserTypeFarmer)
	require.NoError(t, h.ctrl.Enter(ctx))

	h.backend.failAction = "postJob"
	req := model.PostJobRequest{Title: "Plough", PayRate: model.NewIntString(300)}
	calls := len(h.backend.calls)

	assert.False(t, h.ctrl.PostJob(ctx, req))
	assert.Equal(t, note{message: "Failed to post job"}, h.notifier.last())
	assert.Equal(t, req, h.ctrl.Draft(), "form keeps its input after a failure")
	assert.Equal(t, []string{"postJob"}, h.backend.calls[calls:], "no reload after a failed mutation")
	assert.Equal(t, PhaseRendered, h.ctrl.Phase())

	h.backend.failAction = "update"
	assert.False(t, h.ctrl.Reject(ctx, "a1"))
	assert.Equal(t, note{message: "Unauthorized"}, h.notifier.last())
}

func TestReloadFailure_RendersLastKnownGood(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.loginAs(t, "Ramesh", model.UserTypeFarmer)
	require.NoError(t, h.ctrl.Enter(ctx))
	require.True(t, h.ctrl.PostJob(ctx, model.PostJobRequest{Title: "Harvest wheat", PayRate: model.NewIntString(500)}))

	h.backend.failJobs = true
	renders := len(h.renderer.renders)
	h.ctrl.Refresh(ctx)

	require.Len(t, h.renderer.renders, renders+1)
	dash := h.renderer.last().(views.FarmerDashboard)
	assert.Len(t, dash.Jobs, 1)
	assert.Equal(t, PhaseRendered, h.ctrl.Phase())
}

func TestReloadFailure_ApplicationsFetchKeepsPreviousView(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	farmer := h.loginAs(t, "Ramesh", model.UserTypeFarmer)
	h.backend.jobs = []model.Job{{ID: "j1", FarmerID: farmer.ID, Title: "Harvest wheat"}}
	h.backend.apps = []model.Application{{ID: "a1", JobID: "j1", WorkerID: "w1", Status: model.StatusPending}}
	require.NoError(t, h.ctrl.Enter(ctx))

	h.backend.jobs = []model.Job{{ID: "j2", FarmerID: farmer.ID, Title: "Plough"}}
	h.backend.failApplications = true
	renders := len(h.renderer.renders)
	require.NoError(t, h.ctrl.Enter(ctx))

	require.Len(t, h.renderer.renders, renders+1, "exactly one render of the cached view")
	dash := h.renderer.last().(views.FarmerDashboard)
	require.Len(t, dash.Jobs, 1)
	assert.Equal(t, "j1", dash.Jobs[0].Job.ID, "jobs from the failed cycle are not shown")
	require.Len(t, dash.Applications, 1)
	assert.Equal(t, "a1", dash.Applications[0].Application.ID)
	assert.Equal(t, "j1", h.state.Cache().Jobs()[0].ID)
	assert.Equal(t, PhaseRendered, h.ctrl.Phase())
}

func TestJobFilter(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	farmer := h.loginAs(t, "Ramesh", model.UserTypeFarmer)
	h.backend.jobs = []model.Job{{ID: "j2", FarmerID: farmer.ID}, {ID: "j1", FarmerID: farmer.ID}}
	h.backend.apps = []model.Application{
		{ID: "a1", JobID: "j1", WorkerID: "w1", Status: model.StatusPending},
		{ID: "a2", JobID: "j2", WorkerID: "w1", Status: model.StatusPending},
	}

	h.ctrl.SetJobFilter("j1")
	require.NoError(t, h.ctrl.Enter(ctx))

	dash := h.renderer.last().(views.FarmerDashboard)
	require.Len(t, dash.Applications, 1)
	assert.Equal(t, "a1", dash.Applications[0].Application.ID)
	assert.Equal(t, 2, dash.Stats.TotalApplications, "stats are not filtered")
}

func TestLogout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	farmer := h.loginAs(t, "Ramesh", model.UserTypeFarmer)
	h.backend.jobs = []model.Job{{ID: "j1", FarmerID: farmer.ID}}
	require.NoError(t, h.ctrl.Enter(ctx))
	require.NotEmpty(t, h.state.Cache().Jobs())

	require.NoError(t, h.ctrl.Logout())

	assert.False(t, h.state.LoggedIn())
	stored, err := h.store.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.Empty(t, h.state.Cache().Jobs())
	assert.Equal(t, PhaseEntering, h.ctrl.Phase())
	assert.Equal(t, note{success: true, message: "Logged out successfully"}, h.notifier.last())
	assert.ErrorIs(t, h.ctrl.Enter(ctx), ErrNotLoggedIn)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "entering", PhaseEntering.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "rendered", PhaseRendered.String())
}
