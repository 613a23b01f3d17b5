package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/core/views"
)

const (
	titleSuccess = "Success"
	titleError   = "Error"
)

// Phase is where the controller is in its Entering -> Loading -> Rendered cycle
type Phase int

const (
	PhaseEntering Phase = iota
	PhaseLoading
	PhaseRendered
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseLoading:
		return "loading"
	case PhaseRendered:
		return "rendered"
	default:
		return "unknown"
	}
}

// Renderer draws a derived dashboard
type Renderer interface {
	Render(dash views.Dashboard)
}

// Notifier shows transient messages to the user
type Notifier interface {
	NotifySuccess(title, message string)
	NotifyError(title, message string)
}

// Controller runs the dashboard for the logged in identity
type Controller struct {
	state    *AppState
	backend  Backend
	renderer Renderer
	notifier Notifier
	logger   *zap.Logger

	mu        sync.Mutex
	phase     Phase
	jobFilter string
	draft     model.PostJobRequest
}

func NewController(state *AppState, backend Backend, renderer Renderer, notifier Notifier, logger *zap.Logger) *Controller {
	c := &Controller{
		state:    state,
		backend:  backend,
		renderer: renderer,
		notifier: notifier,
		logger:   logger,
		phase:    PhaseEntering,
	}
	state.Cache().OnRefresh(c.render)
	return c
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// SetJobFilter limits the farmer's application list to one job. "" shows all.
func (c *Controller) SetJobFilter(jobID string) {
	c.mu.Lock()
	c.jobFilter = jobID
	c.mu.Unlock()
}

// Draft returns the post-job form as last submitted; it is reset after a successful post
func (c *Controller) Draft() model.PostJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Enter loads and renders the dashboard for the current identity
func (c *Controller) Enter(ctx context.Context) error {
	identity := c.state.Identity()
	if identity == nil {
		return ErrNotLoggedIn
	}

	c.logger.Debug("Entering dashboard", zap.String("user_id", identity.ID), zap.String("type", string(identity.Type)))
	c.setPhase(PhaseEntering)
	c.load(ctx)
	return nil
}

// Refresh reloads and re-renders without the entering step
func (c *Controller) Refresh(ctx context.Context) {
	c.load(ctx)
}

// load runs a full reload. A successful reload renders through the cache hook; a failed one
// renders the last known good snapshot.
func (c *Controller) load(ctx context.Context) {
	c.setPhase(PhaseLoading)
	if err := c.state.Cache().ReloadJobs(ctx); err != nil {
		c.logger.Warn("Reload failed, rendering cached data", zap.Error(err))
		c.render()
	}
}

func (c *Controller) render() {
	defer c.setPhase(PhaseRendered)

	identity := c.state.Identity()
	if identity == nil {
		return
	}

	jobs, apps := c.state.Cache().Snapshot()
	dash := views.Derive(*identity, jobs, apps)
	if dash == nil {
		c.logger.Warn("No dashboard for user type", zap.String("type", string(identity.Type)))
		return
	}

	c.mu.Lock()
	filter := c.jobFilter
	c.mu.Unlock()

	if f, ok := dash.(views.FarmerDashboard); ok && filter != "" {
		f.Applications = views.FilterJob(f.Applications, filter)
		dash = f
	}

	c.renderer.Render(dash)
}

// mutate runs one mutation through Loading and always ends Rendered
func (c *Controller) mutate(ctx context.Context, call func() (bool, string), success, fallback string, onSuccess func()) bool {
	c.setPhase(PhaseLoading)

	ok, errMsg := call()
	if !ok {
		c.notifier.NotifyError(titleError, orFallback(errMsg, fallback))
		c.render()
		return false
	}

	c.notifier.NotifySuccess(titleSuccess, success)
	if onSuccess != nil {
		onSuccess()
	}
	c.load(ctx)
	return true
}

// PostJob submits a new job for the logged in farmer
func (c *Controller) PostJob(ctx context.Context, req model.PostJobRequest) bool {
	c.mu.Lock()
	c.draft = req
	c.mu.Unlock()

	return c.mutate(ctx, func() (bool, string) {
		resp := c.backend.PostJob(ctx, req)
		return resp.Success, resp.Error
	}, "Job posted!", "Failed to post job", func() {
		c.mu.Lock()
		c.draft = model.PostJobRequest{}
		c.mu.Unlock()
	})
}

// Apply submits an application to a job for the logged in worker
func (c *Controller) Apply(ctx context.Context, jobID string) bool {
	return c.mutate(ctx, func() (bool, string) {
		resp := c.backend.Apply(ctx, jobID)
		return resp.Success, resp.Error
	}, "Application submitted!", "Application failed", nil)
}

func (c *Controller) Approve(ctx context.Context, applicationID string) bool {
	return c.review(ctx, applicationID, views.ActionApprove)
}

func (c *Controller) Reject(ctx context.Context, applicationID string) bool {
	return c.review(ctx, applicationID, views.ActionReject)
}

func (c *Controller) review(ctx context.Context, applicationID string, action views.Action) bool {
	return c.mutate(ctx, func() (bool, string) {
		resp := c.backend.UpdateApplicationStatus(ctx, applicationID, action.Status())
		return resp.Success, resp.Error
	}, "Application updated", "Failed to update application", nil)
}

// Signup registers an account and reports the outcome
func (c *Controller) Signup(ctx context.Context, req model.SignupRequest) bool {
	if err := c.state.Signup(ctx, req); err != nil {
		c.notifier.NotifyError(titleError, err.Error())
		return false
	}
	c.notifier.NotifySuccess(titleSuccess, "Registration successful! Please log in.")
	return true
}

// Login authenticates, persists the session and greets the user
func (c *Controller) Login(ctx context.Context, req model.LoginRequest) (*model.Identity, bool) {
	identity, err := c.state.Login(ctx, req)
	if err != nil {
		c.logger.Debug("Login failed", zap.Error(err))
		c.notifier.NotifyError(titleError, err.Error())
		return nil, false
	}
	c.notifier.NotifySuccess(titleSuccess, "Welcome "+identity.Name+"!")
	c.setPhase(PhaseEntering)
	return identity, true
}

// Logout ends the session
func (c *Controller) Logout() error {
	if err := c.state.Logout(); err != nil {
		c.notifier.NotifyError(titleError, err.Error())
		return err
	}
	c.SetJobFilter("")
	c.setPhase(PhaseEntering)
	c.notifier.NotifySuccess(titleSuccess, "Logged out successfully")
	return nil
}
