package marketclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jakechorley/gramconnect/pkg/core/model"
)

func (c *Client) Signup(ctx context.Context, req model.SignupRequest) Response {
	return c.send(ctx, http.MethodPost, "/api/signup", req)
}

func (c *Client) Login(ctx context.Context, req model.LoginRequest) Response {
	return c.send(ctx, http.MethodPost, "/api/login", req)
}

// ListJobs fetches every job, newest first
func (c *Client) ListJobs(ctx context.Context) Response {
	return c.Call(ctx, "/api/jobs", CallOptions{})
}

func (c *Client) PostJob(ctx context.Context, req model.PostJobRequest) Response {
	return c.send(ctx, http.MethodPost, "/api/jobs", req)
}

// ListApplications fetches the applications the server scopes to the current identity
func (c *Client) ListApplications(ctx context.Context) Response {
	return c.Call(ctx, "/api/applications", CallOptions{})
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) Response {
	return c.send(ctx, http.MethodPut, "/api/applications/"+url.PathEscape(id), model.UpdateStatusRequest{Status: status})
}

func (c *Client) Apply(ctx context.Context, jobID string) Response {
	return c.send(ctx, http.MethodPost, "/api/apply", model.ApplyRequest{JobID: jobID})
}

// Health checks the server and its database
func (c *Client) Health(ctx context.Context) Response {
	return c.Call(ctx, "/api/health", CallOptions{})
}
