// Package cache holds the client's snapshot of jobs and applications.
// Each reload replaces a slot wholesale; nothing is merged.
package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jakechorley/gramconnect/pkg/clients/marketclient"
	"github.com/jakechorley/gramconnect/pkg/core/model"
)

// Source fetches the collections from the server
type Source interface {
	ListJobs(ctx context.Context) marketclient.Response
	ListApplications(ctx context.Context) marketclient.Response
}

// Cache is safe for concurrent use. Overlapping reloads resolve last-response-wins.
type Cache struct {
	source   Source
	loggedIn func() bool

	mu           sync.Mutex
	jobs         []model.Job
	applications []model.Application
	onRefresh    func()
}

// New creates an empty cache. loggedIn gates application reloads.
func New(source Source, loggedIn func() bool) *Cache {
	return &Cache{
		source:       source,
		loggedIn:     loggedIn,
		jobs:         []model.Job{},
		applications: []model.Application{},
	}
}

// OnRefresh sets the hook run after a complete ReloadJobs cycle
func (c *Cache) OnRefresh(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRefresh = f
}

// ReloadJobs fetches jobs, then applications, and replaces both slots together before
// running the refresh hook. If either fetch fails neither slot changes and the hook does not run.
func (c *Cache) ReloadJobs(ctx context.Context) error {
	resp := c.source.ListJobs(ctx)
	if !resp.Success {
		return fmt.Errorf("failed to load jobs: %s", resp.Error)
	}
	jobs := nonNil(resp.Jobs)

	apps, fetched, err := c.fetchApplications(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.jobs = jobs
	if fetched {
		c.applications = apps
	}
	hook := c.onRefresh
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

// ReloadApplications replaces the applications slot. It does nothing when logged out.
func (c *Cache) ReloadApplications(ctx context.Context) error {
	apps, fetched, err := c.fetchApplications(ctx)
	if err != nil || !fetched {
		return err
	}

	c.mu.Lock()
	c.applications = apps
	c.mu.Unlock()
	return nil
}

// fetchApplications reports fetched=false when logged out
func (c *Cache) fetchApplications(ctx context.Context) ([]model.Application, bool, error) {
	if !c.loggedIn() {
		return nil, false, nil
	}

	resp := c.source.ListApplications(ctx)
	if !resp.Success {
		return nil, false, fmt.Errorf("failed to load applications: %s", resp.Error)
	}
	return nonNil(resp.Applications), true, nil
}

// Jobs returns a copy of the jobs slot
func (c *Cache) Jobs() []model.Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.jobs)
}

// Applications returns a copy of the applications slot
func (c *Cache) Applications() []model.Application {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.applications)
}

// Snapshot returns copies of both slots taken together
func (c *Cache) Snapshot() ([]model.Job, []model.Application) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.jobs), slices.Clone(c.applications)
}

// Reset empties both slots
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = []model.Job{}
	c.applications = []model.Application{}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
