package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/db"
)

// notificationTimeout bounds one background send, independent of the request
const notificationTimeout = 30 * time.Second

// Notifier is told about application events after they are stored.
// Implementations must not block the caller or report failures back to it.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, job *db.Job, workerID string)
	ApplicationReviewed(ctx context.Context, application *db.ApplicationDetail, status model.ApplicationStatus)
}

// NopNotifier discards every event
type NopNotifier struct{}

func (NopNotifier) ApplicationSubmitted(context.Context, *db.Job, string) {}

func (NopNotifier) ApplicationReviewed(context.Context, *db.ApplicationDetail, model.ApplicationStatus) {}

// Mailer sends a plain-text email. It must give up when ctx is done.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// MailNotifier emails the farmer when a worker applies, and the worker when reviewed
type MailNotifier struct {
	profiles db.ProfileStore
	mailer   Mailer
	logger   *zap.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewMailNotifier creates a notifier that looks recipients up in profiles
func NewMailNotifier(profiles db.ProfileStore, mailer Mailer, logger *zap.Logger) *MailNotifier {
	return &MailNotifier{
		profiles: profiles,
		mailer:   mailer,
		logger:   logger,
		timeout:  notificationTimeout,
	}
}

// Wait blocks until every dispatched email has been attempted or timed out
func (n *MailNotifier) Wait() {
	n.wg.Wait()
}

func (n *MailNotifier) ApplicationSubmitted(ctx context.Context, job *db.Job, workerID string) {
	n.dispatch(ctx, "application_submitted", func(ctx context.Context) (string, string, string, error) {
		farmer, err := n.profiles.GetProfile(ctx, job.FarmerID)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to get farmer profile: %w", err)
		}
		worker, err := n.profiles.GetProfile(ctx, workerID)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to get worker profile: %w", err)
		}

		subject := fmt.Sprintf("New application for %s", job.Title)
		body := fmt.Sprintf("Hello %s,\n\n%s from %s has applied for \"%s\".\nPhone: %s\n\nReview the application from your GramConnect dashboard.\n",
			farmer.Name, worker.Name, orDefault(&worker.Location, defaultWorkerLocation), job.Title, orDefault(&worker.Phone, defaultPhone))
		return farmer.Email, subject, body, nil
	})
}

func (n *MailNotifier) ApplicationReviewed(ctx context.Context, application *db.ApplicationDetail, status model.ApplicationStatus) {
	n.dispatch(ctx, "application_reviewed", func(ctx context.Context) (string, string, string, error) {
		to := orDefault(application.WorkerEmail, "")
		if to == "" {
			return "", "", "", fmt.Errorf("worker %s has no email address", application.WorkerID)
		}

		title := orDefault(application.JobTitle, defaultUnknown)
		subject := fmt.Sprintf("Your application for %s was %s", title, status)
		body := fmt.Sprintf("Hello %s,\n\nYour application for \"%s\" is now %s.\n",
			orDefault(application.WorkerName, defaultUnknown), title, status.Label())
		return to, subject, body, nil
	})
}

type composeFunc func(ctx context.Context) (to, subject, body string, err error)

func (n *MailNotifier) dispatch(ctx context.Context, event string, compose composeFunc) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()

		to, subject, body, err := compose(ctx)
		if err != nil {
			n.logger.Warn("Skipping notification", zap.String("event", event), zap.Error(err))
			return
		}

		if err := n.mailer.SendEmail(ctx, to, subject, body); err != nil {
			n.logger.Error("Failed to send notification",
				zap.String("event", event),
				zap.String("to", to),
				zap.Error(err))
			return
		}

		n.logger.Info("Notification sent", zap.String("event", event), zap.String("to", to))
	}()
}
