package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/propdesk/crm-console/internal/core/domain"
	"github.com/propdesk/crm-console/internal/core/ports"
	"github.com/propdesk/crm-console/internal/metrics"
)

const defaultPollInterval = 5 * time.Second

// ImportWatcher polls a running lead import job on a fixed interval and
// streams status snapshots to a subscriber. This is the only recurring
// timer in the system, and it is strictly bound to its subscriber: the
// ticker stops when the subscriber's context is cancelled or the job
// reaches a terminal status, whichever comes first.
type ImportWatcher struct {
	leads    ports.LeadService
	interval time.Duration
	log      zerolog.Logger
}

func NewImportWatcher(leads ports.LeadService, interval time.Duration, log zerolog.Logger) *ImportWatcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &ImportWatcher{leads: leads, interval: interval, log: log}
}

// Watch fetches the job once to validate it exists, then polls until ctx
// is cancelled or the job finishes. The returned channel carries every
// observed snapshot and is closed when polling stops.
func (w *ImportWatcher) Watch(ctx context.Context, session *domain.Session, jobID string) (<-chan domain.ImportJob, error) {
	job, err := w.leads.ImportJob(ctx, session, jobID)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.ImportJob, 1)
	out <- *job
	if job.Status.Terminal() {
		close(out)
		return out, nil
	}

	go w.poll(ctx, session, jobID, out)
	return out, nil
}

func (w *ImportWatcher) poll(ctx context.Context, session *domain.Session, jobID string, out chan<- domain.ImportJob) {
	defer close(out)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug().Str("job_id", jobID).Msg("import watch cancelled")
			return
		case <-ticker.C:
			job, err := w.leads.ImportJob(ctx, session, jobID)
			if err != nil {
				// A vanished job or revoked token will not recover; stop
				// polling rather than hammer the API.
				w.log.Warn().Err(err).Str("job_id", jobID).Msg("import poll failed, stopping watch")
				return
			}
			metrics.ImportJobPollsTotal.WithLabelValues(string(job.Status)).Inc()

			select {
			case out <- *job:
			case <-ctx.Done():
				return
			}

			if job.Status.Terminal() {
				w.log.Info().Str("job_id", jobID).Str("status", string(job.Status)).Msg("import job finished")
				return
			}
		}
	}
}
