package services

import (
	"context"
	"sync/atomic"
	"time"

	"ledquote/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	MessageProbeOK      = "Connexion à KARLIA établie."
	MessageProbePending = "Connexion à KARLIA non encore vérifiée."
)

// Pinger is satisfied by KarliaClient.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KarliaProbe periodically checks CRM connectivity and keeps the last
// outcome for the status endpoint.
type KarliaProbe struct {
	pinger  Pinger
	timeout time.Duration
	now     func() time.Time

	running int32
	last    atomic.Pointer[models.ProbeStatus]
}

func NewKarliaProbe(pinger Pinger, timeout time.Duration) *KarliaProbe {
	return &KarliaProbe{pinger: pinger, timeout: timeout, now: time.Now}
}

// Schedule registers the probe on c with a standard cron spec
// ("@every 30m", "0 * * * *").
func (p *KarliaProbe) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() { p.Run(context.Background()) })
}

// Run pings the CRM once. Overlapping runs are skipped.
func (p *KarliaProbe) Run(ctx context.Context) models.ProbeStatus {
	if !atomic.CompareAndSwapInt32(&p.running, 0, 1) {
		log.Debug().Msg("previous KARLIA probe still running, skipping")
		return p.Status()
	}
	defer atomic.StoreInt32(&p.running, 0)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := p.now()
	err := p.pinger.Ping(ctx)
	status := models.ProbeStatus{
		OK:         err == nil,
		StatusCode: StatusCode(err),
		CheckedAt:  start.UTC().Format(time.RFC3339),
		LatencyMs:  p.now().Sub(start).Milliseconds(),
	}
	if err != nil {
		status.Message = UserMessage(err)
		log.Warn().Err(err).Int("status", status.StatusCode).Msg("KARLIA probe failed")
	} else {
		status.Message = MessageProbeOK
		log.Info().Int64("latency_ms", status.LatencyMs).Msg("KARLIA probe succeeded")
	}
	p.last.Store(&status)
	return status
}

// Status returns the last probe outcome.
func (p *KarliaProbe) Status() models.ProbeStatus {
	if s := p.last.Load(); s != nil {
		return *s
	}
	return models.ProbeStatus{Message: MessageProbePending}
}
