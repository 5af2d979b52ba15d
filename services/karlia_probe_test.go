package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestKarliaProbeRecordsOutcome(t *testing.T) {
	var fail bool
	probe := NewKarliaProbe(pingerFunc(func(ctx context.Context) error {
		if fail {
			return &UpstreamError{StatusCode: 401}
		}
		return nil
	}), time.Second)

	if s := probe.Status(); s.OK || s.Message != MessageProbePending {
		t.Fatalf("expected pending status before the first run, got %+v", s)
	}

	if s := probe.Run(context.Background()); !s.OK || s.Message != MessageProbeOK || s.CheckedAt == "" {
		t.Fatalf("unexpected success status %+v", s)
	}

	fail = true
	probe.Run(context.Background())
	s := probe.Status()
	if s.OK || s.StatusCode != 401 || s.Message != MessageAuthFailed {
		t.Fatalf("unexpected failure status %+v", s)
	}
}

func TestKarliaProbeSkipsOverlappingRuns(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	probe := NewKarliaProbe(pingerFunc(func(ctx context.Context) error {
		close(entered)
		<-release
		return errors.New("late")
	}), 0)

	done := make(chan struct{})
	go func() {
		probe.Run(context.Background())
		close(done)
	}()
	<-entered

	if s := probe.Run(context.Background()); s.Message != MessageProbePending {
		t.Fatalf("overlapping run should return the previous status, got %+v", s)
	}
	close(release)
	<-done
	if probe.Status().OK {
		t.Fatalf("expected failed status after the first run completed")
	}
}

func TestKarliaProbeSchedule(t *testing.T) {
	probe := NewKarliaProbe(pingerFunc(func(ctx context.Context) error { return nil }), time.Second)
	c := cron.New()
	if _, err := probe.Schedule(c, "@every 1h"); err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}
	if _, err := probe.Schedule(c, "not a schedule"); err == nil {
		t.Fatalf("expected an error for an invalid schedule")
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("expected one cron entry, got %d", len(c.Entries()))
	}
}
