package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/slabtrack/slabtrack-backend/internal/submissions"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
)

type fakeStaleSubmissionRepo struct {
	counts     []submissions.StalledCount
	lastCutoff time.Time
	err        error
}

func (f *fakeStaleSubmissionRepo) CountStalled(ctx context.Context, cutoff time.Time) ([]submissions.StalledCount, error) {
	f.lastCutoff = cutoff
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

func TestStaleSubmissionJobUsesConfiguredCutoff(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeStaleSubmissionRepo{counts: []submissions.StalledCount{
		{Status: enums.SubmissionStatusShipped, Count: 3},
		{Status: enums.SubmissionStatusProcessing, Count: 1},
	}}
	job := newStaleSubmissionJob(t, repo, 10)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expected := now.UTC().Add(-10 * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expected) {
		t.Fatalf("expected cutoff %s, got %s", expected, repo.lastCutoff)
	}
}

func TestStaleSubmissionJobDefaultsThreshold(t *testing.T) {
	repo := &fakeStaleSubmissionRepo{}
	job := newStaleSubmissionJob(t, repo, 0)
	if job.staleDays != staleSubmissionDays {
		t.Fatalf("expected default %d days, got %d", staleSubmissionDays, job.staleDays)
	}
}

func TestStaleSubmissionJobPropagatesError(t *testing.T) {
	repo := &fakeStaleSubmissionRepo{err: errors.New("boom")}
	job := newStaleSubmissionJob(t, repo, 10)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newStaleSubmissionJob(t *testing.T, repo *fakeStaleSubmissionRepo, staleDays int) *staleSubmissionJob {
	t.Helper()
	jobIface, err := NewStaleSubmissionJob(StaleSubmissionJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: repo,
		StaleDays:  staleDays,
	})
	if err != nil {
		t.Fatalf("NewStaleSubmissionJob: %v", err)
	}
	job, ok := jobIface.(*staleSubmissionJob)
	if !ok {
		t.Fatalf("expected staleSubmissionJob, got %T", jobIface)
	}
	return job
}
