package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/slabtrack/slabtrack-backend/internal/submissions"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
)

const staleSubmissionDays = 45

type staleSubmissionRepo interface {
	CountStalled(ctx context.Context, cutoff time.Time) ([]submissions.StalledCount, error)
}

type StaleSubmissionJobParams struct {
	Logger     *logger.Logger
	Repository staleSubmissionRepo
	StaleDays  int
}

// NewStaleSubmissionJob reports submissions stuck in a non-terminal status,
// so overdue shipments to grading companies surface in the logs.
func NewStaleSubmissionJob(params StaleSubmissionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("submissions repository required")
	}
	staleDays := params.StaleDays
	if staleDays <= 0 {
		staleDays = staleSubmissionDays
	}
	return &staleSubmissionJob{
		logg:      params.Logger,
		repo:      params.Repository,
		staleDays: staleDays,
		now:       time.Now,
	}, nil
}

type staleSubmissionJob struct {
	logg      *logger.Logger
	repo      staleSubmissionRepo
	staleDays int
	now       func() time.Time
}

func (j *staleSubmissionJob) Name() string { return "stale-submissions" }

func (j *staleSubmissionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.staleDays) * 24 * time.Hour)
	counts, err := j.repo.CountStalled(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("stale submissions: %w", err)
	}

	var total int64
	fields := map[string]any{
		"cutoff":     cutoff,
		"stale_days": j.staleDays,
	}
	for _, bucket := range counts {
		total += bucket.Count
		fields["status_"+string(bucket.Status)] = bucket.Count
	}
	fields["stalled_total"] = total

	logCtx := j.logg.WithFields(ctx, fields)
	if total > 0 {
		j.logg.Warn(logCtx, "submissions stalled past threshold")
	} else {
		j.logg.Info(logCtx, "no stalled submissions")
	}
	return nil
}
