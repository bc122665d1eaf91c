package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nutrilife/backend/internal/nutrition"
)

// DefaultSummarySpec runs shortly after midnight.
const DefaultSummarySpec = "5 0 * * *"

// SummaryRecomputer rebuilds every user's summary row for one date.
type SummaryRecomputer interface {
	RecomputeAll(ctx context.Context, date string) (int, error)
}

// NightlySummaryJob recomputes the previous day's summaries so late edits
// and out-of-band writes are reflected.
type NightlySummaryJob struct {
	summaries SummaryRecomputer
	loc       *time.Location
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewNightlySummaryJob(summaries SummaryRecomputer, loc *time.Location, logger *zap.Logger) *NightlySummaryJob {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NightlySummaryJob{
		summaries: summaries,
		loc:       loc,
		timeout:   10 * time.Minute,
		now:       time.Now,
		logger:    logger,
	}
}

// SetClock overrides the time source.
func (j *NightlySummaryJob) SetClock(now func() time.Time) {
	j.now = now
}

// Run implements cron.Job.
func (j *NightlySummaryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	yesterday := nutrition.DateKey(j.now().In(j.loc).AddDate(0, 0, -1))
	_, _ = j.RunFor(ctx, yesterday)
}

// RunFor recomputes the summaries of date and reports how many users were touched.
func (j *NightlySummaryJob) RunFor(ctx context.Context, date string) (int, error) {
	start := time.Now()
	n, err := j.summaries.RecomputeAll(ctx, date)
	if err != nil {
		j.logger.Error("nightly summary failed", zap.String("date", date), zap.Error(err))
		return n, err
	}
	j.logger.Info("nightly summary done",
		zap.String("date", date),
		zap.Int("users", n),
		zap.Duration("took", time.Since(start)))
	return n, nil
}

// Scheduler owns the cron runner for background jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		logger: logger,
	}
}

// Add registers job under a standard five-field cron spec.
func (s *Scheduler) Add(spec, name string, job cron.Job) error {
	if spec == "" {
		spec = DefaultSummarySpec
	}
	id, err := s.cron.AddJob(spec, job)
	if err != nil {
		return err
	}
	s.logger.Info("scheduled job", zap.String("job", name), zap.String("spec", spec), zap.Int("entry", int(id)))
	return nil
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}
