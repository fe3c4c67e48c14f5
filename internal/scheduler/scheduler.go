package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
)

// Digester posts a ranking digest.
type Digester interface {
	SendRankingDigest(ctx context.Context, period ranking.Period, mode ranking.Mode, dryRun bool) error
}

// Scheduler runs the recurring jobs of the club.
type Scheduler struct {
	cron     gocron.Scheduler
	digester Digester
	timeout  time.Duration
}

// DigestJobName identifies the weekly ranking job.
const DigestJobName = "weekly-ranking-digest"

// New creates a Scheduler whose cron expressions are read in loc.
func New(digester Digester, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	cron, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{cron: cron, digester: digester, timeout: time.Minute}, nil
}

// ScheduleDigest registers the weekly doubles ranking digest on crontab.
func (s *Scheduler) ScheduleDigest(crontab string) (gocron.Job, error) {
	job, err := s.cron.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(s.RunDigest),
		gocron.WithName(DigestJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule digest %q: %w", crontab, err)
	}
	log.Info("Scheduled ranking digest", "cron", crontab, "jobID", job.ID())
	return job, nil
}

// RunDigest sends the digest once. Errors are logged since no caller waits on a job.
func (s *Scheduler) RunDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.digester.SendRankingDigest(ctx, ranking.Week, ranking.Doubles, false); err != nil {
		log.Error("Ranking digest failed", "error", err)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}
