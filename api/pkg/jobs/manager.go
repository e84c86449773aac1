// Package jobs runs the periodic maintenance of the API server.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/log"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
)

// Job is a named task run on a cron schedule
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) (map[string]interface{}, error)
}

// Manager schedules jobs and stops them together
type Manager struct {
	cron   *cron.Cron
	logger *log.Logger
	jobs   map[string]Job
	stopCh chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
	ctx    context.Context
}

// NewManager creates a manager without jobs.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Manager{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
		jobs:   make(map[string]Job),
		stopCh: make(chan struct{}),
		ctx:    context.Background(),
	}
}

// Add registers a job. The schedule accepts standard cron expressions and
// descriptors like "@every 5m".
func (m *Manager) Add(job Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.jobs[job.Name]; exists {
		return fmt.Errorf("job %s already registered", job.Name)
	}
	if _, err := m.cron.AddFunc(job.Schedule, func() { m.execute(job) }); err != nil {
		return fmt.Errorf("invalid schedule for job %s: %w", job.Name, err)
	}
	m.jobs[job.Name] = job
	return nil
}

// Start runs the scheduler until ctx is done or Stop is called.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.ctx = ctx
	count := len(m.jobs)
	m.mu.Unlock()

	m.logger.WithField("job_count", count).Info("Starting job scheduler")
	m.cron.Start()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		select {
		case <-ctx.Done():
		case <-m.stopCh:
		}
		<-m.cron.Stop().Done()
	}()

	return nil
}

// Stop waits for running jobs and stops the scheduler.
func (m *Manager) Stop() {
	m.logger.Info("Stopping job scheduler...")
	close(m.stopCh)
	m.wg.Wait()
	m.logger.Info("Job scheduler stopped")
}

// RunNow runs a registered job immediately on the calling goroutine.
func (m *Manager) RunNow(name string) error {
	m.mu.Lock()
	job, ok := m.jobs[name]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown job %s", name)
	}
	return m.execute(job)
}

func (m *Manager) execute(job Job) error {
	m.mu.Lock()
	ctx := m.ctx
	m.mu.Unlock()

	start := time.Now()
	details, err := job.Run(ctx)
	if details == nil {
		details = map[string]interface{}{}
	}
	if err != nil {
		details["error"] = err.Error()
	}
	m.logger.LogJob(job.Name, err == nil, time.Since(start).Milliseconds(), details)
	return err
}

// Warmer refills a cache
type Warmer interface {
	Warm(ctx context.Context) (int, error)
}

// CacheWarmJob reloads the attraction cache.
func CacheWarmJob(schedule string, w Warmer) Job {
	return Job{
		Name:     "cache_warm",
		Schedule: schedule,
		Run: func(ctx context.Context) (map[string]interface{}, error) {
			n, err := w.Warm(ctx)
			return map[string]interface{}{"attractions": n}, err
		},
	}
}

// WorkspaceSweepJob closes itinerary editors idle for longer than idle.
func WorkspaceSweepJob(schedule string, ws *planner.Workspace, idle time.Duration) Job {
	return Job{
		Name:     "workspace_sweep",
		Schedule: schedule,
		Run: func(ctx context.Context) (map[string]interface{}, error) {
			removed := ws.Sweep(idle)
			return map[string]interface{}{"evicted": removed, "open": ws.Len()}, nil
		},
	}
}
