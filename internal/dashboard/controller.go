// Package dashboard keeps the locally cached job list and skill set in sync
// with the remote monitor.
//
// Jobs are read-only and refreshed on a timer; a failed refresh keeps the last
// good list. Skills are edited locally first and then pushed whole to the
// monitor, in edit order, without waiting for or reconciling with its answer.
package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobmonitor/internal/domain"
	"jobmonitor/internal/events"
	"jobmonitor/internal/scheduler"
)

const (
	JobsErrorMessage     = "Failed to fetch jobs"
	SettingsErrorMessage = "Failed to fetch settings"

	DefaultRefreshInterval = 30 * time.Second
	DefaultCheckInterval   = 300
	DefaultRequestTimeout  = 15 * time.Second
)

// Source is the remote monitor as the controller sees it.
type Source interface {
	ListJobs(ctx context.Context) ([]domain.Job, error)
	GetSettings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, u domain.SettingsUpdate) error
}

// Publisher receives a notification after every state change.
type Publisher interface {
	Publish(typ string, data any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

type Options struct {
	RefreshInterval time.Duration
	// CheckInterval is sent with every settings push, in seconds.
	CheckInterval  int
	RequestTimeout time.Duration
	TickSource     scheduler.TickSource
}

// State is a copy of everything the controller knows.
type State struct {
	Loading       bool
	Jobs          []domain.Job
	Skills        domain.SkillSet
	JobsError     string
	SettingsError string
	JobsUpdatedAt time.Time
	// ServerCheckInterval is what the monitor last reported, 0 if unknown.
	ServerCheckInterval int
}

type Controller struct {
	src    Source
	pub    Publisher
	logger *zap.Logger
	opts   Options

	mu    sync.Mutex
	state State
	timer *scheduler.Handle

	// skill lists waiting to be sent, oldest first; pushing is set while the
	// sender goroutine runs
	pending []domain.SkillSet
	pushing bool

	inflight sync.WaitGroup
}

func New(src Source, pub Publisher, logger *zap.Logger, opts Options) *Controller {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = DefaultCheckInterval
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if pub == nil {
		pub = nopPublisher{}
	}
	return &Controller{
		src:    src,
		pub:    pub,
		logger: logger,
		opts:   opts,
		state:  State{Loading: true, Skills: domain.SkillSet{}},
	}
}

// Mount fetches jobs and settings once, concurrently, and starts the job
// refresh timer. It returns without waiting for either fetch. Calling Mount
// on a mounted controller does nothing.
func (c *Controller) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		return
	}

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		start := time.Now()

		var g errgroup.Group
		g.Go(func() error { c.RefreshJobs(); return nil })
		g.Go(func() error { c.LoadSkills(); return nil })
		_ = g.Wait()

		c.logger.Info("initial sync finished", zap.Duration("took", time.Since(start)))
	}()

	var opts []scheduler.Option
	if c.opts.TickSource != nil {
		opts = append(opts, scheduler.WithTickSource(c.opts.TickSource))
	}
	c.timer = scheduler.Every(context.Background(), c.opts.RefreshInterval, "refresh-jobs", c.onTick, c.logger, opts...)
	c.logger.Info("dashboard mounted", zap.Duration("refresh_interval", c.opts.RefreshInterval))
}

// Unmount stops the refresh timer. Requests already in flight are not
// aborted; their results still land in the state.
func (c *Controller) Unmount() {
	c.mu.Lock()
	timer := c.timer
	c.timer = nil
	c.mu.Unlock()

	if timer != nil {
		timer.Stop()
		c.logger.Info("dashboard unmounted")
	}
}

// Wait blocks until every fetch and push started so far has settled.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// onTick never waits on the fetch it starts, so a slow response does not
// delay the next tick. Overlapping responses land in settle order.
func (c *Controller) onTick(context.Context) error {
	c.goAsync(c.RefreshJobs)
	return nil
}

func (c *Controller) goAsync(f func()) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		f()
	}()
}

func (c *Controller) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.opts.RequestTimeout)
}

// RefreshJobs replaces the job snapshot on success. On failure the previous
// snapshot stays and the jobs error is set. No retry; the next tick is the retry.
func (c *Controller) RefreshJobs() {
	ctx, cancel := c.requestContext()
	defer cancel()

	jobs, err := c.src.ListJobs(ctx)

	c.mu.Lock()
	c.state.Loading = false
	if err != nil {
		c.state.JobsError = JobsErrorMessage
	} else {
		c.state.Jobs = jobs
		c.state.JobsError = ""
		c.state.JobsUpdatedAt = time.Now()
	}
	kept := len(c.state.Jobs)
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("job refresh failed", zap.Int("kept_jobs", kept), zap.Error(err))
		c.pub.Publish(events.TypeJobsFailed, map[string]any{"error": JobsErrorMessage})
		return
	}
	c.logger.Debug("jobs refreshed", zap.Int("jobs", kept))
	c.pub.Publish(events.TypeJobsRefreshed, map[string]any{"count": kept})
}

// LoadSkills replaces the local skill list with the monitor's.
func (c *Controller) LoadSkills() {
	ctx, cancel := c.requestContext()
	defer cancel()

	settings, err := c.src.GetSettings(ctx)

	c.mu.Lock()
	if err != nil {
		c.state.SettingsError = SettingsErrorMessage
	} else {
		c.state.Skills = settings.Skills.Clone()
		c.state.SettingsError = ""
		c.state.ServerCheckInterval = int(settings.CheckInterval)
	}
	skills := c.state.Skills.Clone()
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("settings load failed", zap.Error(err))
		c.pub.Publish(events.TypeSettingsFailed, map[string]any{"error": SettingsErrorMessage})
		return
	}
	c.logger.Debug("skills loaded", zap.Strings("skills", skills))
	c.pub.Publish(events.TypeSkillsLoaded, map[string]any{"skills": skills})
}

// AddSkill appends name and pushes the new list. Empty or already present
// names (exact, case-sensitive) are ignored and nothing is pushed.
func (c *Controller) AddSkill(name string) bool {
	c.mu.Lock()
	next, added := c.state.Skills.With(name)
	if !added {
		c.mu.Unlock()
		return false
	}
	c.state.Skills = next
	snapshot := next.Clone()
	c.enqueuePushLocked(snapshot)
	c.mu.Unlock()

	c.logger.Info("skill added", zap.String("skill", name))
	c.pub.Publish(events.TypeSkillsChanged, map[string]any{"skills": snapshot})
	return true
}

// RemoveSkill drops every exact match of name and pushes the result, even
// when nothing matched.
func (c *Controller) RemoveSkill(name string) int {
	c.mu.Lock()
	next, removed := c.state.Skills.Without(name)
	c.state.Skills = next
	snapshot := next.Clone()
	c.enqueuePushLocked(snapshot)
	c.mu.Unlock()

	c.logger.Info("skill removed", zap.String("skill", name), zap.Int("matches", removed))
	c.pub.Publish(events.TypeSkillsChanged, map[string]any{"skills": snapshot})
	return removed
}

// enqueuePushLocked queues skills behind any push not yet sent. Callers hold
// c.mu, so queue order is the order the local list changed in. One sender
// drains the queue, which keeps the monitor's final list equal to ours.
func (c *Controller) enqueuePushLocked(skills domain.SkillSet) {
	c.pending = append(c.pending, skills)
	if c.pushing {
		return
	}
	c.pushing = true
	c.goAsync(c.drainPushes)
}

func (c *Controller) drainPushes() {
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.pushing = false
			c.mu.Unlock()
			return
		}
		skills := c.pending[0]
		c.pending[0] = nil
		c.pending = c.pending[1:]
		c.mu.Unlock()

		c.push(skills)
	}
}

// push sends one list. A failure is logged but never surfaced or rolled
// back: the local list stays ahead of the monitor until the next successful push.
func (c *Controller) push(skills domain.SkillSet) {
	ctx, cancel := c.requestContext()
	defer cancel()

	err := c.src.UpdateSettings(ctx, domain.SettingsUpdate{
		Skills:        skills,
		CheckInterval: c.opts.CheckInterval,
	})
	if err != nil {
		c.logger.Warn("settings push failed", zap.Strings("skills", skills), zap.Error(err))
		return
	}
	c.logger.Debug("settings pushed", zap.Int("skills", len(skills)))
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Jobs = append([]domain.Job(nil), c.state.Jobs...)
	s.Skills = c.state.Skills.Clone()
	return s
}

func (c *Controller) Skills() domain.SkillSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Skills.Clone()
}

func (c *Controller) View() View {
	return BuildView(c.Snapshot())
}
