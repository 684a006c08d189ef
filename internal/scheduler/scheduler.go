package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context) error

// TickSource returns a tick channel and a stop func. Tests swap in a manual one.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

func realTicks(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

type Option func(*Handle)

func WithTickSource(src TickSource) Option {
	return func(h *Handle) { h.ticks = src }
}

// Handle owns one periodic task. Stop cancels it and returns only after the
// loop has exited, so no tick fires after Stop.
type Handle struct {
	name     string
	interval time.Duration
	task     Task
	logger   *zap.Logger
	ticks    TickSource

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func Every(parent context.Context, interval time.Duration, name string, task Task, logger *zap.Logger, opts ...Option) *Handle {
	h := &Handle{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
		ticks:    realTicks,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	ctx, cancel := context.WithCancel(parent)
	h.cancel = cancel

	c, stop := h.ticks(interval)
	go h.loop(ctx, c, stop)

	logger.Debug("scheduled task started", zap.String("task", name), zap.Duration("interval", interval))
	return h
}

func (h *Handle) loop(ctx context.Context, c <-chan time.Time, stop func()) {
	defer close(h.done)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c:
			// a tick racing with Stop loses
			if ctx.Err() != nil {
				return
			}
			h.run(ctx)
		}
	}
}

func (h *Handle) run(ctx context.Context) {
	if err := h.task(ctx); err != nil {
		h.logger.Warn("scheduled task failed", zap.String("task", h.name), zap.Error(err))
	}
}

func (h *Handle) Stop() {
	h.once.Do(func() {
		h.cancel()
		<-h.done
		h.logger.Debug("scheduled task stopped", zap.String("task", h.name))
	})
}
