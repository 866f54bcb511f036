// Package scheduler runs the deferred tasks the core arms during request
// handling: scheduled sends and standup flushes. Each task is a one-shot
// timer; once armed it always fires (there is no cancellation path). Tasks
// mutate shared state by re-entering the store through its lock, which
// serializes them against concurrent request handling.
package scheduler

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler arms one-shot deferred tasks. A failing task is logged and
// contained; it never takes the process down.
type Scheduler struct {
	log zerolog.Logger
	wg  sync.WaitGroup
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Schedule arms task to run once after delay. Non-positive delays fire
// immediately. The name identifies the task in logs only.
func (s *Scheduler) Schedule(name string, delay time.Duration, task func()) {
	if delay < 0 {
		delay = 0
	}
	s.wg.Add(1)
	time.AfterFunc(delay, func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Str("task", name).Any("panic", r).Msg("deferred task panicked")
			}
		}()
		s.log.Debug().Str("task", name).Msg("deferred task firing")
		task()
	})
}

// Wait blocks until every armed task has fired. Intended for shutdown and
// tests; new tasks armed while waiting are waited on as well.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
