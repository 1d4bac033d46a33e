package collector

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler runs collection passes on a fixed interval so district series
// pick up new months without manual triggering.
type Scheduler struct {
	collector *Collector
	logger    *logrus.Logger
	interval  time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	runMutex  sync.Mutex // Ensures collection passes never overlap
}

func NewScheduler(collector *Collector, interval time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		collector: collector,
		logger:    logger,
		interval:  interval,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the scheduling loop in the background.
func (s *Scheduler) Start() {
	s.logger.WithField("interval", s.interval.String()).Info("Starting collection scheduler")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()
}

func (s *Scheduler) runOnce() {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s.collector.CollectAll(ctx)
}

// Stop halts the scheduler and waits for an in-flight pass to finish.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
	s.logger.Info("Collection scheduler stopped")
}
