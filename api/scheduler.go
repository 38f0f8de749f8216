/*
scheduler.go - Daily attendance auto-reset

PURPOSE:
  Clears the previous day's attendance marks when the calendar date rolls
  over, so every morning starts from a clean slate. The same reset is also
  reachable via POST /api/attendance/auto-reset for cron-driven setups.

DESIGN:
  - Background goroutine with a configurable check interval
  - Tracks the last date it reset for; fires once per date change
  - A date with no marks is a no-op (nothing deleted, nothing logged)

USAGE:
  scheduler := NewAutoResetScheduler(facade)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: TriggerAutoReset endpoint (manual/cron reset)
  - staff/facade.go: ResetDailyAttendance
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/staffdesk/staff"
)

// AutoResetScheduler clears yesterday's attendance when the date changes.
type AutoResetScheduler struct {
	Facade        *staff.Facade
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex

	// resetMu guards lastDate separately from the Start/Stop mutex, so a
	// tick firing during Stop cannot deadlock against wg.Wait.
	resetMu  sync.Mutex
	lastDate string
}

// NewAutoResetScheduler creates a new scheduler.
func NewAutoResetScheduler(f *staff.Facade) *AutoResetScheduler {
	return &AutoResetScheduler{
		Facade:        f,
		CheckInterval: 1 * time.Minute,
		Enabled:       true,
		stop:          make(chan bool),
		lastDate:      staff.Today(),
	}
}

// Start begins the scheduler.
func (s *AutoResetScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.wg.Add(1)

	go s.run()

	log.Printf("[Scheduler] Started with check interval: %v", s.CheckInterval)
}

// Stop stops the scheduler.
func (s *AutoResetScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (s *AutoResetScheduler) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ticker.C:
			s.checkAndReset()
		case <-s.stop:
			return
		}
	}
}

// checkAndReset fires the reset once per date rollover. Clearing today's
// table removes any marks left over from yesterday's session; marks made
// today (after the rollover) are untouched on subsequent ticks.
func (s *AutoResetScheduler) checkAndReset() {
	s.resetMu.Lock()
	defer s.resetMu.Unlock()

	today := staff.Today()
	if today == s.lastDate {
		return
	}

	ctx := context.Background()
	count, err := s.Facade.ResetDailyAttendance(ctx, s.lastDate)
	if err != nil {
		log.Printf("[Scheduler] Error resetting attendance for %s: %v", s.lastDate, err)
		return
	}
	if count > 0 {
		log.Printf("[Scheduler] Date rolled over to %s: cleared %d stale records", today, count)
	}
	s.lastDate = today
}

// RunNow triggers an immediate check (for testing/admin).
func (s *AutoResetScheduler) RunNow() {
	s.checkAndReset()
}
