package jobs

import (
	"context"
	"log"
	"time"
)

// SessionStore deletes stale login sessions
type SessionStore interface {
	SweepSessions(ctx context.Context, retention time.Duration) (int64, error)
}

// SessionSweeper periodically removes expired and revoked sessions
type SessionSweeper struct {
	store     SessionStore
	interval  time.Duration
	retention time.Duration
	stopChan  chan struct{}
	done      chan struct{}
}

// NewSessionSweeper creates a new session sweeper job
func NewSessionSweeper(store SessionStore, interval, retention time.Duration) *SessionSweeper {
	return &SessionSweeper{
		store:     store,
		interval:  interval,
		retention: retention,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start runs one sweep immediately and then one per interval until Stop
func (s *SessionSweeper) Start() {
	log.Printf("[SessionSweeper] Starting session sweep job (interval: %v, retention: %v)", s.interval, s.retention)
	defer close(s.done)

	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			log.Println("[SessionSweeper] Stopping session sweep job")
			return
		}
	}
}

// Stop ends the loop and waits for an in-flight sweep to finish
func (s *SessionSweeper) Stop() {
	close(s.stopChan)
	<-s.done
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.store.SweepSessions(ctx, s.retention)
	if err != nil {
		log.Printf("[SessionSweeper] Error deleting stale sessions: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[SessionSweeper] Deleted %d stale session(s)", n)
	}
}
