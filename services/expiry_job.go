package services

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// PerformaExpirer moves overdue performas to EXPIRED.
type PerformaExpirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// SessionCleaner removes sessions that have expired.
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// ExpiryJob is the nightly maintenance run. Overlapping runs are skipped.
type ExpiryJob struct {
	performas PerformaExpirer
	sessions  SessionCleaner
	now       func() time.Time
	running   int32
}

func NewExpiryJob(performas PerformaExpirer, sessions SessionCleaner) *ExpiryJob {
	return &ExpiryJob{performas: performas, sessions: sessions, now: time.Now}
}

// Run is the cron entry point.
func (j *ExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	j.RunOnce(ctx)
}

// RunOnce executes one pass and reports whether it ran (false when a pass was already running).
func (j *ExpiryJob) RunOnce(ctx context.Context) bool {
	if !atomic.CompareAndSwapInt32(&j.running, 0, 1) {
		log.Println("[ExpiryJob] Previous run still in progress, skipping")
		return false
	}
	defer atomic.StoreInt32(&j.running, 0)

	start := time.Now()
	log.Println("[ExpiryJob] Starting")

	expired, err := j.performas.ExpireOverdue(ctx, j.now())
	if err != nil {
		log.Printf("[ExpiryJob] Failed to expire performas: %v", err)
	} else {
		log.Printf("[ExpiryJob] Expired %d performas", expired)
	}

	if j.sessions != nil {
		removed, err := j.sessions.CleanupExpiredSessions(ctx)
		if err != nil {
			log.Printf("[ExpiryJob] Failed to clean up sessions: %v", err)
		} else {
			log.Printf("[ExpiryJob] Removed %d expired sessions", removed)
		}
	}

	log.Printf("[ExpiryJob] Finished in %v", time.Since(start))
	return true
}
