package notify

import (
	"context"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"go.uber.org/zap"
)

type messageKind int

const (
	kindVerification messageKind = iota
	kindRecovery
)

type job struct {
	kind    messageKind
	user    domain.User
	secret  string
	attempt int
}

// Queue hands messages to a wrapped notifier from background workers, so a
// slow mail server does not hold up registration. Failed sends are retried
// after RetryDelay up to MaxAttempts times.
type Queue struct {
	next        port.Notifier
	jobs        chan job
	logger      *zap.Logger
	RetryDelay  time.Duration
	MaxAttempts int
}

var _ port.Notifier = (*Queue)(nil)

func NewQueue(next port.Notifier, size int, logger *zap.Logger) *Queue {
	return &Queue{
		next:        next,
		jobs:        make(chan job, size),
		logger:      logger,
		RetryDelay:  30 * time.Second,
		MaxAttempts: 3,
	}
}

func (q *Queue) SendVerification(ctx context.Context, user *domain.User, secret string) error {
	return q.put(ctx, job{kind: kindVerification, user: *user, secret: secret})
}

func (q *Queue) SendPasswordRecovery(ctx context.Context, user *domain.User, secret string) error {
	return q.put(ctx, job{kind: kindRecovery, user: *user, secret: secret})
}

func (q *Queue) put(ctx context.Context, j job) error {
	select {
	case q.jobs <- j:
		q.logger.Debug("message queued", zap.String("to", j.user.Email), zap.Int("attempt", j.attempt))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start runs the workers until ctx is canceled.
func (q *Queue) Start(ctx context.Context, workers int) {
	for range workers {
		go func() {
			for {
				select {
				case j := <-q.jobs:
					q.process(ctx, j)
				case <-ctx.Done():
					q.logger.Debug("notify worker finished")
					return
				}
			}
		}()
	}
}

func (q *Queue) process(ctx context.Context, j job) {
	var err error
	switch j.kind {
	case kindVerification:
		err = q.next.SendVerification(ctx, &j.user, j.secret)
	case kindRecovery:
		err = q.next.SendPasswordRecovery(ctx, &j.user, j.secret)
	}
	if err == nil {
		return
	}

	j.attempt++
	if j.attempt >= q.MaxAttempts {
		q.logger.Error("message dropped", zap.String("to", j.user.Email),
			zap.Int("attempts", j.attempt), zap.Error(err))
		return
	}
	q.logger.Warn("message send failed, retrying", zap.String("to", j.user.Email),
		zap.Duration("retry_after", q.RetryDelay), zap.Error(err))
	go q.retry(ctx, j)
}

func (q *Queue) retry(ctx context.Context, j job) {
	r := time.NewTimer(q.RetryDelay)
	defer r.Stop()

	select {
	case <-r.C:
		if err := q.put(ctx, j); err != nil {
			q.logger.Debug("retry canceled", zap.String("to", j.user.Email))
		}
	case <-ctx.Done():
	}
}
