package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	mu       sync.Mutex
	failures int
	sent     []string
}

func (r *recorder) record(kind string, user *domain.User, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("smtp down")
	}
	r.sent = append(r.sent, kind+":"+user.Email+":"+secret)
	return nil
}

func (r *recorder) SendVerification(_ context.Context, user *domain.User, secret string) error {
	return r.record("verify", user, secret)
}

func (r *recorder) SendPasswordRecovery(_ context.Context, user *domain.User, secret string) error {
	return r.record("recover", user, secret)
}

func (r *recorder) Sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func TestQueue_Delivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	q := NewQueue(rec, 4, zap.NewNop())
	q.Start(ctx, 2)

	user := &domain.User{Email: "ana@example.com"}
	require.NoError(t, q.SendVerification(ctx, user, "s1"))
	require.NoError(t, q.SendPasswordRecovery(ctx, user, "s2"))

	assert.Eventually(t, func() bool { return len(rec.Sent()) == 2 }, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{"verify:ana@example.com:s1", "recover:ana@example.com:s2"}, rec.Sent())
}

func TestQueue_Retries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{failures: 2}
	q := NewQueue(rec, 1, zap.NewNop())
	q.RetryDelay = time.Millisecond
	q.Start(ctx, 1)

	require.NoError(t, q.SendVerification(ctx, &domain.User{Email: "bob@example.com"}, "s"))

	assert.Eventually(t, func() bool { return len(rec.Sent()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestQueue_GivesUp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{failures: 5}
	q := NewQueue(rec, 1, zap.NewNop())
	q.RetryDelay = time.Millisecond
	q.MaxAttempts = 2
	q.Start(ctx, 1)

	require.NoError(t, q.SendVerification(ctx, &domain.User{Email: "bob@example.com"}, "s"))

	assert.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return rec.failures == 3
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, rec.Sent())
}

func TestQueue_PutCanceled(t *testing.T) {
	q := NewQueue(&recorder{}, 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.SendVerification(ctx, &domain.User{Email: "a@b.c"}, "s")
	assert.ErrorIs(t, err, context.Canceled)
}
