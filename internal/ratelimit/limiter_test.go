package ratelimit

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vfg2006/adsync-api/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type LimiterSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *fakeClock
	limiter Limiter
}

func TestLimiterSuite(t *testing.T) {
	suite.Run(t, new(LimiterSuite))
}

func (s *LimiterSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStoreWithClock(s.clock.Now)
	s.limiter = New(store, "platform", 3, time.Hour, WithClock(s.clock.Now))
}

func (s *LimiterSuite) TestConsomeAteOTeto() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.limiter.CheckAndConsume(s.ctx, "act_1"))
	}

	err := s.limiter.CheckAndConsume(s.ctx, "act_1")
	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrRateLimited))

	var rlErr *domain.RateLimitError
	s.Require().True(errors.As(err, &rlErr))
	s.Equal(time.Hour, rlErr.RetryAfter)
	s.Equal(3600, rlErr.RetryAfterSeconds())
}

func (s *LimiterSuite) TestChavesIndependentes() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.limiter.CheckAndConsume(s.ctx, "act_1"))
	}

	s.Error(s.limiter.CheckAndConsume(s.ctx, "act_1"))
	s.NoError(s.limiter.CheckAndConsume(s.ctx, "act_2"))
}

func (s *LimiterSuite) TestJanelaExpiradaRecomeca() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.limiter.CheckAndConsume(s.ctx, "act_1"))
	}

	s.clock.Advance(30 * time.Minute)
	err := s.limiter.CheckAndConsume(s.ctx, "act_1")
	var rlErr *domain.RateLimitError
	s.Require().True(errors.As(err, &rlErr))
	s.Equal(30*time.Minute, rlErr.RetryAfter)

	s.clock.Advance(30 * time.Minute)
	s.NoError(s.limiter.CheckAndConsume(s.ctx, "act_1"))

	status, err := s.limiter.Status(s.ctx, "act_1")
	s.Require().NoError(err)
	s.Equal(1, status.Used)
	s.Equal(2, status.Remaining)
	s.Equal(s.clock.Now().Add(time.Hour), status.ResetAt)
}

func (s *LimiterSuite) TestStatusNaoConsome() {
	status, err := s.limiter.Status(s.ctx, "act_9")
	s.Require().NoError(err)
	s.Equal(3, status.Limit)
	s.Equal(3, status.Remaining)
	s.True(status.ResetAt.IsZero())

	s.Require().NoError(s.limiter.CheckAndConsume(s.ctx, "act_9"))
	s.Require().NoError(s.limiter.CheckAndConsume(s.ctx, "act_9"))

	status, err = s.limiter.Status(s.ctx, "act_9")
	s.Require().NoError(err)
	s.Equal(2, status.Used)
	s.Equal(1, status.Remaining)

	status, err = s.limiter.Status(s.ctx, "act_9")
	s.Require().NoError(err)
	s.Equal(2, status.Used)
}

func (s *LimiterSuite) TestReset() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.limiter.CheckAndConsume(s.ctx, "act_1"))
	}
	s.Require().Error(s.limiter.CheckAndConsume(s.ctx, "act_1"))

	s.Require().NoError(s.limiter.Reset(s.ctx, "act_1"))
	s.NoError(s.limiter.CheckAndConsume(s.ctx, "act_1"))
}

func TestLimiter_Concorrencia(t *testing.T) {
	limiter := New(NewMemoryStore(), "platform", 50, time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.CheckAndConsume(context.Background(), "act_1"); err == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestLimiter_TetoPadrao(t *testing.T) {
	limiter := New(NewMemoryStore(), "platform", 0, 0)

	for i := 0; i < DefaultCalls; i++ {
		require.NoError(t, limiter.CheckAndConsume(context.Background(), "act_1"))
	}
	assert.ErrorIs(t, limiter.CheckAndConsume(context.Background(), "act_1"), domain.ErrRateLimited)
}

func TestCooldown(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	cooldown := NewCooldown(NewMemoryStoreWithClock(clock.Now), 0, WithClock(clock.Now))

	require.NoError(t, cooldown.CheckAndConsume(context.Background(), "tenant-1"))

	clock.Advance(15 * time.Second)
	err := cooldown.CheckAndConsume(context.Background(), "tenant-1")

	var rlErr *domain.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Greater(t, rlErr.RetryAfterSeconds(), 0)
	assert.LessOrEqual(t, rlErr.RetryAfterSeconds(), 60)
	assert.Equal(t, 45, rlErr.RetryAfterSeconds())
	assert.Contains(t, err.Error(), "please wait 45 seconds")

	assert.NoError(t, cooldown.CheckAndConsume(context.Background(), "tenant-2"))

	clock.Advance(45 * time.Second)
	assert.NoError(t, cooldown.CheckAndConsume(context.Background(), "tenant-1"))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR não configurado")
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer client.Close()

	store := NewRedisStore(client, "test:ratelimit:")
	limiter := New(store, "platform", 2, time.Minute)
	require.NoError(t, limiter.Reset(ctx, "act_1"))

	require.NoError(t, limiter.CheckAndConsume(ctx, "act_1"))
	require.NoError(t, limiter.CheckAndConsume(ctx, "act_1"))
	err = limiter.CheckAndConsume(ctx, "act_1")
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	status, err := limiter.Status(ctx, "act_1")
	require.NoError(t, err)
	assert.Equal(t, 0, status.Remaining)

	require.NoError(t, limiter.Reset(ctx, "act_1"))
	assert.NoError(t, limiter.CheckAndConsume(ctx, "act_1"))
}
