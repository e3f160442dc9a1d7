package ratelimit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/domain"
)

const (
	DefaultCalls  = 200
	DefaultWindow = time.Hour
)

//go:generate mockgen -source=limiter.go -destination=mocks/limiter.go -package=mocks

// Limiter controla a cota de chamadas por chave (conta de anúncios ou tenant)
type Limiter interface {
	// CheckAndConsume consome uma chamada ou retorna *domain.RateLimitError quando a cota acabou
	CheckAndConsume(ctx context.Context, key string) error
	Status(ctx context.Context, key string) (*Status, error)
	Reset(ctx context.Context, key string) error
}

// Window é a janela de contagem de uma chave
type Window struct {
	Count   int
	ResetAt time.Time
}

// Status é a visão de leitura de uma janela
type Status struct {
	Key       string    `json:"key"`
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at,omitempty"`
}

// Store guarda as janelas. A mesma semântica vale para memória e Redis.
type Store interface {
	// Consume incrementa a janela da chave e retorna o estado resultante.
	// Quando a janela expirou ela é recriada com Count = 1. Quando a cota acabou, nada é incrementado
	// e allowed é false.
	Consume(ctx context.Context, key string, limit int, window time.Duration) (w Window, allowed bool, err error)
	Get(ctx context.Context, key string) (*Window, error)
	Delete(ctx context.Context, key string) error
}

type limiter struct {
	store   Store
	limit   int
	window  time.Duration
	scope   string
	now     func() time.Time
	rejects prometheus.Counter
}

type Option func(*limiter)

// WithClock substitui o relógio, usado nos testes
func WithClock(now func() time.Time) Option {
	return func(l *limiter) {
		l.now = now
	}
}

// WithRejectionCounter registra cada rejeição no contador informado
func WithRejectionCounter(c prometheus.Counter) Option {
	return func(l *limiter) {
		l.rejects = c
	}
}

// New cria um limitador com teto de limit chamadas por janela
func New(store Store, scope string, limit int, window time.Duration, opts ...Option) Limiter {
	if limit <= 0 {
		limit = DefaultCalls
	}
	if window <= 0 {
		window = DefaultWindow
	}

	l := &limiter{
		store:  store,
		limit:  limit,
		window: window,
		scope:  scope,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *limiter) CheckAndConsume(ctx context.Context, key string) error {
	w, allowed, err := l.store.Consume(ctx, key, l.limit, l.window)
	if err != nil {
		return err
	}

	if allowed {
		return nil
	}

	retryAfter := w.ResetAt.Sub(l.now())

	if l.rejects != nil {
		l.rejects.Inc()
	}

	logrus.WithFields(logrus.Fields{
		"scope":       l.scope,
		"key":         key,
		"limit":       l.limit,
		"retry_after": retryAfter.String(),
	}).Warn("ratelimit: cota esgotada")

	return domain.NewRateLimitError(l.scope, retryAfter)
}

func (l *limiter) Status(ctx context.Context, key string) (*Status, error) {
	status := &Status{Key: key, Limit: l.limit, Remaining: l.limit}

	w, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if w == nil || !l.now().Before(w.ResetAt) {
		return status, nil
	}

	status.Used = w.Count
	status.Remaining = max(l.limit-w.Count, 0)
	status.ResetAt = w.ResetAt

	return status, nil
}

func (l *limiter) Reset(ctx context.Context, key string) error {
	return l.store.Delete(ctx, key)
}
