package ratelimit

import "time"

const DefaultCooldown = 60 * time.Second

// NewCooldown cria o limitador de uma chamada por janela usado pelo pull-sync.
// A janela começa no momento da chamada, independente do resultado.
func NewCooldown(store Store, window time.Duration, opts ...Option) Limiter {
	if window <= 0 {
		window = DefaultCooldown
	}
	return New(store, "sync_cooldown", 1, window, opts...)
}
