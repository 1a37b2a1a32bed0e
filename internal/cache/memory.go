package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memClient implementa Client in-process sobre go-cache.
type memClient struct {
	c *gocache.Cache
}

// NewMemory crea un cache en memoria con el TTL por defecto dado.
func NewMemory(defaultTTL time.Duration) Client {
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	return &memClient{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *memClient) Get(_ context.Context, key string) (string, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	s, _ := v.(string)
	return s, nil
}

func (m *memClient) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *memClient) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *memClient) Close() error { return nil }
