//go:build integration

// Package containers starts the Postgres, Redis and Redpanda fixtures used by
// integration suites. Each is started once per test binary and then shared.
package containers

import (
	"sync"
	"testing"
)

// Manager hands out the shared containers, starting each on first use.
type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	kafka    *KafkaContainer
	redis    *RedisContainer
}

var (
	globalManager *Manager
	initOnce      sync.Once
)

func GetManager() *Manager {
	initOnce.Do(func() {
		globalManager = &Manager{}
	})
	return globalManager
}

// shared returns *slot, calling start to fill it the first time.
func shared[T any](m *Manager, t *testing.T, slot **T, start func(*testing.T) *T) *T {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if *slot == nil {
		*slot = start(t)
	}
	return *slot
}

func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	return shared(m, t, &m.postgres, NewPostgresContainer)
}

func (m *Manager) GetKafka(t *testing.T) *KafkaContainer {
	return shared(m, t, &m.kafka, NewKafkaContainer)
}

func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	return shared(m, t, &m.redis, NewRedisContainer)
}
