package wisp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quasilyte/gdata/v2"
	"github.com/redis/go-redis/v9"
)

// BlobStore persists opaque values by key. Get returns nil, nil for a
// missing key.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// MemoryStore is an in-process BlobStore with an optional byte capacity,
// which models the quota of client-side storage.
type MemoryStore struct {
	// Capacity bounds the total stored bytes when positive.
	Capacity int

	data map[string][]byte
	used int
}

// NewMemoryStore creates a store holding at most capacity bytes (0 for no
// limit).
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{Capacity: capacity, data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value. It returns ErrQuotaExceeded, leaving the
// previous value in place, when the write would exceed Capacity.
func (m *MemoryStore) Set(key string, value []byte) error {
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	used := m.used - len(m.data[key]) + len(value)
	if m.Capacity > 0 && used > m.Capacity {
		return fmt.Errorf("set %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
	}
	m.data[key] = append([]byte(nil), value...)
	m.used = used
	return nil
}

// Used returns the number of stored bytes.
func (m *MemoryStore) Used() int { return m.used }

// gdataObject is the gdata object all keys are stored under.
const gdataObject = "wisp"

// GdataStore persists values in the platform's per-user app data directory.
type GdataStore struct {
	m *gdata.Manager
}

// OpenGdataStore opens the app data store for appName.
func OpenGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open gdata %q: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

func (s *GdataStore) Get(key string) ([]byte, error) {
	prop := gdataProp(key)
	if !s.m.ObjectPropExists(gdataObject, prop) {
		return nil, nil
	}
	data, err := s.m.LoadObjectProp(gdataObject, prop)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return data, nil
}

func (s *GdataStore) Set(key string, value []byte) error {
	if err := s.m.SaveObjectProp(gdataObject, gdataProp(key), value); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// gdataProp maps a key onto the file-name-safe alphabet gdata accepts.
func gdataProp(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, key)
}

// RedisStore persists values in Redis under a key prefix. Each call runs
// with its own timeout.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore wraps an existing client. Keys are stored as prefix+key.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, timeout: 2 * time.Second}
}

// DialRedisStore connects to addr and verifies the connection.
func DialRedisStore(ctx context.Context, addr, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return NewRedisStore(client, prefix), nil
}

func (s *RedisStore) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, nil
}

func (s *RedisStore) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
