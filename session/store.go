package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 以Session ID分組的欄位儲存，欄位不存在時Get回傳nil
type Store interface {
	Exists(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id, field string) ([]byte, error)
	Set(ctx context.Context, id, field string, value []byte) error
	Delete(ctx context.Context, id string, fields ...string) error
	Destroy(ctx context.Context, id string) error
	Rename(ctx context.Context, oldID, newID string) error
	Touch(ctx context.Context, id string) error
}

const redisKeyPrefix = "session:"

// RedisStore 每個Session存成一個Redis hash，每次寫入都會延長TTL
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, redisKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Get(ctx context.Context, id, field string) ([]byte, error) {
	value, err := s.rdb.HGet(ctx, redisKey(id), field).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, id, field string, value []byte) error {
	key := redisKey(id)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, field, value)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, id string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return s.rdb.HDel(ctx, redisKey(id), fields...).Err()
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisKey(id)).Err()
}

func (s *RedisStore) Rename(ctx context.Context, oldID, newID string) error {
	exists, err := s.Exists(ctx, oldID)
	if err != nil {
		return err
	}
	//舊Session沒有資料則不需搬移
	if !exists {
		return nil
	}
	return s.rdb.Rename(ctx, redisKey(oldID), redisKey(newID)).Err()
}

func (s *RedisStore) Touch(ctx context.Context, id string) error {
	return s.rdb.Expire(ctx, redisKey(id), s.ttl).Err()
}

type memoryEntry struct {
	fields    map[string][]byte
	expiresAt time.Time
}

// MemoryStore 單一程序內的Session儲存，用於測試及不使用Redis的開發環境
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

// 取得未過期的entry，過期則順便刪除
func (s *MemoryStore) entry(id string) *memoryEntry {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return nil
	}
	return e
}

func (s *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry(id) != nil, nil
}

func (s *MemoryStore) Get(_ context.Context, id, field string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(id)
	if e == nil {
		return nil, nil
	}
	value, ok := e.fields[field]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, id, field string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(id)
	if e == nil {
		e = &memoryEntry{fields: make(map[string][]byte)}
		s.entries[id] = e
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	e.fields[field] = stored
	e.expiresAt = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string, fields ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(id)
	if e == nil {
		return nil
	}
	for _, field := range fields {
		delete(e.fields, field)
	}
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) Rename(_ context.Context, oldID, newID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(oldID)
	if e == nil {
		return nil
	}
	delete(s.entries, oldID)
	s.entries[newID] = e
	return nil
}

func (s *MemoryStore) Touch(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.entry(id); e != nil {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return nil
}
