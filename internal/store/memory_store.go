package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/garbagesocial/gsclient/internal/config"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/models"
)

// memoryStore is the map-backed LocalStore used for tests and ":memory:"
// runs. It applies the same envelope and expiration semantics as the
// SQLite store but nothing survives the process.
type memoryStore struct {
	defaultTTL time.Duration
	logger     *logger.Logger

	mu    sync.RWMutex
	items map[string]models.StorageItem

	now func() time.Time
}

// NewMemory returns a non-durable LocalStore.
func NewMemory(defaultTTL time.Duration, log *logger.Logger) LocalStore {
	if defaultTTL <= 0 {
		defaultTTL = config.DefaultExpiration
	}
	return &memoryStore{
		defaultTTL: defaultTTL,
		logger:     log,
		items:      make(map[string]models.StorageItem),
		now:        time.Now,
	}
}

func (s *memoryStore) Put(ctx context.Context, key string, value any, opts ...PutOption) error {
	o := applyPutOptions(opts)

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrEncode, key, err)
	}

	now := s.now()
	item := models.StorageItem{
		Data:          payload,
		Timestamp:     now,
		SchemaVersion: SchemaVersion,
		SyncStatus:    o.status,
	}
	if !o.never {
		ttl := s.defaultTTL
		if o.expiration != nil {
			ttl = *o.expiration
		}
		exp := now.Add(ttl)
		item.ExpiresAt = &exp
	}

	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()

	return nil
}

func (s *memoryStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	item, ok := s.loadAlive(key)
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(item.Data, dest); err != nil {
		return false, fmt.Errorf("%w: key %s: %v", ErrDecode, key, err)
	}

	return true, nil
}

func (s *memoryStore) GetMeta(ctx context.Context, key string) (models.ItemMeta, bool, error) {
	item, ok := s.loadAlive(key)
	if !ok {
		return models.ItemMeta{}, false, nil
	}

	return models.ItemMeta{
		Key:           key,
		Timestamp:     item.Timestamp,
		ExpiresAt:     item.ExpiresAt,
		SchemaVersion: item.SchemaVersion,
		SyncStatus:    item.SyncStatus,
	}, true, nil
}

func (s *memoryStore) MarkPending(ctx context.Context, key string) error {
	return s.setStatus(key, models.StatusPending)
}

func (s *memoryStore) MarkSynced(ctx context.Context, key string) error {
	return s.setStatus(key, models.StatusSynced)
}

func (s *memoryStore) setStatus(key string, status models.SyncStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok {
		return nil
	}
	item.SyncStatus = status
	s.items[key] = item
	return nil
}

func (s *memoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) SweepExpired(ctx context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, item := range s.items {
		if slices.Contains(models.ReservedKeys, key) {
			continue
		}
		if item.Expired(now) {
			delete(s.items, key)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("swept expired local items")
	}
	return removed, nil
}

func (s *memoryStore) Close() error {
	return nil
}

// loadAlive returns the item under key, lazily deleting it when expired.
func (s *memoryStore) loadAlive(key string) (models.StorageItem, bool) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return models.StorageItem{}, false
	}

	if item.Expired(s.now()) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return models.StorageItem{}, false
	}

	return item, true
}
