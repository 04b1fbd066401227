package repository

import (
	"context"
	"sync"
)

// RecordRepository is a durable key-value store for encoded boards.
type RecordRepository interface {
	Load(ctx context.Context, name string) (string, error)
	Save(ctx context.Context, name, payload string) error
	Delete(ctx context.Context, name string) error
}

var (
	_ RecordRepository = (*MemoryRecordRepository)(nil)
	_ RecordRepository = (*GormRecordRepository)(nil)
	_ RecordRepository = (*RedisRecordRepository)(nil)
)

// MemoryRecordRepository keeps records in process memory. Records are lost
// when the process exits.
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	records map[string]string
}

func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{records: make(map[string]string)}
}

func (r *MemoryRecordRepository) Load(ctx context.Context, name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payload, ok := r.records[name]
	if !ok {
		return "", ErrRecordNotFound
	}
	return payload, nil
}

func (r *MemoryRecordRepository) Save(ctx context.Context, name, payload string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[name] = payload
	return nil
}

func (r *MemoryRecordRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, name)
	return nil
}
