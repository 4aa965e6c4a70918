package progress

import (
	"context"

	"go.uber.org/zap"
)

// Store persists progress snapshots. Load never fails: absent or damaged
// data yields defaults. Save is best effort.
type Store interface {
	Load(ctx context.Context) Snapshot
	Save(ctx context.Context, snap Snapshot)
}

// KV is durable key-value storage for the progress document.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// KVStore stores the progress document as JSON under StorageKey.
type KVStore struct {
	kv     KV
	logger *zap.Logger
}

// NewKVStore creates a Store on top of kv. A nil logger discards logs.
func NewKVStore(kv KV, logger *zap.Logger) *KVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVStore{kv: kv, logger: logger.Named("progress-store")}
}

func (s *KVStore) Load(ctx context.Context) Snapshot {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Warn("load progress failed, using defaults", zap.Error(err))
		return DefaultSnapshot()
	}
	if !ok {
		return DefaultSnapshot()
	}
	return DecodeSnapshot(raw)
}

func (s *KVStore) Save(ctx context.Context, snap Snapshot) {
	data, err := snap.Encode()
	if err != nil {
		s.logger.Warn("encode progress failed", zap.Error(err))
		return
	}
	if err := s.kv.Put(ctx, StorageKey, data); err != nil {
		s.logger.Warn("save progress failed",
			zap.Error(err),
			zap.Int("xp", snap.XP),
			zap.Int("streak", snap.Streak),
		)
	}
}

// MemoryStore keeps the latest snapshot in memory. Used by tests and by
// the CLI when no database is available.
type MemoryStore struct {
	Snap  *Snapshot
	Saves int
}

func (m *MemoryStore) Load(context.Context) Snapshot {
	if m.Snap == nil {
		return DefaultSnapshot()
	}
	return *m.Snap
}

func (m *MemoryStore) Save(_ context.Context, snap Snapshot) {
	snap.Achievements = append([]string(nil), snap.Achievements...)
	m.Snap = &snap
	m.Saves++
}
