package docstore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

// Manager opens one CollectionStorage per collection on demand and exposes
// the three read primitives the search aggregator is allowed to use. It
// implements core.DocumentReader.
type Manager struct {
	storageDir string
	storages   map[string]*CollectionStorage
	mu         sync.RWMutex
}

func NewManager(storageDir string) *Manager {
	return &Manager{
		storageDir: storageDir,
		storages:   make(map[string]*CollectionStorage),
	}
}

func (m *Manager) GetStorage(collection string) (*CollectionStorage, error) {
	m.mu.RLock()
	storage, exists := m.storages[collection]
	m.mu.RUnlock()

	if exists {
		return storage, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if storage, exists := m.storages[collection]; exists {
		return storage, nil
	}

	dbPath := filepath.Join(m.storageDir, fmt.Sprintf("%s.db", collection))
	storage, err := NewCollectionStorage(dbPath, collection)
	if err != nil {
		return nil, fmt.Errorf("creating storage for %s: %w", collection, err)
	}

	m.storages[collection] = storage
	return storage, nil
}

func (m *Manager) GetAll(ctx context.Context, collection string) ([]core.Document, error) {
	storage, err := m.GetStorage(collection)
	if err != nil {
		return nil, err
	}
	return storage.GetAll(ctx)
}

func (m *Manager) GetByField(ctx context.Context, collection, field string, value any) ([]core.Document, error) {
	storage, err := m.GetStorage(collection)
	if err != nil {
		return nil, err
	}
	return storage.GetByField(ctx, field, value)
}

func (m *Manager) GetRecent(ctx context.Context, collection, orderField string, limit int) ([]core.Document, error) {
	storage, err := m.GetStorage(collection)
	if err != nil {
		return nil, err
	}
	return storage.GetRecent(ctx, orderField, limit)
}

func (m *Manager) Put(ctx context.Context, collection string, doc core.Document) error {
	storage, err := m.GetStorage(collection)
	if err != nil {
		return err
	}
	return storage.Put(ctx, doc)
}

func (m *Manager) PutBatch(ctx context.Context, collection string, docs []core.Document) error {
	storage, err := m.GetStorage(collection)
	if err != nil {
		return err
	}
	return storage.PutBatch(ctx, docs)
}

func (m *Manager) Count(ctx context.Context, collection string) (int, error) {
	storage, err := m.GetStorage(collection)
	if err != nil {
		return 0, err
	}
	return storage.Count(ctx)
}

// Stats returns document counts for every open collection.
func (m *Manager) Stats(ctx context.Context) (map[string]int, error) {
	m.mu.RLock()
	collections := make([]string, 0, len(m.storages))
	for name := range m.storages {
		collections = append(collections, name)
	}
	m.mu.RUnlock()

	stats := make(map[string]int)
	for _, name := range collections {
		storage, err := m.GetStorage(name)
		if err != nil {
			return nil, err
		}
		count, err := storage.Count(ctx)
		if err != nil {
			return nil, err
		}
		stats[name] = count
	}
	return stats, nil
}

func (m *Manager) OptimizeAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for name, storage := range m.storages {
		if err := storage.Optimize(); err != nil {
			return fmt.Errorf("optimizing %s: %w", name, err)
		}
	}
	return nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name, storage := range m.storages {
		if err := storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", name, err))
		}
	}
	m.storages = make(map[string]*CollectionStorage)

	if len(errs) > 0 {
		return fmt.Errorf("errors closing storages: %v", errs)
	}
	return nil
}
