package helpers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sunthewhat/olymp-cert-api/common/util"
)

// MemoryStorage is an in-memory util.ObjectStorage. FailStore and
// FailRetrieve inject errors for the paths or categories they name.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	FailStore    map[string]error
	FailRetrieve map[string]error
}

var _ util.ObjectStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		objects:      map[string][]byte{},
		FailStore:    map[string]error{},
		FailRetrieve: map[string]error{},
	}
}

func (s *MemoryStorage) Store(ctx context.Context, data []byte, category string, key string, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.FailStore[category]; ok {
		return "", err
	}

	name := util.ObjectName(category, key, contentType)
	s.objects[name] = append([]byte(nil), data...)
	return name, nil
}

func (s *MemoryStorage) Retrieve(ctx context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.FailRetrieve[path]; ok {
		return nil, err
	}

	data, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrObjectNotFound, path)
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStorage) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, path)
	return nil
}

// Put seeds an object directly.
func (s *MemoryStorage) Put(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
}

// Has reports whether path is stored.
func (s *MemoryStorage) Has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok
}

// Paths lists stored object paths in order.
func (s *MemoryStorage) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.objects))
	for p := range s.objects {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ErrInjected is a generic failure for FailStore and FailRetrieve.
var ErrInjected = errors.New("injected storage failure")
