package tint

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Store loads tint textures from a directory and caches the decoded
// images. Loads may come from any goroutine.
type Store struct {
	dir string

	mu     sync.RWMutex
	images map[string]*Image

	hits   atomic.Int64
	misses atomic.Int64
}

func NewStore(dir string) *Store {
	return &Store{
		dir:    dir,
		images: make(map[string]*Image),
	}
}

// Load returns the decoded image for name, reading and decoding it on
// first use.
func (s *Store) Load(name string) (*Image, error) {
	s.mu.RLock()
	img, ok := s.images[name]
	s.mu.RUnlock()
	if ok {
		s.hits.Add(1)
		return img, nil
	}
	s.misses.Add(1)

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("reading tint texture: %w", err)
	}
	img, err = Decode(name, data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.images[name] = img
	s.mu.Unlock()
	return img, nil
}

// Clear drops every cached image and resets the counters.
func (s *Store) Clear() {
	s.mu.Lock()
	s.images = make(map[string]*Image)
	s.mu.Unlock()
	s.hits.Store(0)
	s.misses.Store(0)
}

// Stats reports cache hits and misses.
func (s *Store) Stats() (hits, misses int) {
	return int(s.hits.Load()), int(s.misses.Load())
}
