package services

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/deploymenttheory/go-dat/internal/types"
)

// ResourceService resolves resources by id against one container.
// It serializes access to the container and caches resource payloads.
type ResourceService struct {
	name      string
	mu        sync.Mutex
	container *Container
	index     *DirectoryIndex

	cacheMu          sync.RWMutex
	cache            map[uint32][]byte
	maxCacheSize     int
	currentCacheSize int
	fetchGroup       singleflight.Group
}

// NewResourceService wraps container. A maxCacheSize of zero disables caching.
func NewResourceService(name string, container *Container, maxCacheSize int) *ResourceService {
	return &ResourceService{
		name:         name,
		container:    container,
		index:        NewDirectoryIndex(container, container.RootLocation()),
		cache:        make(map[uint32][]byte),
		maxCacheSize: maxCacheSize,
	}
}

// Name returns the name the service was created with, usually the file path
func (rs *ResourceService) Name() string {
	return rs.name
}

// Header reads the container header
func (rs *ResourceService) Header() (types.DatHeader, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return rs.container.ReadHeader()
}

// PayloadSize returns the sector payload size of the container
func (rs *ResourceService) PayloadSize() int {
	return rs.container.PayloadSize()
}

// Find returns the directory entry for id
func (rs *ResourceService) Find(id uint32) (types.DirectoryEntry, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return rs.index.Find(id)
}

// Entries walks the whole directory and returns every entry in walk order
func (rs *ResourceService) Entries() ([]types.DirectoryEntry, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var entries []types.DirectoryEntry
	for entry, err := range rs.index.All() {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReadEntry reads the payload described by entry, an entry previously
// returned by Find
func (rs *ResourceService) ReadEntry(entry types.DirectoryEntry) ([]byte, error) {
	return rs.read(entry.ID, func() (types.DirectoryEntry, error) {
		return entry, nil
	})
}

// ReadResource finds id and reads its payload. Concurrent reads of the same id
// share one container read.
func (rs *ResourceService) ReadResource(id uint32) ([]byte, error) {
	return rs.read(id, func() (types.DirectoryEntry, error) {
		return rs.index.Find(id)
	})
}

// read serves id from the cache, or resolves it with locate and reads it.
// locate runs with mu held.
func (rs *ResourceService) read(id uint32, locate func() (types.DirectoryEntry, error)) ([]byte, error) {
	rs.cacheMu.RLock()
	if cached, exists := rs.cache[id]; exists {
		rs.cacheMu.RUnlock()
		return append([]byte{}, cached...), nil // Return copy
	}
	rs.cacheMu.RUnlock()

	v, err, _ := rs.fetchGroup.Do(fmt.Sprintf("%08x", id), func() (interface{}, error) {
		rs.mu.Lock()
		defer rs.mu.Unlock()

		entry, err := locate()
		if err != nil {
			return nil, err
		}
		data, err := rs.container.ReadResourceByLocation(entry.Location, entry.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to read resource 0x%08X: %w", id, err)
		}

		rs.cacheMu.Lock()
		rs.cacheResource(id, data)
		rs.cacheMu.Unlock()

		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return append([]byte{}, v.([]byte)...), nil
}

// cacheResource adds a payload to the cache, respecting size limits
// Must be called with cacheMu locked
func (rs *ResourceService) cacheResource(id uint32, data []byte) {
	if rs.maxCacheSize <= 0 || len(data) > rs.maxCacheSize {
		return
	}

	// If adding this payload exceeds cache size, clear cache
	if rs.currentCacheSize+len(data) > rs.maxCacheSize {
		rs.cache = make(map[uint32][]byte)
		rs.currentCacheSize = 0
	}

	rs.cache[id] = append([]byte{}, data...)
	rs.currentCacheSize += len(data)
}

// IsCached checks if a resource is in cache
func (rs *ResourceService) IsCached(id uint32) bool {
	rs.cacheMu.RLock()
	defer rs.cacheMu.RUnlock()

	_, exists := rs.cache[id]
	return exists
}

// ClearCache removes all cached resources
func (rs *ResourceService) ClearCache() {
	rs.cacheMu.Lock()
	defer rs.cacheMu.Unlock()

	rs.cache = make(map[uint32][]byte)
	rs.currentCacheSize = 0
}

// GetCacheStats returns cache statistics
func (rs *ResourceService) GetCacheStats() map[string]interface{} {
	rs.cacheMu.RLock()
	defer rs.cacheMu.RUnlock()

	return map[string]interface{}{
		"cached_resources": len(rs.cache),
		"cache_size_bytes": rs.currentCacheSize,
		"max_cache_bytes":  rs.maxCacheSize,
	}
}

// Close closes the container
func (rs *ResourceService) Close() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return rs.container.Close()
}

// IsNotFound reports whether err means the id is absent
func IsNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}
