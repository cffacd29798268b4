package main

import (
	"sync"
	"time"
)

type CacheEntry struct {
	Value     []byte
	Timestamp time.Time
}

// PreviewCache keeps encoded label PNGs for the preview server. Entries
// belong to one label geometry; Reset drops them when it changes.
type PreviewCache struct {
	cache      map[string]*CacheEntry
	mutex      sync.RWMutex
	generation int
	maxAge     time.Duration
}

func NewPreviewCache(maxAge time.Duration) *PreviewCache {
	return &PreviewCache{
		cache:  make(map[string]*CacheEntry),
		maxAge: maxAge,
	}
}

// Reset drops every entry and returns the new generation.
func (pc *PreviewCache) Reset() int {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	pc.cache = make(map[string]*CacheEntry)
	pc.generation++
	return pc.generation
}

func (pc *PreviewCache) Generation() int {
	pc.mutex.RLock()
	defer pc.mutex.RUnlock()
	return pc.generation
}

func (pc *PreviewCache) Get(key string) ([]byte, bool) {
	pc.mutex.RLock()
	defer pc.mutex.RUnlock()

	entry, exists := pc.cache[key]
	if !exists {
		return nil, false
	}
	if pc.maxAge > 0 && time.Since(entry.Timestamp) > pc.maxAge {
		return nil, false
	}
	return entry.Value, true
}

// Set stores value unless the cache was reset after generation was read.
func (pc *PreviewCache) Set(generation int, key string, value []byte) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	if generation != pc.generation {
		return
	}
	pc.cache[key] = &CacheEntry{
		Value:     value,
		Timestamp: time.Now(),
	}
}

func (pc *PreviewCache) Len() int {
	pc.mutex.RLock()
	defer pc.mutex.RUnlock()
	return len(pc.cache)
}
