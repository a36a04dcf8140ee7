package regtree

import (
	"time"

	"github.com/Velocidex/ttlcache/v2"
)

// The resolution cache holds directory listings keyed by normalized
// path. The hive never mutates during a mount so entries are only
// invalidated by tearing the whole cache down on unmount.
type readDirLRUItem struct {
	children []Node
	err      error
}

type resolutionCache struct {
	readdir_lru *ttlcache.Cache
}

func newResolutionCache(size int, ttl time.Duration) *resolutionCache {
	// Cache is disabled.
	if size < 0 {
		return &resolutionCache{}
	}

	if size == 0 {
		size = 1000
	}
	if ttl == 0 {
		ttl = 60 * time.Second
	}

	lru := ttlcache.NewCache()
	lru.SetCacheSizeLimit(size)
	lru.SetTTL(ttl)
	lru.SkipTTLExtensionOnHit(true)

	return &resolutionCache{readdir_lru: lru}
}

func (self *resolutionCache) GetDir(key string) (*readDirLRUItem, bool) {
	if self.readdir_lru == nil {
		return nil, false
	}

	cached, err := self.readdir_lru.Get(key)
	if err == nil {
		cached_res, ok := cached.(*readDirLRUItem)
		if ok {
			metricsReadDirLruHit.Inc()
			return cached_res, true
		}
	}
	metricsReadDirLruMiss.Inc()

	return nil, false
}

func (self *resolutionCache) SetDir(key string, dir *readDirLRUItem) {
	if self.readdir_lru != nil {
		self.readdir_lru.Set(key, dir)
	}
}

func (self *resolutionCache) Close() {
	if self.readdir_lru != nil {
		self.readdir_lru.Close()
	}
}
