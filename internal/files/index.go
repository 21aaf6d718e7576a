package files

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fsbot/internal/logging"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// Index lists directory trees for search. With a positive TTL listings are
// cached per absolute root and concurrent misses for the same root share a
// single walk. With a zero TTL every call walks the tree.
type Index struct {
	cache         *ttlcache.Cache[string, []string] // nil when listings are not cached
	stop          func()
	group         singleflight.Group
	includeHidden bool
	ignore        map[string]bool
	closeOnce     sync.Once

	// gen counts invalidations. A walk only populates the cache when no
	// invalidation happened while it ran.
	mu  sync.Mutex
	gen uint64

	afterWalk func() // test hook, runs between a walk and the cache update
}

// NewIndex creates an Index. A positive ttl starts the cache expiration
// loop; call Close when done.
func NewIndex(ttl time.Duration, includeHidden bool, ignorePatterns []string) *Index {
	ignore := make(map[string]bool, len(ignorePatterns))
	for _, p := range ignorePatterns {
		ignore[p] = true
	}

	ix := &Index{includeHidden: includeHidden, ignore: ignore}
	if ttl > 0 {
		ix.cache = ttlcache.New[string, []string](
			ttlcache.WithTTL[string, []string](ttl),
			ttlcache.WithDisableTouchOnHit[string, []string](),
		)
		ix.stop = StartCache(ix.cache)
	}
	return ix
}

// Close stops the cache expiration loop. It is safe to call more than once.
func (ix *Index) Close() {
	if ix.stop != nil {
		ix.closeOnce.Do(ix.stop)
	}
}

// Entries returns every path below root (root itself excluded). The slice may
// be shared with the cache and must not be modified.
func (ix *Index) Entries(ctx context.Context, root string) ([]string, error) {
	if ix.cache == nil {
		return ix.walk(ctx, root)
	}
	if item := ix.cache.Get(root); item != nil {
		return item.Value(), nil
	}

	gen := ix.generation()
	key := fmt.Sprintf("%s\x00%d", root, gen)
	v, err, _ := ix.group.Do(key, func() (interface{}, error) {
		entries, err := ix.walk(ctx, root)
		if err != nil {
			return nil, err
		}
		if ix.afterWalk != nil {
			ix.afterWalk()
		}
		ix.mu.Lock()
		if ix.gen == gen {
			ix.cache.Set(root, entries, ttlcache.DefaultTTL)
		}
		ix.mu.Unlock()
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Invalidate drops every cached listing. Listings of parent roots contain
// the changed path too, so a single-key delete is not enough.
func (ix *Index) Invalidate() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.gen++
	if ix.cache != nil {
		ix.cache.DeleteAll()
	}
}

// Len returns the number of cached roots.
func (ix *Index) Len() int {
	if ix.cache == nil {
		return 0
	}
	return ix.cache.Len()
}

func (ix *Index) generation() uint64 {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.gen
}

func (ix *Index) skip(name string) bool {
	if ix.ignore[name] {
		return true
	}
	return !ix.includeHidden && strings.HasPrefix(name, ".")
}

// walk lists root recursively. Unreadable entries are skipped, matching a
// best-effort search rather than failing the whole listing.
func (ix *Index) walk(ctx context.Context, root string) ([]string, error) {
	start := time.Now()
	var entries []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && p != root {
				return fs.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}
		if ix.skip(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		entries = append(entries, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.WorldDebug("indexed %s: %d entries in %v", root, len(entries), time.Since(start))
	return entries, nil
}
