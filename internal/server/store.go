package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"fsbot/internal/conversation"
	"fsbot/internal/engine"
	"fsbot/internal/files"
	"fsbot/internal/logging"
)

// Session is one conversation served over HTTP. Turns are serialized by mu
// so a turn is never observed half applied.
type Session struct {
	mu      sync.Mutex
	fs      *files.Local
	engine  *engine.Engine
	created time.Time
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.engine.State().ID()
}

// Created returns when the session was opened.
func (s *Session) Created() time.Time {
	return s.created
}

// Handle runs one utterance under the session lock.
func (s *Session) Handle(ctx context.Context, text string) engine.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Handle(ctx, text)
}

// Transcript returns a copy of the session history.
func (s *Session) Transcript() []conversation.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State().Snapshot()
}

// CurrentDirectory returns the session's working directory.
func (s *Session) CurrentDirectory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.CurrentDirectory()
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fs.Close()
}

// Store keeps live sessions and expires the idle ones.
type Store struct {
	opts        files.Options
	cache       *ttlcache.Cache[string, *Session]
	stopEvicted func()
	stopExpiry  func()
	closeOnce   sync.Once
}

// NewStore creates a session store. Every session gets its own filesystem
// view built from opts; sessions unused for ttl are closed and dropped.
func NewStore(opts files.Options, ttl time.Duration) *Store {
	cache := ttlcache.New[string, *Session](
		ttlcache.WithTTL[string, *Session](ttl),
	)
	stop := cache.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *Session]) {
		logging.API("session %s evicted (reason=%d)", item.Key(), reason)
		item.Value().close()
	})
	return &Store{
		opts:        opts,
		cache:       cache,
		stopEvicted: stop,
		stopExpiry:  files.StartCache(cache),
	}
}

// Create opens a new session. The session outlives ctx; only its values are
// kept.
func (st *Store) Create(ctx context.Context) (*Session, error) {
	fsys, err := files.NewLocal(context.WithoutCancel(ctx), st.opts)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	eng, err := engine.New(fsys, conversation.NewState())
	if err != nil {
		fsys.Close()
		return nil, err
	}

	s := &Session{fs: fsys, engine: eng, created: time.Now()}
	st.cache.Set(s.ID(), s, ttlcache.DefaultTTL)
	logging.API("session %s created in %s", s.ID(), fsys.CurrentDirectory())
	return s, nil
}

// Get returns a live session and extends its lifetime.
func (st *Store) Get(id string) (*Session, bool) {
	item := st.cache.Get(id)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Delete closes and removes a session.
func (st *Store) Delete(id string) bool {
	if !st.cache.Has(id) {
		return false
	}
	st.cache.Delete(id)
	return true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	return st.cache.Len()
}

// Close closes every session and stops the expiry loop. Eviction callbacks
// run asynchronously; Close waits for them.
func (st *Store) Close() {
	st.closeOnce.Do(func() {
		st.cache.DeleteAll()
		st.stopEvicted()
		st.stopExpiry()
	})
}
