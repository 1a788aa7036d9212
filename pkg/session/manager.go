package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/venue-master/admin-console/pkg/logger"
	"github.com/venue-master/admin-console/pkg/tokenstore"
)

// ErrEmptyID is returned by Manager.Get for an empty session id.
var ErrEmptyID = errors.New("session: empty session id")

// Factory builds the Context for a console session id.
type Factory func(ctx context.Context, id string) (*Context, error)

// NewFactory returns a Factory that copies base, sets the id and binds the
// store returned by stores for that id.
func NewFactory(base Config, stores func(id string) tokenstore.Store) Factory {
	return func(ctx context.Context, id string) (*Context, error) {
		cfg := base
		cfg.ID = id
		cfg.Store = stores(id)
		return New(ctx, cfg)
	}
}

type entry struct {
	sess     *Context
	lastSeen time.Time
}

// Manager keeps one Context per console session id so that requests of the
// same browser session share one client and one refresh coordinator.
// Entries idle for longer than the idle timeout are evicted by Sweep; the
// credentials stay in the token store and are reloaded on the next Get.
type Manager struct {
	factory Factory
	idle    time.Duration
	log     logger.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	loads   singleflight.Group
}

// NewManager returns an empty Manager.
func NewManager(factory Factory, idle time.Duration, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		factory: factory,
		idle:    idle,
		log:     log,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Get returns the Context for id, building it on first use. Concurrent first
// uses of the same id share one build.
func (m *Manager) Get(ctx context.Context, id string) (*Context, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if s := m.touch(id); s != nil {
		return s, nil
	}

	v, err, _ := m.loads.Do(id, func() (any, error) {
		if s := m.touch(id); s != nil {
			return s, nil
		}
		s, err := m.factory(ctx, id)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.entries[id] = &entry{sess: s, lastSeen: m.now()}
		m.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Context), nil
}

func (m *Manager) touch(id string) *Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil
	}
	e.lastSeen = m.now()
	return e.sess
}

// Forget drops the in-memory Context for id.
func (m *Manager) Forget(id string) {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
}

// Len returns the number of live entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep evicts idle entries and returns how many were removed.
func (m *Manager) Sweep() int {
	if m.idle <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idle)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.log.DebugContext(ctx, "session: evicted idle sessions", "count", n)
			}
		}
	}
}
