// Package memory provides in-memory repository implementations. All
// state is lost on restart.
package memory

import (
	"sync"

	"github.com/gitkachoda/tg-api-hitter/internal/domain"
)

// UserConfigRepo stores per-user configuration in a mutex-guarded map.
type UserConfigRepo struct {
	mu      sync.RWMutex
	configs map[int64]domain.UserConfig
}

// NewUserConfigRepo creates an empty user config store.
func NewUserConfigRepo() *UserConfigRepo {
	return &UserConfigRepo{
		configs: make(map[int64]domain.UserConfig),
	}
}

// Get returns the user's config; absent users get the zero config.
func (r *UserConfigRepo) Get(userID int64) (domain.UserConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.configs[userID], nil
}

// SetBaseURL stores the base URL and clears the awaiting flag under a
// single lock acquisition.
func (r *UserConfigRepo) SetBaseURL(userID int64, baseURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[userID] = domain.UserConfig{
		BaseURL:         baseURL,
		AwaitingBaseURL: false,
	}
	return nil
}

// SetAwaiting flips the awaiting-base-URL flag.
func (r *UserConfigRepo) SetAwaiting(userID int64, awaiting bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg := r.configs[userID]
	cfg.AwaitingBaseURL = awaiting
	r.configs[userID] = cfg
	return nil
}

// ClearBaseURL removes the stored base URL.
func (r *UserConfigRepo) ClearBaseURL(userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg := r.configs[userID]
	cfg.BaseURL = ""
	r.configs[userID] = cfg
	return nil
}

// SeenRepo is an append-only in-memory set of greeted users.
type SeenRepo struct {
	mu   sync.Mutex
	seen map[int64]struct{}
}

// NewSeenRepo creates an empty seen-users set.
func NewSeenRepo() *SeenRepo {
	return &SeenRepo{
		seen: make(map[int64]struct{}),
	}
}

// MarkSeen records the user and reports whether this was first contact.
func (r *SeenRepo) MarkSeen(userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[userID]; ok {
		return false, nil
	}
	r.seen[userID] = struct{}{}
	return true, nil
}
