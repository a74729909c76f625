package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/sponsor-eval/draft"
	"github.com/danielhkuo/sponsor-eval/models"
)

// StorageKey is the fixed cache key of the progress record
const StorageKey = "sponsor_progress_v1"

var ErrNotFound = errors.New("cache entry not found")

// Cache stores opaque blobs by key. Get returns ErrNotFound for missing keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Record is the persisted session: identity, completion marks, and drafts
type Record struct {
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	CompletedProjects models.CompletionSet `json:"completedProjects"`
	StagedRatings     *draft.Store         `json:"stagedRatings"`
}

// Identity returns the record's identity
func (r Record) Identity() models.Identity {
	return models.Identity{Name: r.Name, Email: r.Email}
}

type Adapter struct {
	cache Cache
	key   string
}

// NewAdapter stores under StorageKey, suffixed with ":"+namespace when namespace is set.
func NewAdapter(cache Cache, namespace string) *Adapter {
	key := StorageKey
	if namespace != "" {
		key = StorageKey + ":" + namespace
	}
	return &Adapter{cache: cache, key: key}
}

// Key returns the cache key this adapter writes
func (a *Adapter) Key() string {
	return a.key
}

// Save overwrites the record. Errors are for the caller to log; they never
// reflect on the in-memory session.
func (a *Adapter) Save(ctx context.Context, id models.Identity, completed models.CompletionSet, drafts *draft.Store) error {
	if completed == nil {
		completed = models.CompletionSet{}
	}
	if drafts == nil {
		drafts = draft.NewStore()
	}

	data, err := json.Marshal(Record{
		Name:              id.Name,
		Email:             id.Email,
		CompletedProjects: completed,
		StagedRatings:     drafts,
	})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := a.cache.Put(ctx, a.key, data); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Load reads the record. It reports false when nothing usable is cached.
func (a *Adapter) Load(ctx context.Context) (Record, bool) {
	data, err := a.cache.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return Record{}, false
	}
	if err != nil {
		slog.Warn("could not load progress", "key", a.key, "error", err)
		return Record{}, false
	}

	rec := Record{StagedRatings: draft.NewStore()}
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("could not parse progress", "key", a.key, "error", err)
		return Record{}, false
	}

	// A record without an email predates identity submission
	if rec.Email == "" {
		return Record{}, false
	}

	if rec.CompletedProjects == nil {
		rec.CompletedProjects = models.CompletionSet{}
	}
	if rec.StagedRatings == nil {
		rec.StagedRatings = draft.NewStore()
	}

	return rec, true
}

// Clear removes the record
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.cache.Delete(ctx, a.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
