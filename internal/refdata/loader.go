package refdata

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ticketlane/eventwizard/internal/upstream"
)

const (
	keyCategories = "refdata:categories"
	keyEventTypes = "refdata:eventtypes"
)

// Source is the slice of the upstream client the loader needs.
type Source interface {
	Categories(ctx context.Context) ([]upstream.Category, error)
	EventTypes(ctx context.Context) ([]upstream.EventType, error)
}

// Loader serves the read-only lookup tables the wizard renders its pickers
// from. Values are cached in redis (shared across replicas) with an
// in-process TTL copy in front; when redis is absent the process cache alone
// carries it. Cache failures are logged and fall through to the upstream
// call, never surfaced to callers.
type Loader struct {
	src Source
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger

	mu         sync.RWMutex
	categories []upstream.Category
	catsExp    time.Time
	eventTypes []upstream.EventType
	typesExp   time.Time
}

func NewLoader(src Source, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *Loader {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Loader{src: src, rdb: rdb, ttl: ttl, log: log}
}

func (l *Loader) Categories(ctx context.Context) ([]upstream.Category, error) {
	l.mu.RLock()
	if time.Now().Before(l.catsExp) {
		cached := l.categories
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if cats, ok := fromRedis[[]upstream.Category](ctx, l, keyCategories); ok {
		l.storeCategories(cats)
		return cats, nil
	}

	cats, err := l.src.Categories(ctx)
	if err != nil {
		return nil, err
	}

	l.storeCategories(cats)
	l.toRedis(ctx, keyCategories, cats)

	return cats, nil
}

func (l *Loader) EventTypes(ctx context.Context) ([]upstream.EventType, error) {
	l.mu.RLock()
	if time.Now().Before(l.typesExp) {
		cached := l.eventTypes
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if types, ok := fromRedis[[]upstream.EventType](ctx, l, keyEventTypes); ok {
		l.storeEventTypes(types)
		return types, nil
	}

	types, err := l.src.EventTypes(ctx)
	if err != nil {
		return nil, err
	}

	l.storeEventTypes(types)
	l.toRedis(ctx, keyEventTypes, types)

	return types, nil
}

func (l *Loader) storeCategories(cats []upstream.Category) {
	l.mu.Lock()
	l.categories = cats
	l.catsExp = time.Now().Add(l.ttl)
	l.mu.Unlock()
}

func (l *Loader) storeEventTypes(types []upstream.EventType) {
	l.mu.Lock()
	l.eventTypes = types
	l.typesExp = time.Now().Add(l.ttl)
	l.mu.Unlock()
}

func fromRedis[T any](ctx context.Context, l *Loader, key string) (T, bool) {
	var zero T
	if l.rdb == nil {
		return zero, false
	}

	raw, err := l.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil && l.log != nil {
			l.log.Warn("refdata redis get failed", "key", key, "err", err)
		}
		return zero, false
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		if l.log != nil {
			l.log.Warn("refdata cache entry corrupt", "key", key, "err", err)
		}
		return zero, false
	}

	return out, true
}

func (l *Loader) toRedis(ctx context.Context, key string, v any) {
	if l.rdb == nil {
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := l.rdb.Set(ctx, key, b, l.ttl).Err(); err != nil && l.log != nil {
		l.log.Warn("refdata redis set failed", "key", key, "err", err)
	}
}

// FilterSubcategories narrows the nested subcategory lists the way the
// wizard's picker does: by selected category and, when set, event type.
func FilterSubcategories(cats []upstream.Category, categoryID, eventTypeID string) []upstream.Subcategory {
	var out []upstream.Subcategory

	for _, cat := range cats {
		if categoryID != "" && cat.ID != categoryID {
			continue
		}
		for _, sub := range cat.Subcategories {
			if eventTypeID != "" && sub.EventTypeID != "" && sub.EventTypeID != eventTypeID {
				continue
			}
			out = append(out, sub)
		}
	}

	return out
}
