package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/JWT-WWIT/modern-web-app/internal/jsonx"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/envutil"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
	"github.com/JWT-WWIT/modern-web-app/internal/types"
)

// NoteCache is a read-through cache for single notes. Misses and transport
// failures are soft: callers fall back to the repository.
type NoteCache interface {
	Get(ctx context.Context, noteID uuid.UUID) (*types.Note, bool)
	Set(ctx context.Context, note *types.Note)
	Invalidate(ctx context.Context, noteID uuid.UUID)
	Close() error
}

type noteCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewNoteCache(log *logger.Logger) (NoteCache, error) {
	addr := envutil.Str("REDIS_ADDR", "")
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttl := envutil.Duration("NOTE_CACHE_TTL", 5*time.Minute)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &noteCache{log: log.With("client", "NoteCache"), rdb: rdb, ttl: ttl}, nil
}

func cacheKey(noteID uuid.UUID) string {
	return "note:" + noteID.String()
}

func (c *noteCache) Get(ctx context.Context, noteID uuid.UUID) (*types.Note, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(noteID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("cache get failed", "note_id", noteID.String(), "error", err)
		}
		return nil, false
	}
	var note types.Note
	if err := jsonx.Unmarshal(raw, &note); err != nil {
		c.log.Warn("cache entry corrupt, dropping", "note_id", noteID.String(), "error", err)
		c.Invalidate(ctx, noteID)
		return nil, false
	}
	return &note, true
}

func (c *noteCache) Set(ctx context.Context, note *types.Note) {
	if note == nil {
		return
	}
	raw, err := jsonx.Marshal(note)
	if err != nil {
		c.log.Warn("cache marshal failed", "note_id", note.ID.String(), "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(note.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "note_id", note.ID.String(), "error", err)
	}
}

func (c *noteCache) Invalidate(ctx context.Context, noteID uuid.UUID) {
	if err := c.rdb.Del(ctx, cacheKey(noteID)).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "note_id", noteID.String(), "error", err)
	}
}

func (c *noteCache) Close() error {
	return c.rdb.Close()
}
