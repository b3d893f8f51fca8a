// Package cache stores rendered signage so repeated requests for the same
// text skip the renderer.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-redis/redis/v9"
	"github.com/rs/zerolog/log"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

var ErrMissing = fmt.Errorf("cache entry missing")

// Key derives a stable cache key from the parts that determine a render.
func Key(parts ...string) string {
	digest := xxhash.New()
	for _, part := range parts {
		// Length-prefix each part so ("ab", "c") and ("a", "bc") differ.
		digest.WriteString(strconv.Itoa(len(part)))
		digest.WriteString(":")
		digest.WriteString(part)
	}
	return strconv.FormatUint(digest.Sum64(), 16)
}

// Fetch returns the entry for key, producing and storing it on a miss. A nil
// store always produces. Store failures are logged and never returned; only
// produce's error is.
func Fetch(ctx context.Context, store Store, key string, produce func() ([]byte, error)) (data []byte, hit bool, err error) {
	if store == nil {
		data, err = produce()
		return data, false, err
	}

	data, err = store.Get(ctx, key)
	if err == nil {
		return data, true, nil
	}
	if err != ErrMissing {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	data, err = produce()
	if err != nil {
		return nil, false, err
	}

	if err := store.Set(ctx, key, data); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}

	return data, false, nil
}

type FSStore string

func (f FSStore) getPath(key string) string {
	return filepath.Join(string(f), key)
}

func fileExists(path string) bool {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return true
	}
	return false
}

func (f FSStore) Get(ctx context.Context, key string) ([]byte, error) {
	target := f.getPath(key)

	if !fileExists(target) {
		return nil, ErrMissing
	}

	return os.ReadFile(target)
}

func (f FSStore) Set(ctx context.Context, key string, data []byte) error {
	target := f.getPath(key)

	// Write then rename so readers never see a partial file.
	temp, err := os.CreateTemp(string(f), key+"-*")
	if err != nil {
		return err
	}

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return err
	}
	if err := temp.Close(); err != nil {
		os.Remove(temp.Name())
		return err
	}

	return os.Rename(temp.Name(), target)
}

const (
	RENDER_KEY    = "render-%s"
	RENDER_EXPIRY = time.Duration(1 * time.Hour)
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = RENDER_EXPIRY
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Get(ctx context.Context, id string) ([]byte, error) {
	key := fmt.Sprintf(RENDER_KEY, id)
	data, err := r.client.Get(ctx, key).Bytes()

	if err == redis.Nil {
		return nil, ErrMissing
	}

	if err != nil {
		return nil, err
	}

	return data, nil
}

func (r *RedisStore) Set(ctx context.Context, id string, data []byte) error {
	key := fmt.Sprintf(RENDER_KEY, id)
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

var _ Store = (*FSStore)(nil)
var _ Store = (*RedisStore)(nil)
var _ Store = (*MemoryStore)(nil)
