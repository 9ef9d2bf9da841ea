package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
	delErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.delErr != nil {
		return redis.NewIntResult(0, f.delErr)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func sample() *gift.Gift {
	return &gift.Gift{
		ID:            "3f1c",
		SenderName:    "Santa",
		RecipientName: "Alice",
		Message:       "Merry Christmas",
		PhotoRefs:     []string{"https://cdn/a.png"},
		CreatedAt:     time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC),
	}
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	fr := newFakeRedis()
	c := newRedisCache(fr, time.Minute, logging.Nop())

	_, ok := c.Get(ctx, "3f1c")
	assert.False(t, ok, "empty cache must miss")

	c.Set(ctx, sample())
	assert.Equal(t, time.Minute, fr.ttls["giftbox:gift:3f1c"])

	got, ok := c.Get(ctx, "3f1c")
	require.True(t, ok)
	assert.Equal(t, sample(), got)

	c.Delete(ctx, "3f1c")
	_, ok = c.Get(ctx, "3f1c")
	assert.False(t, ok)
}

func TestRedisCache_ErrorsAreMisses(t *testing.T) {
	ctx := context.Background()
	fr := newFakeRedis()
	fr.getErr = errors.New("connection refused")
	fr.setErr = errors.New("connection refused")
	fr.delErr = errors.New("connection refused")
	c := newRedisCache(fr, time.Minute, logging.Nop())

	c.Set(ctx, sample())
	_, ok := c.Get(ctx, "3f1c")
	assert.False(t, ok)
	c.Delete(ctx, "3f1c")
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	fr := newFakeRedis()
	fr.data["giftbox:gift:x"] = "{not json"
	c := newRedisCache(fr, time.Minute, logging.Nop())

	_, ok := c.Get(context.Background(), "x")
	assert.False(t, ok)
}

func TestNop(t *testing.T) {
	var c GiftCache = Nop{}
	c.Set(context.Background(), sample())
	_, ok := c.Get(context.Background(), "3f1c")
	assert.False(t, ok)
}
