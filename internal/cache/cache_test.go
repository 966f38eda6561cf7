package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type detail struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func TestDetailCache_L1Only(t *testing.T) {
	ctx := context.Background()
	c := NewDetailCache(10, time.Minute, nil, time.Hour)

	var got detail
	if c.GetJSON(ctx, "movie:550", &got) {
		t.Fatal("expected miss on empty cache")
	}

	c.SetJSON(ctx, "movie:550", detail{ID: 550, Title: "Fight Club"})
	if !c.GetJSON(ctx, "movie:550", &got) {
		t.Fatal("expected hit after set")
	}
	if got.Title != "Fight Club" {
		t.Errorf("expected 'Fight Club', got %q", got.Title)
	}

	c.Delete(ctx, "movie:550")
	if c.GetJSON(ctx, "movie:550", &got) {
		t.Error("expected miss after delete")
	}
}

func TestFetch_LoadsOnce(t *testing.T) {
	ctx := context.Background()
	c := NewDetailCache(10, 0, nil, 0)
	calls := 0
	load := func(context.Context) (*detail, error) {
		calls++
		return &detail{ID: 1, Title: "Breaking Bad"}, nil
	}

	for i := 0; i < 3; i++ {
		d, err := Fetch(ctx, c, "series:1", load)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Title != "Breaking Bad" {
			t.Errorf("expected 'Breaking Bad', got %q", d.Title)
		}
	}
	if calls != 1 {
		t.Errorf("expected one load, got %d", calls)
	}
}

func TestFetch_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewDetailCache(10, 0, nil, 0)
	boom := errors.New("boom")
	calls := 0
	load := func(context.Context) (*detail, error) {
		calls++
		return nil, boom
	}

	for i := 0; i < 2; i++ {
		if _, err := Fetch(ctx, c, "movie:9", load); !errors.Is(err, boom) {
			t.Errorf("expected load error, got %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("expected every call to reach the loader, got %d", calls)
	}
}

func TestFetch_NilCache(t *testing.T) {
	d, err := Fetch(context.Background(), nil, "movie:1", func(context.Context) (*detail, error) {
		return &detail{ID: 1}, nil
	})
	if err != nil || d.ID != 1 {
		t.Errorf("expected pass-through load, got %+v, %v", d, err)
	}
}

func TestDetailCache_RedisTier(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	writer := NewDetailCache(10, time.Minute, rdb, time.Hour)
	writer.SetJSON(ctx, "movie:550", detail{ID: 550, Title: "Fight Club"})

	if !mr.Exists("movie:550") {
		t.Fatal("expected the value to reach redis")
	}
	if ttl := mr.TTL("movie:550"); ttl != time.Hour {
		t.Errorf("expected L2 TTL of 1h, got %v", ttl)
	}

	reader := NewDetailCache(10, time.Minute, rdb, time.Hour)
	if _, found := reader.l1.Get("movie:550"); found {
		t.Fatal("expected a fresh L1")
	}

	var got detail
	if !reader.GetJSON(ctx, "movie:550", &got) || got.Title != "Fight Club" {
		t.Fatalf("expected L2 hit, got %+v", got)
	}
	if _, found := reader.l1.Get("movie:550"); !found {
		t.Error("expected L2 hit to fill L1")
	}

	reader.Delete(ctx, "movie:550")
	if mr.Exists("movie:550") {
		t.Error("expected delete to reach redis")
	}
}

func TestDetailCache_RedisDownFallsBackToLoader(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	c := NewDetailCache(10, time.Minute, rdb, time.Hour)
	calls := 0
	load := func(context.Context) (*detail, error) {
		calls++
		return &detail{ID: 7}, nil
	}

	for i := 0; i < 2; i++ {
		d, err := Fetch(ctx, c, "movie:7", load)
		if err != nil || d.ID != 7 {
			t.Fatalf("expected loader result, got %+v, %v", d, err)
		}
	}
	if calls != 1 {
		t.Errorf("expected L1 to serve the second call, got %d loads", calls)
	}
}
