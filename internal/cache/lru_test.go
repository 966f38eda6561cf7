package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewLRU(t *testing.T) {
	cache := NewLRU[string, string](10, 0)

	if cache == nil {
		t.Fatal("expected cache to be created")
	}
	if cache.capacity != 10 {
		t.Errorf("expected capacity 10, got %d", cache.capacity)
	}
	if cache.Len() != 0 {
		t.Errorf("expected empty cache, got length %d", cache.Len())
	}
}

func TestLRU_SetAndGet(t *testing.T) {
	cache := NewLRU[string, string](10, 0)

	cache.Set("movie:550", "Fight Club")

	value, found := cache.Get("movie:550")
	if !found {
		t.Fatal("expected to find movie:550")
	}
	if value != "Fight Club" {
		t.Errorf("expected 'Fight Club', got %q", value)
	}

	if _, found := cache.Get("movie:1"); found {
		t.Error("expected movie:1 to be missing")
	}
}

func TestLRU_Update(t *testing.T) {
	cache := NewLRU[string, int](10, 0)

	cache.Set("k", 1)
	cache.Set("k", 2)

	if v, _ := cache.Get("k"); v != 2 {
		t.Errorf("expected updated value 2, got %d", v)
	}
	if cache.Len() != 1 {
		t.Errorf("expected length 1, got %d", cache.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	cache := NewLRU[string, int](3, 0)

	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Set("c", 3)

	// touch a so b becomes the oldest
	cache.Get("a")
	cache.Set("d", 4)

	if _, found := cache.Get("b"); found {
		t.Error("expected b to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := cache.Get(key); !found {
			t.Errorf("expected %s to be present", key)
		}
	}
	if cache.Len() != 3 {
		t.Errorf("expected length 3, got %d", cache.Len())
	}
}

func TestLRU_Expiry(t *testing.T) {
	cache := NewLRU[string, string](10, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("series:1399", "Game of Thrones")

	now = now.Add(59 * time.Second)
	if _, found := cache.Get("series:1399"); !found {
		t.Fatal("expected entry before expiry")
	}

	now = now.Add(time.Second)
	if _, found := cache.Get("series:1399"); found {
		t.Error("expected entry to expire")
	}
	if cache.Len() != 0 {
		t.Errorf("expected expired entry to be dropped, got length %d", cache.Len())
	}
}

func TestLRU_SetRefreshesExpiry(t *testing.T) {
	cache := NewLRU[string, int](10, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("k", 1)
	now = now.Add(50 * time.Second)
	cache.Set("k", 2)
	now = now.Add(50 * time.Second)

	if v, found := cache.Get("k"); !found || v != 2 {
		t.Errorf("expected refreshed entry 2, got %d (found=%v)", v, found)
	}
}

func TestLRU_DeleteAndClear(t *testing.T) {
	cache := NewLRU[string, int](10, 0)
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Delete("a")
	cache.Delete("missing")
	if _, found := cache.Get("a"); found {
		t.Error("expected a to be deleted")
	}
	if cache.Len() != 1 {
		t.Errorf("expected length 1, got %d", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("expected empty cache after clear, got %d", cache.Len())
	}
}

func TestLRU_ZeroCapacity(t *testing.T) {
	cache := NewLRU[string, int](0, 0)
	cache.Set("a", 1)

	if cache.Len() != 0 {
		t.Errorf("expected length 0, got %d", cache.Len())
	}
}

func TestLRU_Concurrent(t *testing.T) {
	cache := NewLRU[string, int](100, 0)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j%20)
				cache.Set(key, j)
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if cache.Len() > 100 {
		t.Errorf("expected length <= 100, got %d", cache.Len())
	}
}
