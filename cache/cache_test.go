package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int64](10)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for absent key")
	}
	if c.Misses() != 1 {
		t.Errorf("Misses() = %d; want 1", c.Misses())
	}

	c.Set("2020-01-05", 1578182400)
	got, ok := c.Get("2020-01-05")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != 1578182400 {
		t.Errorf("Get() = %d; want 1578182400", got)
	}
	if c.Hits() != 1 {
		t.Errorf("Hits() = %d; want 1", c.Hits())
	}
}

func TestCacheUpdate(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("a", 2)

	if got, _ := c.Get("a"); got != 2 {
		t.Errorf("Get(a) = %d; want 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}
}

func TestCacheEviction(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected c to be present")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := New[int, int](0)
	for i := 0; i < 200; i++ {
		c.Set(i, i)
	}
	if c.Len() != 128 {
		t.Errorf("Len() = %d; want default capacity 128", c.Len())
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[string, int](64)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%32)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d; want <= capacity", c.Len())
	}
}
