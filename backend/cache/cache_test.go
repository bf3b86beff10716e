package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[string](1 * time.Second)
	defer c.Close()

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New[string](100 * time.Millisecond)
	defer c.Close()

	c.Set("key1", "value1")

	// Should exist immediately
	_, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1 immediately")
	}

	// Wait for expiration
	time.Sleep(150 * time.Millisecond)

	_, found = c.Get("key1")
	if found {
		t.Error("Expected key1 to be expired")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[string](1 * time.Second)
	defer c.Close()

	c.Set("key1", "value1")
	c.Clear("key1")

	_, found := c.Get("key1")
	if found {
		t.Error("Expected key1 to be cleared")
	}
}

func TestCache_ZeroTTLStoresNothing(t *testing.T) {
	c := New[int](0)
	defer c.Close()

	c.Set("key1", 1)

	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d entries", c.Len())
	}
}

func TestCache_Sweep(t *testing.T) {
	c := New[int](time.Second)
	defer c.Close()

	c.Set("key1", 1)
	c.sweep(time.Now().Add(2 * time.Second))

	if c.Len() != 0 {
		t.Errorf("Expected sweep to remove expired entry, got %d entries", c.Len())
	}
}

func TestCache_GetOrLoad_CachesResult(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	var calls atomic.Int32
	load := func() (int, error) {
		calls.Add(1)
		return 42, nil
	}

	v, src, err := c.GetOrLoad("answer", load)
	if err != nil || v != 42 || src != Loaded {
		t.Fatalf("first load = (%d, %v, %v)", v, src, err)
	}

	v, src, err = c.GetOrLoad("answer", load)
	if err != nil || v != 42 || src != Stored {
		t.Fatalf("second load = (%d, %v, %v)", v, src, err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected one load, got %d", calls.Load())
	}
}

func TestCache_GetOrLoad_ErrorNotCached(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	boom := errors.New("boom")
	_, _, err := c.GetOrLoad("key", func() (int, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("Expected failed load not to be cached")
	}
}

func TestCache_GetOrLoad_CoalescesConcurrentLoads(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	var calls atomic.Int32
	release := make(chan struct{})
	load := func() (int, error) {
		calls.Add(1)
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	var loaded atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, src, err := c.GetOrLoad("key", load)
			if err != nil || v != 7 {
				t.Errorf("GetOrLoad = (%d, %v)", v, err)
			}
			if src == Loaded {
				loaded.Add(1)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("Expected concurrent loads to coalesce into one, got %d", calls.Load())
	}
	if loaded.Load() != 1 {
		t.Errorf("Expected exactly one caller to report Loaded, got %d", loaded.Load())
	}
}

func TestCache_GetOrLoad_ZeroTTLNeverReportsStored(t *testing.T) {
	c := New[int](0)
	defer c.Close()

	for i := 0; i < 3; i++ {
		_, src, err := c.GetOrLoad("key", func() (int, error) { return 1, nil })
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if src != Loaded {
			t.Errorf("call %d: expected Loaded with storage disabled, got %v", i, src)
		}
	}
}

func TestCache_CloseIdempotent(t *testing.T) {
	c := New[int](time.Minute)
	c.Close()
	c.Close()
}
