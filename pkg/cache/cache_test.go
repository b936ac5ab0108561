package cache

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "validate:x", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if data, hit, err := c.Get(ctx, "validate:x"); err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want a plain miss", data, hit, err)
	}
	if err := c.Delete(ctx, "validate:x"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if n, err := c.(Clearer).Clear(ctx, ""); err != nil || n != 0 {
		t.Errorf("Clear = %d, %v", n, err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(8)
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, "a", []byte("one"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "one" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	// Returned slices are copies
	data[0] = 'X'
	data, _, _ = c.Get(ctx, "a")
	if string(data) != "one" {
		t.Errorf("cached value mutated through returned slice: %q", data)
	}

	// Overwrite
	_ = c.Set(ctx, "a", []byte("two"), 0)
	data, _, _ = c.Get(ctx, "a")
	if string(data) != "two" {
		t.Errorf("overwrite: got %q", data)
	}

	_ = c.Delete(ctx, "a")
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted key should miss")
	}

	st := c.Stats()
	if st.Hits != 3 || st.Misses != 2 {
		t.Errorf("Stats = %+v, want 3 hits, 2 misses", st)
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	c.Get(ctx, "a") // a is now most recent
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("least recently used entry should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s should still be cached", k)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if ev := c.Stats().Evictions; ev != 1 {
		t.Errorf("Evictions = %d, want 1", ev)
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(4)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("x"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("y"), 0)

	now = now.Add(30 * time.Second)
	if _, hit, _ := c.Get(ctx, "short"); !hit {
		t.Error("entry should be live before its TTL")
	}

	now = now.Add(time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("entry should expire after its TTL")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero TTL should never expire")
	}
	if c.Len() != 1 {
		t.Errorf("expired entry should be removed on access, Len = %d", c.Len())
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	_ = c.Set(ctx, "a", []byte("1"), 0)

	_ = c.Close()
	if _, _, err := c.Get(ctx, "a"); err != ErrClosed {
		t.Errorf("Get after Close = %v, want ErrClosed", err)
	}
	if err := c.Set(ctx, "a", nil, 0); err != ErrClosed {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
	if _, err := c.Clear(ctx, ""); err != ErrClosed {
		t.Errorf("Clear after Close = %v, want ErrClosed", err)
	}
}

func TestMemoryCacheClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	for _, k := range []string{"team-a:validate:1", "team-a:bounds:2", "team-b:validate:1"} {
		_ = c.Set(ctx, k, []byte("x"), 0)
	}
	_, _, _ = c.Get(ctx, "team-a:validate:1")

	n, err := c.Clear(ctx, "team-a:")
	if err != nil || n != 2 {
		t.Fatalf("Clear(team-a:) = %d, %v, want 2", n, err)
	}
	if _, hit, _ := c.Get(ctx, "team-b:validate:1"); !hit {
		t.Error("entry outside the prefix should survive")
	}
	if st := c.Stats(); st.Hits != 2 {
		t.Errorf("Clear should keep counters, hits = %d", st.Hits)
	}

	n, _ = c.Clear(ctx, "")
	if n != 1 || c.Len() != 0 {
		t.Errorf("Clear(\"\") = %d, Len = %d, want 1 and 0", n, c.Len())
	}
}

func TestMemoryCacheConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(16)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i+j)%32)
				_ = c.Set(ctx, key, []byte(key), 0)
				c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 16 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}

func TestHashKey(t *testing.T) {
	if hashKey("k", "a", "b") != hashKey("k", "a", "b") {
		t.Error("hashKey should be deterministic")
	}
	// Parts are separated, so shifting bytes between them changes the key.
	if hashKey("k", "ab", "c") == hashKey("k", "a", "bc") {
		t.Error("hashKey should separate its parts")
	}
	if k := hashKey("k", "a"); !strings.HasPrefix(k, "k:") || len(k) != len("k:")+64 {
		t.Errorf("hashKey = %q, want k: followed by a sha256 hex digest", k)
	}
}

func TestKeyPrefix(t *testing.T) {
	if p := KeyPrefix(NewDefaultKeyer()); p != "" {
		t.Errorf("KeyPrefix(default) = %q", p)
	}
	k := NewScopedKeyer(nil, "club:")
	if p := KeyPrefix(k); p != "club:" {
		t.Errorf("KeyPrefix(scoped) = %q", p)
	}
	if lk := k.LineupKey(lineup.BaseRotation(lineup.RightBack)); !strings.HasPrefix(lk, "club:"+KindValidate+":") {
		t.Errorf("scoped key %q should start with the scope and kind", lk)
	}
}

func TestFingerprint(t *testing.T) {
	base := lineup.BaseRotation(lineup.RightBack)

	if Fingerprint(base) != Fingerprint(base.Clone()) {
		t.Error("Fingerprint should be deterministic")
	}

	lf := base.Table().At(lineup.LeftFront)
	moved := base.WithPosition(lineup.LeftFront, court.Point{X: lf.X + 1e-6, Y: lf.Y})
	if Fingerprint(base) == Fingerprint(moved) {
		t.Error("sub-millimetre moves must change the fingerprint")
	}

	reordered := base.SortedBySlot()
	reordered[0], reordered[1] = reordered[1], reordered[0]
	if Fingerprint(base) == Fingerprint(reordered) {
		t.Error("player order should be part of the fingerprint")
	}

	nan := base.WithPosition(lineup.LeftFront, court.Point{X: math.NaN()})
	if !strings.Contains(Fingerprint(nan), "NaN") {
		t.Error("NaN coordinates should be encoded, not dropped")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := lineup.BaseRotation(lineup.RightBack)

	lk := k.LineupKey(base)
	if !strings.HasPrefix(lk, "validate:") {
		t.Errorf("LineupKey unexpected: %s", lk)
	}
	if lk == k.LineupKey(base.WithPosition(lineup.MiddleFront, court.Point{X: 4, Y: 2})) {
		t.Error("LineupKey should change when a player moves")
	}

	bk := k.BoundsKey(lineup.MiddleFront, base, false)
	if !strings.HasPrefix(bk, "bounds:") {
		t.Errorf("BoundsKey unexpected: %s", bk)
	}

	// Moving the player whose bounds are requested keeps the key
	if bk != k.BoundsKey(lineup.MiddleFront, base.WithPosition(lineup.MiddleFront, court.Point{X: 5, Y: 1}), false) {
		t.Error("BoundsKey should not depend on the moving player's position")
	}

	// Moving a non-neighbour keeps the key: LB does not constrain MF
	if bk != k.BoundsKey(lineup.MiddleFront, base.WithPosition(lineup.LeftBack, court.Point{X: 1, Y: 7}), false) {
		t.Error("BoundsKey should ignore players that cannot constrain the slot")
	}

	// Moving a neighbour changes it
	if bk == k.BoundsKey(lineup.MiddleFront, base.WithPosition(lineup.LeftFront, court.Point{X: 2, Y: 2}), false) {
		t.Error("BoundsKey should change when a neighbour moves")
	}

	// Server queries ignore everyone else
	if k.BoundsKey(lineup.RightBack, base, true) != k.BoundsKey(lineup.RightBack, nil, true) {
		t.Error("server BoundsKey should not depend on other players")
	}
	if k.BoundsKey(lineup.RightBack, base, true) == k.BoundsKey(lineup.LeftBack, base, true) {
		t.Error("server BoundsKey should include the slot")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "rotacheck:")
	base := lineup.BaseRotation(lineup.RightBack)

	// All keys should be prefixed
	if got, want := scoped.LineupKey(base), "rotacheck:"+inner.LineupKey(base); got != want {
		t.Errorf("ScopedKeyer LineupKey = %s, want %s", got, want)
	}
	bk := scoped.BoundsKey(lineup.LeftBack, base, false)
	if !strings.HasPrefix(bk, "rotacheck:bounds:") {
		t.Errorf("ScopedKeyer BoundsKey should be prefixed: %s", bk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	base := lineup.BaseRotation(lineup.RightBack)
	if key := scoped.LineupKey(base); key != "prefix:"+NewDefaultKeyer().LineupKey(base) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
