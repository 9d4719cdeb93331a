package hotcache

import (
	"testing"

	"github.com/bastiangx/geophrase/pkg/phraseidx"
)

func TestGetPutRoundTrip(t *testing.T) {
	c := New(2)
	key := Key{Token: "foo", MaxDistance: 1, AllowPrefix: false}
	want := []phraseidx.Variant{phraseidx.Exact(1, 0)}

	if _, ok := c.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Put(key, want)
	got, ok := c.Get(key)
	if !ok || len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected hit with stored variants, got %+v ok=%v", got, ok)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	a := Key{Token: "a"}
	b := Key{Token: "b"}
	cc := Key{Token: "c"}

	c.Put(a, []phraseidx.Variant{phraseidx.Exact(1, 0)})
	c.Put(b, []phraseidx.Variant{phraseidx.Exact(2, 0)})
	c.Get(a) // touch a so b is now the oldest
	c.Put(cc, []phraseidx.Variant{phraseidx.Exact(3, 0)})

	if _, ok := c.Get(b); ok {
		t.Fatal("expected b to have been evicted as least recently used")
	}
	if _, ok := c.Get(a); !ok {
		t.Fatal("expected a to survive eviction")
	}
	if _, ok := c.Get(cc); !ok {
		t.Fatal("expected c to be present")
	}
}
