package detailcache

import (
	"fmt"
	"testing"

	"github.com/p2pdesk/orders-dashboard/pkg/client"
)

func TestCache_GetPut(t *testing.T) {
	cache := New(Config{MaxEntries: 10})

	if _, ok := cache.Get("A"); ok {
		t.Error("Expected miss on empty cache")
	}

	detail := client.OrderDetail{ID: "A", Amount: 5, PaymentTermList: []client.PaymentTerm{}}
	cache.Put("A", detail)

	got, ok := cache.Get("A")
	if !ok {
		t.Fatal("Expected hit after Put")
	}
	if got.ID != "A" || got.Amount != 5 {
		t.Errorf("Get() = %+v, want %+v", got, detail)
	}
}

func TestCache_PutOverwrites(t *testing.T) {
	cache := New(Config{MaxEntries: 10})

	cache.Put("A", client.OrderDetail{ID: "A", Amount: 1, PaymentTermList: []client.PaymentTerm{}})
	cache.Put("A", client.OrderDetail{ID: "A", Amount: 2, PaymentTermList: []client.PaymentTerm{}})

	got, _ := cache.Get("A")
	if got.Amount != 2 {
		t.Errorf("Amount = %v, want 2 (overwritten)", got.Amount)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestCache_MaybeEvictAll(t *testing.T) {
	cache := New(Config{MaxEntries: 3})

	for i := 0; i < 3; i++ {
		cache.Put(fmt.Sprintf("id-%d", i), client.OrderDetail{PaymentTermList: []client.PaymentTerm{}})
	}

	// At the ceiling, not over it: no flush.
	cache.MaybeEvictAll()
	if cache.Len() != 3 {
		t.Errorf("Len() = %d after MaybeEvictAll at ceiling, want 3", cache.Len())
	}

	// One past the ceiling: full flush.
	cache.Put("id-3", client.OrderDetail{PaymentTermList: []client.PaymentTerm{}})
	cache.MaybeEvictAll()
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after MaybeEvictAll past ceiling, want 0", cache.Len())
	}
}

func TestCache_DefaultCeiling(t *testing.T) {
	cache := New(Config{})

	for i := 0; i < DefaultMaxEntries+1; i++ {
		cache.Put(fmt.Sprintf("id-%d", i), client.OrderDetail{PaymentTermList: []client.PaymentTerm{}})
	}

	cache.MaybeEvictAll()
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after exceeding default ceiling", cache.Len())
	}
}
