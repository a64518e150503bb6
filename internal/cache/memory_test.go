package cache

import (
	"context"
	"testing"
	"time"

	"github.com/openmysteries/backend/internal/article"
)

func TestMemoryStore_GetMissThenHit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := s.GetDocument(ctx, "k")
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	doc := article.Document{ID: "dark-matter", Title: "T"}
	if err := s.SetDocument(ctx, "k", doc); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok, err := s.GetDocument(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.ID != "dark-matter" {
		t.Fatalf("unexpected document: %+v", got)
	}
	if got.Sections == nil {
		t.Fatalf("expected defaults applied on read")
	}
}

func TestMemoryStore_LockMutualExclusion(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ok, err := s.AcquireLock(ctx, "lk", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire should win: ok=%v err=%v", ok, err)
	}
	ok, err = s.AcquireLock(ctx, "lk", time.Minute)
	if err != nil || ok {
		t.Fatalf("second acquire should lose: ok=%v err=%v", ok, err)
	}
}

func TestMemoryStore_LockExpires(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if ok, _ := s.AcquireLock(ctx, "lk", 10*time.Millisecond); !ok {
		t.Fatalf("first acquire should win")
	}
	time.Sleep(20 * time.Millisecond)
	if ok, _ := s.AcquireLock(ctx, "lk", time.Minute); !ok {
		t.Fatalf("expired lock should be re-acquirable")
	}
}

func TestMemoryStore_ReleaseIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.ReleaseLock(ctx, "never-held"); err != nil {
		t.Fatalf("releasing an unheld lock must not error: %v", err)
	}
	if ok, _ := s.AcquireLock(ctx, "lk", time.Minute); !ok {
		t.Fatalf("acquire failed")
	}
	if err := s.ReleaseLock(ctx, "lk"); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := s.ReleaseLock(ctx, "lk"); err != nil {
		t.Fatalf("double release must not error: %v", err)
	}
	if ok, _ := s.AcquireLock(ctx, "lk", time.Minute); !ok {
		t.Fatalf("released lock should be re-acquirable")
	}
}
