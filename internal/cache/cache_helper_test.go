package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheHelper(client, "user:"), mr
}

type cachedUser struct {
	ID     string `json:"id"`
	Role   string `json:"role"`
	IsRoot bool   `json:"is_root"`
}

func TestCacheHelper_SetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	in := cachedUser{ID: "u1", Role: "giao_vien"}
	if err := helper.Set(ctx, "id:u1", in, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out cachedUser
	if err := helper.Get(ctx, "id:u1", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if out != in {
		t.Errorf("Get() = %+v, want %+v", out, in)
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var out cachedUser
	if err := helper.Get(context.Background(), "id:missing", &out); err != ErrCacheNotFound {
		t.Errorf("Get() on miss = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"id:u1", "id:u2"} {
		if err := helper.Set(ctx, key, cachedUser{ID: key}, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if err := helper.Delete(ctx, "id:u1", "id:u2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var out cachedUser
	if err := helper.Get(ctx, "id:u1", &out); err != ErrCacheNotFound {
		t.Errorf("Get() after delete = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "school:S1:u1", cachedUser{ID: "u1"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := helper.Set(ctx, "school:S2:u2", cachedUser{ID: "u2"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := helper.InvalidatePattern(ctx, "school:S1:*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	var out cachedUser
	if err := helper.Get(ctx, "school:S1:u1", &out); err != ErrCacheNotFound {
		t.Errorf("S1 key should be gone, got %v", err)
	}
	if err := helper.Get(ctx, "school:S2:u2", &out); err != nil {
		t.Errorf("S2 key should survive, got %v", err)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "user:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:u1", cachedUser{}, time.Minute); err != nil {
		t.Errorf("Set() with nil client = %v, want nil", err)
	}
	if err := helper.Get(ctx, "id:u1", &cachedUser{}); err != ErrCacheNotAvailable {
		t.Errorf("Get() with nil client = %v, want ErrCacheNotAvailable", err)
	}
	if err := helper.Delete(ctx, "id:u1"); err != nil {
		t.Errorf("Delete() with nil client = %v, want nil", err)
	}
}

func TestCacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedUser{ID: "u1", Role: "nhan_vien"}, nil
	}

	var out cachedUser
	if err := helper.CacheOrExecute(ctx, "id:u1", &out, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("fetch calls = %d, want 1", calls)
	}
	if out.Role != "nhan_vien" {
		t.Errorf("out.Role = %q, want nhan_vien", out.Role)
	}
}
