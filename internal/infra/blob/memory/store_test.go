package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"marketcore/internal/blob/core"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.Put(ctx, "exports/r.json", strings.NewReader(`{"ok":true}`), core.PutOptions{ContentType: "application/json"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Put(ctx, "exports/r.json", strings.NewReader("{}"), core.PutOptions{}); err == nil {
		t.Fatalf("expected duplicate key error")
	}

	info, rc, err := store.Get(ctx, "exports/r.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != `{"ok":true}` || info.ContentType != "application/json" {
		t.Fatalf("round trip mismatch: %q %+v", data, info)
	}

	infos, err := store.List(ctx, "exports/")
	if err != nil || len(infos) != 1 {
		t.Fatalf("List: %v %v", infos, err)
	}

	removed, err := store.Delete(ctx, "exports/r.json")
	if err != nil || !removed {
		t.Fatalf("Delete: removed=%v err=%v", removed, err)
	}
	if _, err := store.Head(ctx, "exports/r.json"); err == nil {
		t.Fatalf("expected missing blob after delete")
	}
}
