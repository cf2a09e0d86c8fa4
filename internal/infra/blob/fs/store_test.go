package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"marketcore/internal/blob/core"
)

func TestPutGetRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	info, err := store.Put(ctx, "exports/vendors.csv", strings.NewReader("id,name\n1,Ramesh\n"), core.PutOptions{
		ContentType: "text/csv",
		Metadata:    map[string]string{"resource": "vendors"},
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if info.Size == 0 || info.ETag == "" {
		t.Fatalf("incomplete info: %+v", info)
	}

	got, rc, err := store.Get(ctx, "exports/vendors.csv")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "id,name\n1,Ramesh\n" {
		t.Fatalf("payload mismatch: %q", data)
	}
	if got.ContentType != "text/csv" || got.Metadata["resource"] != "vendors" {
		t.Fatalf("metadata lost: %+v", got)
	}
}

func TestPutRejectsDuplicateKey(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Put(ctx, "a.json", strings.NewReader("{}"), core.PutOptions{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Put(ctx, "a.json", strings.NewReader("{}"), core.PutOptions{}); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"", "../escape", "/abs", "a/../../b"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestListAndDelete(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"exports/a.csv", "exports/b.csv", "other/c.csv"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "exports/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "exports/a.csv" {
		t.Fatalf("unexpected listing: %+v", infos)
	}

	removed, err := store.Delete(ctx, "exports/a.csv")
	if err != nil || !removed {
		t.Fatalf("Delete: removed=%v err=%v", removed, err)
	}
	removed, err = store.Delete(ctx, "exports/a.csv")
	if err != nil || removed {
		t.Fatalf("second delete should be a no-op: removed=%v err=%v", removed, err)
	}
}

func TestPresignOnlySupportsGet(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := store.PresignURL(context.Background(), "k", core.SignedURLOptions{Method: "PUT"}); err != core.ErrUnsupported {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
