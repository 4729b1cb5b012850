package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"facet/internal/core"
)

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	drafts := NewDrafts(NewMemStore())

	draft := core.Draft{
		Month:  "June",
		Year:   "2026",
		Editor: "dana",
		Content: core.NewsletterContent{
			"intro": "Summer is here!",
		},
	}

	key, err := drafts.Save(ctx, draft)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if key != "drafts/June-2026-dana.json" {
		t.Errorf("key = %q", key)
	}

	loaded, err := drafts.Load(ctx, "June", "2026", "dana")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Content["intro"] != "Summer is here!" {
		t.Errorf("Content = %v", loaded.Content)
	}
	if loaded.SavedAt.IsZero() {
		t.Error("SavedAt not stamped")
	}

	// Overwrite: last write wins.
	draft.Content["intro"] = "Revised intro"
	if _, err := drafts.Save(ctx, draft); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	loaded, err = drafts.Load(ctx, "June", "2026", "dana")
	if err != nil {
		t.Fatalf("Load after overwrite: %v", err)
	}
	if loaded.Content["intro"] != "Revised intro" {
		t.Errorf("overwrite not applied: %v", loaded.Content)
	}

	names, err := drafts.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "June-2026-dana" {
		t.Errorf("names = %v", names)
	}
}

func TestDraftPublish(t *testing.T) {
	ctx := context.Background()
	drafts := NewDrafts(NewMemStore())

	if _, err := drafts.Save(ctx, core.Draft{Month: "June", Year: "2026", Editor: "dana"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := drafts.Publish(ctx, "June", "2026", "dana"); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	// Source draft is gone, published copy exists.
	if _, err := drafts.Load(ctx, "June", "2026", "dana"); !errors.Is(err, ErrNotFound) {
		t.Errorf("draft still present after publish: %v", err)
	}
	published, err := drafts.LoadPublished(ctx, "June", "2026", "dana")
	if err != nil {
		t.Fatalf("LoadPublished: %v", err)
	}
	if published.Month != "June" {
		t.Errorf("published = %+v", published)
	}

	names, err := drafts.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(names) != 1 || names[0] != "June-2026-dana" {
		t.Errorf("names = %v", names)
	}
}

func TestDraftSaveRequiresKeyFields(t *testing.T) {
	if _, err := NewDrafts(NewMemStore()).Save(context.Background(), core.Draft{Month: "June"}); err == nil {
		t.Fatal("expected error for incomplete key")
	}
}

func TestSavedItems(t *testing.T) {
	ctx := context.Background()
	saved := NewSavedItems(NewMemStore())

	// Empty store lists cleanly.
	items, err := saved.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len = %d, want 0", len(items))
	}

	first := core.SearchResult{Title: "Blue Belle", URL: "https://a.com/1"}
	second := core.SearchResult{Title: "Hope Diamond", URL: "https://b.com/2"}

	if _, err := saved.Add(ctx, first); err != nil {
		t.Fatalf("Add: %v", err)
	}
	items, err = saved.Add(ctx, second)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Newest first.
	if len(items) != 2 || items[0].URL != "https://b.com/2" {
		t.Errorf("items = %+v", items)
	}

	// Duplicate URL is a no-op.
	items, err = saved.Add(ctx, first)
	if err != nil {
		t.Fatalf("Add duplicate: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("duplicate changed the list: %+v", items)
	}

	items, err = saved.Remove(ctx, "https://b.com/2")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(items) != 1 || items[0].URL != "https://a.com/1" {
		t.Errorf("items after remove = %+v", items)
	}
}

func TestMemStoreCopyMissing(t *testing.T) {
	if err := NewMemStore().Copy(context.Background(), "missing", "dst"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestIsNoSuchKey(t *testing.T) {
	wrapped := fmt.Errorf("operation error S3: CopyObject: %w", &types.NoSuchKey{})
	if !isNoSuchKey(wrapped) {
		t.Error("wrapped NoSuchKey not recognized")
	}
	if isNoSuchKey(errors.New("access denied")) {
		t.Error("unrelated error recognized as NoSuchKey")
	}
}
