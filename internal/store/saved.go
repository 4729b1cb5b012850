package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"facet/internal/core"
)

// savedKey is the single shared blob holding every editor's bookmarks.
const savedKey = "saved/articles.json"

// SavedItems manages the shared bookmark list: newest first, deduplicated by
// URL. The whole list lives in one JSON blob, so concurrent edits are
// last-write-wins like everything else in the store.
type SavedItems struct {
	blobs BlobStore
}

// NewSavedItems builds a SavedItems layer.
func NewSavedItems(blobs BlobStore) *SavedItems {
	return &SavedItems{blobs: blobs}
}

// List returns all saved items, newest first.
func (s *SavedItems) List(ctx context.Context) ([]core.SavedItem, error) {
	data, err := s.blobs.Get(ctx, savedKey)
	if errors.Is(err, ErrNotFound) {
		return []core.SavedItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []core.SavedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding saved items: %w", err)
	}
	return items, nil
}

// Add inserts a result at the front of the list. Re-saving an already-saved
// URL is a no-op.
func (s *SavedItems) Add(ctx context.Context, result core.SearchResult) ([]core.SavedItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.URL == result.URL {
			return items, nil
		}
	}

	items = append([]core.SavedItem{{SearchResult: result, SavedAt: time.Now().UTC()}}, items...)
	if err := s.write(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove deletes the item with the given URL. Removing an unknown URL is a
// no-op.
func (s *SavedItems) Remove(ctx context.Context, url string) ([]core.SavedItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.URL != url {
			kept = append(kept, item)
		}
	}
	if err := s.write(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *SavedItems) write(ctx context.Context, items []core.SavedItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding saved items: %w", err)
	}
	return s.blobs.Put(ctx, savedKey, data, "application/json")
}
