package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"facet/internal/core"
)

const (
	draftPrefix     = "drafts/"
	publishedPrefix = "published/"
)

// Drafts manages the draft lifecycle on top of a BlobStore: save (overwrite),
// load, list, publish (move to published/), delete. Last write wins.
type Drafts struct {
	blobs BlobStore
}

// NewDrafts builds a Drafts layer.
func NewDrafts(blobs BlobStore) *Drafts {
	return &Drafts{blobs: blobs}
}

// Save writes the draft snapshot, stamping SavedAt, and returns its key.
func (d *Drafts) Save(ctx context.Context, draft core.Draft) (string, error) {
	if draft.Month == "" || draft.Year == "" || draft.Editor == "" {
		return "", fmt.Errorf("draft key requires month, year, and editor")
	}
	draft.SavedAt = time.Now().UTC()

	data, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("encoding draft: %w", err)
	}

	key := draftPrefix + draft.Key()
	if err := d.blobs.Put(ctx, key, data, "application/json"); err != nil {
		return "", err
	}
	return key, nil
}

// Load reads one draft.
func (d *Drafts) Load(ctx context.Context, month, year, editor string) (*core.Draft, error) {
	return d.load(ctx, draftPrefix, month, year, editor)
}

// LoadPublished reads one published issue.
func (d *Drafts) LoadPublished(ctx context.Context, month, year, editor string) (*core.Draft, error) {
	return d.load(ctx, publishedPrefix, month, year, editor)
}

func (d *Drafts) load(ctx context.Context, prefix, month, year, editor string) (*core.Draft, error) {
	key := prefix + core.Draft{Month: month, Year: year, Editor: editor}.Key()
	data, err := d.blobs.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var draft core.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("decoding draft %s: %w", key, err)
	}
	return &draft, nil
}

// List returns the draft names (keys minus prefix and extension).
func (d *Drafts) List(ctx context.Context) ([]string, error) {
	return d.list(ctx, draftPrefix)
}

// ListPublished returns the published issue names.
func (d *Drafts) ListPublished(ctx context.Context) ([]string, error) {
	return d.list(ctx, publishedPrefix)
}

func (d *Drafts) list(ctx context.Context, prefix string) ([]string, error) {
	keys, err := d.blobs.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, prefix)
		name = strings.TrimSuffix(name, ".json")
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Publish promotes a draft: copy to published/, then delete the source.
func (d *Drafts) Publish(ctx context.Context, month, year, editor string) error {
	name := core.Draft{Month: month, Year: year, Editor: editor}.Key()
	if err := d.blobs.Copy(ctx, draftPrefix+name, publishedPrefix+name); err != nil {
		return err
	}
	return d.blobs.Delete(ctx, draftPrefix+name)
}

// Delete removes a draft without publishing it.
func (d *Drafts) Delete(ctx context.Context, month, year, editor string) error {
	name := core.Draft{Month: month, Year: year, Editor: editor}.Key()
	return d.blobs.Delete(ctx, draftPrefix+name)
}
