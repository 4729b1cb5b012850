package core

import "time"

// Video represents one normalized video from the catalog provider.
// Immutable once constructed; newsletter slots reference a subset of fields.
type Video struct {
	ID           string `json:"id"`            // Provider video identifier
	Title        string `json:"title"`         // Video title
	Description  string `json:"description"`   // Full video description
	ThumbnailURL string `json:"thumbnail_url"` // Best available thumbnail (maxres > high > medium > default)
	ChannelTitle string `json:"channel_title"` // Owning channel's display name
	PublishedAt  string `json:"published_at"`  // RFC 3339 publication timestamp as returned by the provider
	ViewCount    uint64 `json:"view_count"`    // Total view count at fetch time
	LikeCount    uint64 `json:"like_count"`    // Total like count at fetch time
	Duration     string `json:"duration"`      // ISO-8601 duration (e.g., "PT4M13S")
	URL          string `json:"url"`           // Canonical watch URL
}

// BlogPost represents one normalized post from the blog feed provider.
type BlogPost struct {
	ID               int      `json:"id"`                 // Provider post identifier
	Title            string   `json:"title"`              // HTML-stripped, entity-decoded title
	URL              string   `json:"url"`                // Canonical post URL
	Slug             string   `json:"slug"`               // URL slug
	Excerpt          string   `json:"excerpt"`            // HTML-stripped excerpt, truncated ~200 chars at a word boundary
	FeaturedImageURL string   `json:"featured_image_url"` // Featured image, best available size
	Author           string   `json:"author"`             // Author display name (may be empty)
	PublishedDate    string   `json:"published_date"`     // Publication date as returned by the provider
	Categories       []string `json:"categories"`         // Category names (may be empty)
}

// Category represents one blog category from the feed provider.
type Category struct {
	ID    int    `json:"id"`    // Provider category identifier
	Name  string `json:"name"`  // Display name
	Slug  string `json:"slug"`  // URL slug
	Count int    `json:"count"` // Number of posts in the category
}

// SearchResult represents one normalized item from the research/search
// provider, whether parsed from structured JSON or synthesized from prose
// via citation matching.
type SearchResult struct {
	Title         string `json:"title"`          // Item title (synthesized from prose when unstructured)
	URL           string `json:"url"`            // Source URL
	Publisher     string `json:"publisher"`      // Publisher name or registrable domain fallback
	PublishedDate string `json:"published_date"` // Publication date if known (may be empty)
	Summary       string `json:"summary"`        // Short summary of the item
	ImageURL      string `json:"image_url"`      // Representative image if known (may be empty)
}

// PageMetadata represents scraped metadata for a manually pasted article link.
type PageMetadata struct {
	Title         string `json:"title"`          // og:title falling back to <title>
	Description   string `json:"description"`    // og:description falling back to meta description
	Image         string `json:"image"`          // og:image (may be empty)
	Publisher     string `json:"publisher"`      // og:site_name falling back to registrable domain minus "www."
	PublishedDate string `json:"published_date"` // article:published_time if present
	URL           string `json:"url"`            // The fetched URL
}

// GeneratedField is the output of one text-generation call bound to one
// newsletter slot, after artifact stripping and word-limit enforcement.
type GeneratedField struct {
	ID       string `json:"id"`        // Unique identifier for the generation
	Slot     string `json:"slot"`      // Newsletter slot name (intro, quick_tip, ...)
	Text     string `json:"text"`      // Cleaned generated text
	MaxWords int    `json:"max_words"` // Word-limit contract for the slot (0 = unconstrained)
	Model    string `json:"model"`     // Model used for generation
}

// PriceItem is the manually-curated or generated "Guess the Price" record.
type PriceItem struct {
	Material     string `json:"material"`       // What the piece is made of
	FoundIn      string `json:"found_in"`       // Where the materials are sourced
	WhereItLives string `json:"where_it_lives"` // Museum/collection/owner
	FunFact      string `json:"fun_fact"`       // One interesting fact
	Question     string `json:"question"`       // Teaser question for readers
	SourceURL    string `json:"source_url"`     // URL the item was drawn from (may be empty)
	ImageURL     string `json:"image_url"`      // Item image (may be empty)
}

// SubjectLine is one subject/preheader pairing proposed for the send.
type SubjectLine struct {
	Subject   string `json:"subject"`   // Email subject line
	Preheader string `json:"preheader"` // Preview text shown after the subject
}

// NewsletterContent is the aggregate root for one edit session: a mapping
// from slot name to that slot's value. It has no single constructor — each
// request contributes whatever subset of slots it produced, and callers merge
// partial maps client-side.
type NewsletterContent map[string]any

// Draft is a persisted snapshot of in-progress newsletter content.
// Keyed by month-year-editor; lifecycle is create, overwrite, then either
// publish or delete. Last write wins.
type Draft struct {
	Month   string            `json:"month"`    // Issue month name (e.g., "June")
	Year    string            `json:"year"`     // Issue year (e.g., "2026")
	Editor  string            `json:"editor"`   // Editor identifier used in the key
	SavedAt time.Time         `json:"saved_at"` // Timestamp of the last write
	Content NewsletterContent `json:"content"`  // Opaque content snapshot
}

// Key returns the storage key suffix for the draft, without the
// drafts/ or published/ prefix.
func (d Draft) Key() string {
	return d.Month + "-" + d.Year + "-" + d.Editor + ".json"
}

// SavedItem is a bookmarked search result kept in the shared saved-items list.
type SavedItem struct {
	SearchResult
	SavedAt time.Time `json:"saved_at"` // When the item was bookmarked
}
