package storage

import "time"

// NoteStatus is the publication state of a note.
type NoteStatus string

const (
	StatusDraft     NoteStatus = "draft"
	StatusScheduled NoteStatus = "scheduled"
	StatusPublished NoteStatus = "published"
	StatusFailed    NoteStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s NoteStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished, StatusFailed:
		return true
	}
	return false
}

// MaxImages is the maximum number of images attached to a single post.
const MaxImages = 4

// LinkPreview is a link card: either fetched Open Graph metadata or a
// user-edited copy stored on the note.
type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// NoteRecord is a sticky note stored in the database.
type NoteRecord struct {
	ID                string       // UUID
	Content           string       // HTML fragment from the editor
	Title             string
	Color             string
	Status            NoteStatus
	ScheduledFor      *time.Time   // Set while scheduled; kept after failure
	PostedAt          *time.Time   // Last successful publish
	PostURI           string       // at:// URI of the last published post
	PostHistory       []time.Time  // One entry per successful publish
	FailureReason     string       // Set only when Status is failed
	CustomLinkPreview *LinkPreview // User-edited preview, takes precedence over fetching
	ImageData         []string     // data: URLs or bare base64 payloads
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Clone returns a deep copy of the note.
func (n *NoteRecord) Clone() *NoteRecord {
	if n == nil {
		return nil
	}
	c := *n
	if n.ScheduledFor != nil {
		t := *n.ScheduledFor
		c.ScheduledFor = &t
	}
	if n.PostedAt != nil {
		t := *n.PostedAt
		c.PostedAt = &t
	}
	if n.CustomLinkPreview != nil {
		p := *n.CustomLinkPreview
		c.CustomLinkPreview = &p
	}
	c.PostHistory = append([]time.Time(nil), n.PostHistory...)
	c.ImageData = append([]string(nil), n.ImageData...)
	return &c
}

// IsDue reports whether the note is scheduled and its time has passed.
// A scheduled note without a time counts as due so the dispatcher can fail it.
func (n *NoteRecord) IsDue(now time.Time) bool {
	if n.Status != StatusScheduled {
		return false
	}
	return n.ScheduledFor == nil || !n.ScheduledFor.After(now)
}

// SessionRecord is the stored Bluesky credential.
type SessionRecord struct {
	AccessToken   string
	RefreshToken  string
	AccountID     string // DID
	AccountHandle string
	UpdatedAt     time.Time
}
