package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewNoteRepo(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))
	if repo == nil {
		t.Fatal("NewNoteRepo() returned nil")
	}
}

func TestNoteRepo_UpsertAndGet(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))
	ctx := context.Background()

	scheduledFor := time.UnixMilli(1_700_000_000_000).UTC()
	postedAt := time.UnixMilli(1_690_000_000_000).UTC()

	note := &NoteRecord{
		Content:      "hello <b>world</b>",
		Title:        "Greeting",
		Color:        "#ffeb3b",
		Status:       StatusScheduled,
		ScheduledFor: &scheduledFor,
		PostedAt:     &postedAt,
		PostURI:      "at://did:plc:alice/app.bsky.feed.post/1",
		PostHistory:  []time.Time{postedAt},
		CustomLinkPreview: &LinkPreview{
			URL:   "https://example.com",
			Title: "Example",
		},
		ImageData: []string{"data:image/png;base64,AAAA"},
	}

	if err := repo.Upsert(ctx, note); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if note.ID == "" {
		t.Fatal("Upsert() should assign an ID")
	}
	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Error("Upsert() should set timestamps")
	}

	got, err := repo.Get(ctx, note.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.Content != note.Content || got.Title != "Greeting" || got.Color != "#ffeb3b" {
		t.Errorf("Get() basic fields = %+v", got)
	}
	if got.Status != StatusScheduled {
		t.Errorf("Get() Status = %v, want scheduled", got.Status)
	}
	if got.ScheduledFor == nil || !got.ScheduledFor.Equal(scheduledFor) {
		t.Errorf("Get() ScheduledFor = %v, want %v", got.ScheduledFor, scheduledFor)
	}
	if got.PostedAt == nil || !got.PostedAt.Equal(postedAt) {
		t.Errorf("Get() PostedAt = %v, want %v", got.PostedAt, postedAt)
	}
	if len(got.PostHistory) != 1 || !got.PostHistory[0].Equal(postedAt) {
		t.Errorf("Get() PostHistory = %v", got.PostHistory)
	}
	if got.CustomLinkPreview == nil || got.CustomLinkPreview.Title != "Example" {
		t.Errorf("Get() CustomLinkPreview = %+v", got.CustomLinkPreview)
	}
	if len(got.ImageData) != 1 || got.ImageData[0] != "data:image/png;base64,AAAA" {
		t.Errorf("Get() ImageData = %v", got.ImageData)
	}
}

func TestNoteRepo_Get_NotFound(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))

	note, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if note != nil {
		t.Errorf("Get() note = %+v, want nil", note)
	}
}

func TestNoteRepo_Upsert_LastWriterWins(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))
	ctx := context.Background()

	note := &NoteRecord{ID: "n1", Content: "first", Status: StatusDraft}
	if err := repo.Upsert(ctx, note); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	createdAt := note.CreatedAt

	// Two writers load the same note and write different versions
	a, _ := repo.Get(ctx, "n1")
	b, _ := repo.Get(ctx, "n1")
	a.Content = "from editor"
	b.Status = StatusFailed
	b.FailureReason = "boom"

	if err := repo.Upsert(ctx, a); err != nil {
		t.Fatalf("Upsert(a) error = %v", err)
	}
	if err := repo.Upsert(ctx, b); err != nil {
		t.Fatalf("Upsert(b) error = %v", err)
	}

	got, err := repo.Get(ctx, "n1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Content != "first" || got.Status != StatusFailed || got.FailureReason != "boom" {
		t.Errorf("Get() = %+v, want the last write", got)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt changed: %v -> %v", createdAt, got.CreatedAt)
	}
}

func TestNoteRepo_Upsert_ClearsNullableColumns(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))
	ctx := context.Background()

	at := time.Now().UTC()
	note := &NoteRecord{
		ID:                "n1",
		Status:            StatusScheduled,
		ScheduledFor:      &at,
		CustomLinkPreview: &LinkPreview{URL: "https://example.com"},
	}
	if err := repo.Upsert(ctx, note); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	note.Status = StatusDraft
	note.ScheduledFor = nil
	note.CustomLinkPreview = nil
	if err := repo.Upsert(ctx, note); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, _ := repo.Get(ctx, "n1")
	if got.ScheduledFor != nil {
		t.Errorf("ScheduledFor = %v, want nil", got.ScheduledFor)
	}
	if got.CustomLinkPreview != nil {
		t.Errorf("CustomLinkPreview = %+v, want nil", got.CustomLinkPreview)
	}
}

func TestNoteRepo_GetAllAndDelete(t *testing.T) {
	repo := NewNoteRepo(newTestDB(t))
	ctx := context.Background()

	base := time.UnixMilli(1_700_000_000_000).UTC()
	for i, id := range []string{"a", "b", "c"} {
		note := &NoteRecord{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Upsert(ctx, note); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	notes, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(notes) != 3 || notes[0].ID != "a" || notes[2].ID != "c" {
		t.Fatalf("GetAll() = %d notes, want a,b,c in order", len(notes))
	}
	if notes[0].Status != StatusDraft {
		t.Errorf("default status = %v, want draft", notes[0].Status)
	}

	if err := repo.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, "b"); err != nil {
		t.Errorf("Delete() of missing note error = %v, want nil", err)
	}

	notes, _ = repo.GetAll(ctx)
	if len(notes) != 2 {
		t.Errorf("GetAll() after delete = %d notes, want 2", len(notes))
	}
}

func TestNoteRepo_ClosedDatabase(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepo(db)
	_ = db.Close()

	if _, err := repo.GetAll(context.Background()); err == nil {
		t.Error("GetAll() on closed db should fail loudly")
	}
	if err := repo.Upsert(context.Background(), &NoteRecord{ID: "x"}); err == nil {
		t.Error("Upsert() on closed db should fail loudly")
	}
}

func TestNoteRecord_IsDue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		note NoteRecord
		want bool
	}{
		{name: "scheduled in the past", note: NoteRecord{Status: StatusScheduled, ScheduledFor: &past}, want: true},
		{name: "scheduled exactly now", note: NoteRecord{Status: StatusScheduled, ScheduledFor: &now}, want: true},
		{name: "scheduled in the future", note: NoteRecord{Status: StatusScheduled, ScheduledFor: &future}, want: false},
		{name: "scheduled without time", note: NoteRecord{Status: StatusScheduled}, want: true},
		{name: "failed with past time", note: NoteRecord{Status: StatusFailed, ScheduledFor: &past}, want: false},
		{name: "draft", note: NoteRecord{Status: StatusDraft, ScheduledFor: &past}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.note.IsDue(now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNoteRecord_Clone(t *testing.T) {
	at := time.Now()
	orig := &NoteRecord{
		ScheduledFor:      &at,
		PostHistory:       []time.Time{at},
		ImageData:         []string{"a"},
		CustomLinkPreview: &LinkPreview{URL: "u"},
	}
	c := orig.Clone()
	c.PostHistory[0] = time.Time{}
	c.ImageData[0] = "b"
	c.CustomLinkPreview.URL = "v"
	*c.ScheduledFor = time.Time{}

	if orig.PostHistory[0].IsZero() || orig.ImageData[0] != "a" || orig.CustomLinkPreview.URL != "u" || orig.ScheduledFor.IsZero() {
		t.Error("Clone() shares memory with the original")
	}
}
