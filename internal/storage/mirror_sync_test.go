package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"skynotes/internal/storage"
	"skynotes/internal/storage/mocks"
)

func TestMirrorSync_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockNoteStore(ctrl)
	store.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("disk gone"))

	m, err := storage.OpenMirror(filepath.Join(t.TempDir(), "mirror.bolt"))
	if err != nil {
		t.Fatalf("OpenMirror() error = %v", err)
	}
	defer func() {
		_ = m.Close()
	}()
	at := time.Now()
	if err := m.Replace([]*storage.NoteRecord{{ID: "keep"}}, at); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	if _, err := storage.NewMirrorSync(store, m).Sync(context.Background()); err == nil {
		t.Fatal("Sync() expected error, got nil")
	}

	// The previous projection survives a failed sync
	notes, _ := m.Notes()
	if len(notes) != 1 || notes[0].ID != "keep" {
		t.Errorf("mirror after failed sync = %+v", notes)
	}
}
