package service

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"skynotes/internal/storage"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "field and message",
			err: &ValidationError{
				Field:   "scheduled_for",
				Message: "cannot be blank",
			},
			want: "validation error on field scheduled_for: cannot be blank",
		},
		{
			name: "empty field",
			err: &ValidationError{
				Field:   "",
				Message: "invalid",
			},
			want: "validation error on field : invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError_IsInvalidInput(t *testing.T) {
	var err error = &ValidationError{Field: "format", Message: "must be a valid value"}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ValidationError should not match ErrNotFound")
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "nil error",
			err:     nil,
			msg:     "context",
			wantNil: true,
		},
		{
			name:    "wrapped error",
			err:     errors.New("database is locked"),
			msg:     "failed to save note",
			wantMsg: "failed to save note: database is locked",
		},
		{
			name:    "empty message",
			err:     errors.New("original error"),
			msg:     "",
			wantMsg: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("WrapError() = nil, want error")
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("WrapError() = %v, want %v", got.Error(), tt.wantMsg)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("WrapError() should wrap original error")
			}
		})
	}
}

func TestFromValidation(t *testing.T) {
	if fromValidation(nil) != nil {
		t.Error("fromValidation(nil) should be nil")
	}

	err := fromValidation(validation.Errors{
		"title":  errors.New("the length must be no more than 200"),
		"format": errors.New("must be a valid value"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("fromValidation() = %T, want *ValidationError", err)
	}
	if ve.Field != "format" || ve.Message != "must be a valid value" {
		t.Errorf("fromValidation() = %+v, want the first field by name", ve)
	}

	plain := fromValidation(errors.New("boom"))
	if !errors.As(plain, &ve) || ve.Field != "" {
		t.Errorf("fromValidation(plain) = %v", plain)
	}
}

func TestNoteInput_Validate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        NoteInput
		wantField string
	}{
		{name: "empty input", in: NoteInput{}},
		{name: "markdown", in: NoteInput{Content: "# hi", Format: FormatMarkdown}},
		{name: "unknown format", in: NoteInput{Format: "rtf"}, wantField: "format"},
		{
			name:      "too many images",
			in:        NoteInput{ImageData: []string{"a", "b", "c", "d", "e"}},
			wantField: "image_data",
		},
		{name: "empty image", in: NoteInput{ImageData: []string{""}}, wantField: "image_data.0"},
		{
			name: "valid preview",
			in:   NoteInput{CustomLinkPreview: &storage.LinkPreview{URL: "https://example.com/a", Title: "A"}},
		},
		{
			name:      "preview without url",
			in:        NoteInput{CustomLinkPreview: &storage.LinkPreview{Title: "A"}},
			wantField: "custom_link_preview.url",
		},
		{
			name:      "preview with non-http url",
			in:        NoteInput{CustomLinkPreview: &storage.LinkPreview{URL: "ftp://example.com"}},
			wantField: "custom_link_preview.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate(ctx)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}
