package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"skynotes/internal/bsky"
	"skynotes/internal/service"
	"skynotes/internal/service/mocks"
	"skynotes/internal/session"
	"skynotes/internal/storage"
)

func TestSessionService_Status(t *testing.T) {
	ctx := context.Background()
	updated := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rec     *storage.SessionRecord
		err     error
		want    service.SessionStatus
		wantErr bool
	}{
		{
			name: "logged in",
			rec:  &storage.SessionRecord{AccessToken: "a", AccountID: "did:plc:x", AccountHandle: "x.test", UpdatedAt: updated},
			want: service.SessionStatus{LoggedIn: true, DID: "did:plc:x", Handle: "x.test", UpdatedAt: updated},
		},
		{name: "logged out", err: session.ErrNoSession},
		{name: "store failure", err: errors.New("disk I/O error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sessions := mocks.NewMockSessionManager(ctrl)
			sessions.EXPECT().Current(gomock.Any()).Return(tt.rec, tt.err)

			got, err := service.NewSessionService(sessions).Status(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Status() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Status() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSessionService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sessions := mocks.NewMockSessionManager(ctrl)
		sessions.EXPECT().Login(gomock.Any(), "alice.test", "app-pass").
			Return(&storage.SessionRecord{AccessToken: "a", AccountHandle: "alice.test"}, nil)

		got, err := service.NewSessionService(sessions).Login(ctx, service.LoginInput{Identifier: "alice.test", Password: "app-pass"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if !got.LoggedIn || got.Handle != "alice.test" {
			t.Errorf("Login() = %+v", got)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sessions := mocks.NewMockSessionManager(ctrl)

		_, err := service.NewSessionService(sessions).Login(ctx, service.LoginInput{Identifier: "alice.test"})
		var ve *service.ValidationError
		if !errors.As(err, &ve) || ve.Field != "password" {
			t.Errorf("Login() error = %v, want validation error on password", err)
		}
	})

	t.Run("rejected credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sessions := mocks.NewMockSessionManager(ctrl)
		sessions.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &bsky.APIError{StatusCode: 401, Body: `{"error":"AuthenticationRequired"}`})

		_, err := service.NewSessionService(sessions).Login(ctx, service.LoginInput{Identifier: "a", Password: "b"})
		if !errors.Is(err, service.ErrUnauthorized) {
			t.Errorf("Login() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("service down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sessions := mocks.NewMockSessionManager(ctrl)
		sessions.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &bsky.APIError{StatusCode: 502, Body: "bad gateway"})

		_, err := service.NewSessionService(sessions).Login(ctx, service.LoginInput{Identifier: "a", Password: "b"})
		if !errors.Is(err, service.ErrExternalService) {
			t.Errorf("Login() error = %v, want ErrExternalService", err)
		}
	})
}

func TestSessionService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionManager(ctrl)
	sessions.EXPECT().Logout(gomock.Any()).Return(nil)
	sessions.EXPECT().Logout(gomock.Any()).Return(errors.New("locked"))

	svc := service.NewSessionService(sessions)
	if err := svc.Logout(context.Background()); err != nil {
		t.Errorf("Logout() error = %v", err)
	}
	if err := svc.Logout(context.Background()); err == nil {
		t.Error("Logout() error = nil, want error")
	}
}
