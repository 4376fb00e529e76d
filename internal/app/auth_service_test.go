package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/domain"
	"github.com/reservaya/api/internal/storage/memory"
)

type stubIssuer struct{}

func (stubIssuer) Issue(userID, email, _ string) (string, error) {
	return "token-" + userID + "-" + email, nil
}

type recordingMailer struct {
	to []string
}

func (m *recordingMailer) Send(to, _, _ string) error {
	m.to = append(m.to, to)
	return nil
}

func newAuth(mailer Mailer) *AuthService {
	return NewAuthService(memory.NewUserRepository(), stubIssuer{}, mailer, clock.NewFixed(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)), nil)
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	t.Run("unknown email logs in as demo user", func(t *testing.T) {
		svc := newAuth(&recordingMailer{})
		res, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "x"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.User.ID != "1" || res.User.Name != "Usuario Demo" || res.User.Email != "a@b.com" {
			t.Fatalf("unexpected user %+v", res.User)
		}
		if res.Token == "" {
			t.Fatalf("expected token")
		}
	})

	cases := []LoginInput{
		{Email: "", Password: "x"},
		{Email: "a@b.com", Password: ""},
		{Email: "   ", Password: "x"},
	}
	for _, in := range cases {
		in := in
		t.Run("missing credentials "+in.Email, func(t *testing.T) {
			svc := newAuth(&recordingMailer{})
			if _, err := svc.Login(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}

	t.Run("registered user must match password", func(t *testing.T) {
		svc := newAuth(&recordingMailer{})
		reg, err := svc.Register(context.Background(), RegisterInput{Email: "Ana@Example.com", Password: "secret", Name: "Ana"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		res, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "secret"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.User.ID != reg.User.ID || res.User.Name != "Ana" {
			t.Fatalf("unexpected user %+v", res.User)
		}
		if _, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "wrong"}); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc := newAuth(&recordingMailer{})
	for _, tc := range []struct {
		in    RegisterInput
		field string
	}{
		{RegisterInput{Password: "p", Name: "n"}, "email"},
		{RegisterInput{Email: "e@x.com", Name: "n"}, "password"},
	} {
		_, err := svc.Register(context.Background(), tc.in)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("expected validation error on %s, got %v", tc.field, err)
		}
	}

	for _, tc := range []struct {
		email, want string
	}{
		{"juan@x.com", "juan"},
		{"juan", "juan"},
	} {
		res, err := svc.Register(context.Background(), RegisterInput{Email: tc.email, Password: "p"})
		if err != nil {
			t.Fatalf("%s: expected no error without a name, got %v", tc.email, err)
		}
		if res.User.Name != tc.want {
			t.Fatalf("%s: expected name %q, got %q", tc.email, tc.want, res.User.Name)
		}
	}

	first, err := svc.Register(context.Background(), RegisterInput{Email: "e@x.com", Password: "one", Name: "E"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.Register(context.Background(), RegisterInput{Email: "e@x.com", Password: "two", Name: "E2"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.User.ID != second.User.ID {
		t.Fatalf("expected id kept on re-register, got %s and %s", first.User.ID, second.User.ID)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "e@x.com", Password: "two"}); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	t.Parallel()

	mailer := &recordingMailer{}
	svc := newAuth(mailer)
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "e@x.com", Password: "p", Name: "E"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	svc.RequestPasswordReset(context.Background(), "nobody@x.com")
	svc.RequestPasswordReset(context.Background(), "E@x.com")

	if len(mailer.to) != 1 || mailer.to[0] != "e@x.com" {
		t.Fatalf("expected one mail to e@x.com, got %v", mailer.to)
	}
}
