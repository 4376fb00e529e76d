package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/reservaya/api/internal/clock"
	"github.com/reservaya/api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	Save(ctx context.Context, u domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type TokenIssuer interface {
	Issue(userID, email, name string) (string, error)
}

type Mailer interface {
	Send(to, subject, body string) error
}

const demoUserName = "Usuario Demo"

// AuthService issues session tokens. Accounts that were registered have
// their password checked; any other email/password pair is accepted as a
// demo login.
type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
	mailer Mailer
	clock  clock.Clock
	ids    *Sequence
	logger *log.Logger
}

func NewAuthService(users UserRepository, tokens TokenIssuer, mailer Mailer, clk clock.Clock, logger *log.Logger) *AuthService {
	if logger == nil {
		logger = log.Default()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		clock:  clk,
		ids:    NewSequence(clk),
		logger: logger,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type AuthResult struct {
	User  domain.User
	Token string
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return AuthResult{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if user == nil {
		user = &domain.User{ID: "1", Email: email, Name: demoUserName}
	} else if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(in.Password)) != nil {
		return AuthResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: *user, Token: token}, nil
}

// Register stores the account, replacing the password of an existing one
// with the same email, and logs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return AuthResult{}, domain.NewValidationError("email", "is required")
	}
	if in.Password == "" {
		return AuthResult{}, domain.NewValidationError("password", "is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = nameFromEmail(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return AuthResult{}, domain.NewValidationError("password", "is too long")
		}
		return AuthResult{}, err
	}

	user := domain.User{
		ID:           s.ids.Next(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if existing != nil {
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	}
	if err := s.users.Save(ctx, user); err != nil {
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

// RequestPasswordReset mails reset instructions when the account exists.
// It reports nothing back so callers cannot tell which emails have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) {
	email = normalizeEmail(email)
	if email == "" {
		return
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Printf("WARN: password reset lookup failed: %v", err)
		return
	}
	if user == nil {
		return
	}
	body := "Hola " + user.Name + ",\n\nRecibimos una solicitud para restablecer tu contraseña de ReservaYa."
	if err := s.mailer.Send(user.Email, "Restablecer contraseña", body); err != nil {
		s.logger.Printf("WARN: password reset mail failed: %v", err)
	}
}

// nameFromEmail is the display name for accounts registered without one.
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
