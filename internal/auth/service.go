package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reklik/reklik-server/internal/model"
	"github.com/reklik/reklik-server/internal/repository"
)

// UserStore is the narrow persistence surface the auth service needs. The
// store owns email uniqueness: a racing duplicate insert must come back as
// repository.ErrDuplicateEmail, not a driver error.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

// Session is the result of a successful authentication: a signed token,
// its absolute expiry, and the public view of the account. It is never
// stored server-side; the token alone proves the session.
type Session struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      model.PublicUser `json:"user"`
}

// RegisterInput carries the fields of a registration request. Phone is
// optional; everything else is required.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

// Service coordinates the credential store, password hasher, Google
// verifier and token issuer into the three authentication operations. It
// holds no mutable state, so all operations are safe to invoke
// concurrently.
type Service struct {
	users  UserStore
	hasher *Hasher
	google IdentityVerifier
	tokens *TokenIssuer
}

// NewService wires the auth service from its four collaborators.
func NewService(users UserStore, hasher *Hasher, google IdentityVerifier, tokens *TokenIssuer) *Service {
	return &Service{users: users, hasher: hasher, google: google, tokens: tokens}
}

// NormalizeEmail lowercases and trims an email so it can serve as the
// case-insensitive account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login authenticates an email/password pair. Unknown email and wrong
// password are indistinguishable to the caller: both are
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	var violations []string
	email = NormalizeEmail(email)
	if email == "" {
		violations = append(violations, "email is required")
	}
	if password == "" {
		violations = append(violations, "password is required")
	}
	if len(violations) > 0 {
		return Session{}, &ValidationError{Violations: violations}
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("look up user: %w", err)
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(u)
}

// GoogleLogin authenticates a Google ID token, creating a citizen account
// on first login. The operation is idempotent on the verified email: a
// second login for the same email reuses the first-created record, even
// when two first logins race on the insert.
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (Session, error) {
	if strings.TrimSpace(idToken) == "" {
		return Session{}, &ValidationError{Violations: []string{"id_token is required"}}
	}
	ident, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return Session{}, ErrExternalAuth
	}

	email := NormalizeEmail(ident.Email)
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		u, err = s.createFederated(ctx, ident.Name, email)
	}
	if err != nil {
		return Session{}, err
	}
	return s.issue(u)
}

// createFederated provisions an account for a first-time Google login. The
// stored hash covers a random secret the user never sees, so the account
// is unreachable through the password path.
func (s *Service) createFederated(ctx context.Context, name, email string) (model.User, error) {
	hash, err := s.hasher.Hash(uuid.NewString())
	if err != nil {
		return model.User{}, fmt.Errorf("hash federated secret: %w", err)
	}
	now := time.Now().UTC()
	u, err := s.users.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleCitizen,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost the race against a concurrent first login; the record the
		// winner created is the one to reuse.
		return s.users.GetByEmail(ctx, email)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create federated user: %w", err)
	}
	return u, nil
}

// Register creates a local account and logs it in. The role must be one of
// the four permitted values; the error for a disallowed role enumerates
// them.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	var violations []string
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" {
		violations = append(violations, "name is required")
	}
	if email == "" {
		violations = append(violations, "email is required")
	}
	if in.Password == "" {
		violations = append(violations, "password is required")
	}
	if in.Role == "" {
		violations = append(violations, "role is required")
	} else if !model.ValidRole(in.Role) {
		violations = append(violations, "role must be one of: "+strings.Join(model.Roles, ", "))
	}
	if len(violations) > 0 {
		return Session{}, &ValidationError{Violations: violations}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Session{}, fmt.Errorf("look up user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, err
	}
	now := time.Now().UTC()
	u, err := s.users.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return Session{}, ErrDuplicateEmail
	}
	if err != nil {
		return Session{}, fmt.Errorf("create user: %w", err)
	}
	return s.issue(u)
}

func (s *Service) issue(u model.User) (Session, error) {
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, User: u.Public()}, nil
}
