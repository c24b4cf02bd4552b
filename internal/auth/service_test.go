package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reklik/reklik-server/internal/model"
	"github.com/reklik/reklik-server/internal/repository"
)

// fakeUserStore keeps users in a map keyed by normalized email and enforces
// the same uniqueness contract the MySQL repository does.
type fakeUserStore struct {
	byEmail map[string]model.User
	nextID  uint64

	// createHook, when set, runs just before the uniqueness check so tests
	// can simulate a racing insert.
	createHook func()
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]model.User{}, nextID: 1}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Create(_ context.Context, u model.User) (model.User, error) {
	if f.createHook != nil {
		f.createHook()
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return model.User{}, repository.ErrDuplicateEmail
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return u, nil
}

type fakeVerifier struct {
	ident ExternalIdentity
	err   error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (ExternalIdentity, error) {
	if f.err != nil {
		return ExternalIdentity{}, f.err
	}
	return f.ident, nil
}

func newTestService(store *fakeUserStore, google IdentityVerifier) *Service {
	tokens := NewTokenIssuer("test-secret", "reklik", "reklik-clients", 30)
	return NewService(store, NewHasher(), google, tokens)
}

func registered(t *testing.T, s *Service, email, password, role string) Session {
	t.Helper()
	sess, err := s.Register(context.Background(), RegisterInput{
		Name:     "Someone",
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return sess
}

func TestService_LoginSuccessCarriesRole(t *testing.T) {
	store := newFakeUserStore()
	s := newTestService(store, &fakeVerifier{})
	registered(t, s, "worker@point.example", "hunter2!", model.RoleCollectionPoint)

	sess, err := s.Login(context.Background(), "worker@point.example", "hunter2!")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCollectionPoint, sess.User.Role)

	claims, err := s.tokens.Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCollectionPoint, claims.Role)
	assert.Equal(t, "worker@point.example", claims.Email)
}

func TestService_LoginFailuresAreIndistinguishable(t *testing.T) {
	store := newFakeUserStore()
	s := newTestService(store, &fakeVerifier{})
	registered(t, s, "known@example.com", "correct-pass", model.RoleCitizen)

	_, errWrongPass := s.Login(context.Background(), "known@example.com", "wrong-pass")
	_, errUnknown := s.Login(context.Background(), "unknown@example.com", "correct-pass")

	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
}

func TestService_LoginEmptyInput(t *testing.T) {
	s := newTestService(newFakeUserStore(), &fakeVerifier{})

	_, err := s.Login(context.Background(), "", "")
	v, ok := IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Violations, "email is required")
	assert.Contains(t, v.Violations, "password is required")
}

func TestService_LoginEmailIsCaseInsensitive(t *testing.T) {
	store := newFakeUserStore()
	s := newTestService(store, &fakeVerifier{})
	registered(t, s, "Mixed.Case@Example.COM", "pass-word", model.RoleCitizen)

	_, err := s.Login(context.Background(), "mixed.case@example.com", "pass-word")
	assert.NoError(t, err)
}

func TestService_RegisterDuplicateEmailIgnoresCase(t *testing.T) {
	store := newFakeUserStore()
	s := newTestService(store, &fakeVerifier{})
	registered(t, s, "a@b.com", "password1", model.RoleCitizen)

	_, err := s.Register(context.Background(), RegisterInput{
		Name:     "Again",
		Email:    "A@B.com",
		Password: "password2",
		Role:     model.RoleCitizen,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestService_RegisterRejectsUnknownRole(t *testing.T) {
	s := newTestService(newFakeUserStore(), &fakeVerifier{})

	_, err := s.Register(context.Background(), RegisterInput{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "password",
		Role:     "superuser",
	})
	v, ok := IsValidation(err)
	require.True(t, ok)
	require.Len(t, v.Violations, 1)
	for _, role := range model.Roles {
		assert.Contains(t, v.Violations[0], role)
	}
}

func TestService_RegisterOverlongPassword(t *testing.T) {
	s := newTestService(newFakeUserStore(), &fakeVerifier{})

	_, err := s.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: strings.Repeat("x", 73),
		Role:     model.RoleCitizen,
	})
	v, ok := IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Violations, "password must be at most 72 bytes")
}

func TestService_RegisterMissingFields(t *testing.T) {
	s := newTestService(newFakeUserStore(), &fakeVerifier{})

	_, err := s.Register(context.Background(), RegisterInput{})
	v, ok := IsValidation(err)
	require.True(t, ok)
	assert.Len(t, v.Violations, 4)
}

func TestService_GoogleLoginIsIdempotentPerEmail(t *testing.T) {
	store := newFakeUserStore()
	google := &fakeVerifier{ident: ExternalIdentity{Email: "G.User@Gmail.com", Name: "G User"}}
	s := newTestService(store, google)

	first, err := s.GoogleLogin(context.Background(), "raw-id-token")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCitizen, first.User.Role)
	assert.Equal(t, "g.user@gmail.com", first.User.Email)

	second, err := s.GoogleLogin(context.Background(), "raw-id-token")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestService_GoogleLoginSurvivesRacingInsert(t *testing.T) {
	store := newFakeUserStore()
	google := &fakeVerifier{ident: ExternalIdentity{Email: "racer@gmail.com", Name: "Racer"}}
	s := newTestService(store, google)

	// A concurrent first login inserts the record between our lookup and
	// our insert; the duplicate must resolve to the winner's row.
	store.createHook = func() {
		store.createHook = nil
		store.byEmail["racer@gmail.com"] = model.User{
			ID:    99,
			Name:  "Racer",
			Email: "racer@gmail.com",
			Role:  model.RoleCitizen,
		}
	}

	sess, err := s.GoogleLogin(context.Background(), "raw-id-token")
	require.NoError(t, err)
	assert.Equal(t, uint64(99), sess.User.ID)
}

func TestService_GoogleLoginVerifierFailure(t *testing.T) {
	s := newTestService(newFakeUserStore(), &fakeVerifier{err: errors.New("bad signature")})

	_, err := s.GoogleLogin(context.Background(), "raw-id-token")
	assert.ErrorIs(t, err, ErrExternalAuth)
}

func TestService_GoogleLoginEmptyToken(t *testing.T) {
	s := newTestService(newFakeUserStore(), &fakeVerifier{})

	_, err := s.GoogleLogin(context.Background(), "   ")
	_, ok := IsValidation(err)
	assert.True(t, ok)
}

func TestService_FederatedAccountUnreachableByPassword(t *testing.T) {
	store := newFakeUserStore()
	google := &fakeVerifier{ident: ExternalIdentity{Email: "fed@gmail.com", Name: "Fed"}}
	s := newTestService(store, google)

	_, err := s.GoogleLogin(context.Background(), "raw-id-token")
	require.NoError(t, err)

	_, err = s.Login(context.Background(), "fed@gmail.com", "")
	_, ok := IsValidation(err)
	assert.True(t, ok, "empty password is a validation failure, not a login")

	_, err = s.Login(context.Background(), "fed@gmail.com", "any-guess")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
