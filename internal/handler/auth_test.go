package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reklik/reklik-server/internal/auth"
	"github.com/reklik/reklik-server/internal/model"
	"github.com/reklik/reklik-server/internal/repository"
)

type memUserStore struct {
	byEmail map[string]model.User
	nextID  uint64
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memUserStore) Create(_ context.Context, u model.User) (model.User, error) {
	if _, ok := m.byEmail[u.Email]; ok {
		return model.User{}, repository.ErrDuplicateEmail
	}
	m.nextID++
	u.ID = m.nextID
	m.byEmail[u.Email] = u
	return u, nil
}

type staticVerifier struct {
	ident auth.ExternalIdentity
	err   error
}

func (v *staticVerifier) Verify(context.Context, string) (auth.ExternalIdentity, error) {
	return v.ident, v.err
}

func newAuthHandler(google auth.IdentityVerifier) *AuthHandler {
	store := &memUserStore{byEmail: map[string]model.User{}}
	tokens := auth.NewTokenIssuer("test-secret", "reklik", "reklik-clients", 30)
	return NewAuthHandler(auth.NewService(store, auth.NewHasher(), google, tokens))
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestAuthHandler_RegisterThenLogin(t *testing.T) {
	h := newAuthHandler(&staticVerifier{})

	rec := postJSON(t, h.Register, "/v1/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"hunter2!","role":"citizen","phone":"555-0100"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created auth.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "ana@example.com", created.User.Email)
	assert.Equal(t, model.RoleCitizen, created.User.Role)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"ana@example.com","password":"hunter2!"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_RegisterDuplicateIs409(t *testing.T) {
	h := newAuthHandler(&staticVerifier{})

	body := `{"name":"Ana","email":"ana@example.com","password":"hunter2!","role":"citizen"}`
	rec := postJSON(t, h.Register, "/v1/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Register, "/v1/auth/register", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_RegisterBadRoleIs400WithViolations(t *testing.T) {
	h := newAuthHandler(&staticVerifier{})

	rec := postJSON(t, h.Register, "/v1/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"hunter2!","role":"superuser"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error      string   `json:"error"`
		Violations []string `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	require.Len(t, resp.Violations, 1)
	for _, role := range model.Roles {
		assert.Contains(t, resp.Violations[0], role)
	}
}

func TestAuthHandler_LoginWrongPasswordIs401(t *testing.T) {
	h := newAuthHandler(&staticVerifier{})

	rec := postJSON(t, h.Register, "/v1/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"hunter2!","role":"citizen"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"ana@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_GoogleLogin(t *testing.T) {
	h := newAuthHandler(&staticVerifier{ident: auth.ExternalIdentity{Email: "g@gmail.com", Name: "G"}})

	rec := postJSON(t, h.GoogleLogin, "/v1/auth/google", `{"id_token":"raw"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sess auth.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, model.RoleCitizen, sess.User.Role)
}

func TestAuthHandler_GoogleLoginVerifierFailureIs401(t *testing.T) {
	h := newAuthHandler(&staticVerifier{err: auth.ErrExternalAuth})

	rec := postJSON(t, h.GoogleLogin, "/v1/auth/google", `{"id_token":"raw"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
