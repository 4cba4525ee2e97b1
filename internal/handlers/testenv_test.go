package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	e        *echo.Echo
	users    *fakeUserRepo
	posts    *fakePostRepo
	likes    *fakeLikeRepo
	comments *fakeCommentRepo
}

func newTestEnv() *testEnv {
	e := echo.New()
	e.Validator = validators.NewValidator()

	users := newFakeUserRepo()
	likes := newFakeLikeRepo()
	comments := newFakeCommentRepo(users)
	posts := newFakePostRepo(users, likes, comments)

	return &testEnv{e: e, users: users, posts: posts, likes: likes, comments: comments}
}

// seedUser registers a user directly in the fake store with a real bcrypt
// hash of the given password.
func (env *testEnv) seedUser(t *testing.T, username, name, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, Name: name, Password: string(hash)}
	require.NoError(t, env.users.CreateUser(user))
	return user
}

// jsonContext builds an echo context carrying a JSON body and, when user is
// non-nil, the authenticated user the JWT middleware would have set.
func (env *testEnv) jsonContext(method, target, body string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if user != nil {
		c.Set("user", user)
	}
	return c, rec
}

// formContext builds an echo context carrying a multipart form, matching
// how the SPA submits posts.
func (env *testEnv) formContext(t *testing.T, method, target string, fields map[string]string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if user != nil {
		c.Set("user", user)
	}
	return c, rec
}

func withPostID(c echo.Context, id uint) {
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(uint64(id), 10))
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func asHTTPError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he
}
