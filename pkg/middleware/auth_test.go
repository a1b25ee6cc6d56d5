package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/neerajjagga/auth/internal/models"
	"github.com/neerajjagga/auth/internal/tokens"
)

type fakeUserSource struct {
	users map[string]*models.User
}

func (f *fakeUserSource) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func newAuthRouter(codec *tokens.Codec, source UserSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(codec, source), func(c *gin.Context) {
		u := UserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	return r
}

func testCodec(accessTTL time.Duration) *tokens.Codec {
	return tokens.NewCodec(
		[]byte("access-secret-0123456789abcdef"),
		[]byte("refresh-secret-0123456789abcdef"),
		accessTTL,
		time.Hour,
	)
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	r := newAuthRouter(testCodec(time.Minute), &fakeUserSource{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := newAuthRouter(testCodec(time.Minute), &fakeUserSource{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	codec := testCodec(-time.Minute)
	r := newAuthRouter(codec, &fakeUserSource{})

	tok, err := codec.Issue("u1", tokens.KindAccess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "expired")
}

func TestRequireAuth_UnknownSubject(t *testing.T) {
	codec := testCodec(time.Minute)
	r := newAuthRouter(codec, &fakeUserSource{users: map[string]*models.User{}})

	tok, err := codec.Issue("gone", tokens.KindAccess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_AttachesUser(t *testing.T) {
	codec := testCodec(time.Minute)
	source := &fakeUserSource{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "a@b.c", Name: "Ann"},
	}}
	r := newAuthRouter(codec, source)

	tok, err := codec.Issue("u1", tokens.KindAccess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "u1")
}
