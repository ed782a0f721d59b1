package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, subject uuid.UUID, role string) string {
	t.Helper()

	claims := authClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func runMiddleware(token string) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTMiddleware(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return rec, c, handler(c)
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	subject := uuid.New()
	token := signToken(t, testSecret, subject, RoleOrganizer)

	_, c, err := runMiddleware(token)
	require.NoError(t, err)

	assert.Equal(t, subject, userID(c))
	assert.False(t, isAdmin(c))
}

func TestJWTMiddleware_AdminRole(t *testing.T) {
	token := signToken(t, testSecret, uuid.New(), RoleAdmin)

	_, c, err := runMiddleware(token)
	require.NoError(t, err)

	assert.True(t, isAdmin(c))
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	_, _, err := runMiddleware("")

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", uuid.New(), RoleUser)

	_, _, err := runMiddleware(token)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestJWTMiddleware_GarbageToken(t *testing.T) {
	_, _, err := runMiddleware("not-a-jwt")

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(contextKeyRole, RoleOrganizer)

	err := requireAdmin(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}
