package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenService(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tokens := httpadapter.NewTokenService(testSecret)
		userID := kernel.NewUUID()

		tokenString, err := tokens.Generate(userID)
		require.NoError(t, err)
		require.NotEmpty(t, tokenString)

		parsedID, err := tokens.Validate(tokenString)
		require.NoError(t, err)
		assert.True(t, userID.IsEqual(parsedID))
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := httpadapter.NewTokenService("another-secret")
		tokenString, err := other.Generate(kernel.NewUUID())
		require.NoError(t, err)

		tokens := httpadapter.NewTokenService(testSecret)
		_, err = tokens.Validate(tokenString)
		assert.ErrorIs(t, err, httpadapter.ErrTokenIsInvalid)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		now := time.Now()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": kernel.NewUUID().String(),
			"iat": now.Add(-2 * time.Hour).Unix(),
			"exp": now.Add(-time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		tokens := httpadapter.NewTokenService(testSecret)
		_, err = tokens.Validate(tokenString)
		assert.ErrorIs(t, err, httpadapter.ErrTokenIsExpired)
	})

	t.Run("rejects subject that is not a uuid", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "not-a-uuid",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		tokens := httpadapter.NewTokenService(testSecret)
		_, err = tokens.Validate(tokenString)
		assert.ErrorIs(t, err, httpadapter.ErrTokenIsInvalid)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		tokens := httpadapter.NewTokenService(testSecret)
		_, err := tokens.Validate("not.a.token")
		assert.ErrorIs(t, err, httpadapter.ErrTokenIsInvalid)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := httpadapter.NewTokenService(testSecret)

	newEcho := func() *echo.Echo {
		e := echo.New()
		e.GET("/protected", func(ctx echo.Context) error {
			return ctx.NoContent(http.StatusOK)
		}, httpadapter.AuthMiddleware(tokens))
		return e
	}

	t.Run("passes request with valid token", func(t *testing.T) {
		tokenString, err := tokens.Generate(kernel.NewUUID())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()

		newEcho().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()

		newEcho().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects header without bearer prefix", func(t *testing.T) {
		tokenString, err := tokens.Generate(kernel.NewUUID())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", tokenString)
		rec := httptest.NewRecorder()

		newEcho().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		newEcho().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
