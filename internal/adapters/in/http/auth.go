package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	ErrTokenIsInvalid = errors.New("token is invalid")
	ErrTokenIsExpired = errors.New("token is expired")
)

// actorContextKey is the echo context key holding the authenticated user id.
const actorContextKey = "actorID"

// TokenService issues and validates the HS256 bearer tokens used to identify
// marketplace users. The subject claim carries the user id.
type TokenService struct {
	secretKey string
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secretKey string) *TokenService {
	return &TokenService{secretKey: secretKey}
}

// Generate creates a signed token for the given user, valid for 24 hours.
func (s *TokenService) Generate(userID kernel.UUID) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", fmt.Errorf("error while generating token: %w", err)
	}

	return tokenString, nil
}

// Validate parses the token, checks its signature and expiry, and returns
// the user id from the subject claim.
func (s *TokenService) Validate(tokenString string) (kernel.UUID, error) {
	parsedToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return kernel.UUID{}, ErrTokenIsExpired
		}
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}

	if !parsedToken.Valid {
		return kernel.UUID{}, ErrTokenIsInvalid
	}

	subject, err := parsedToken.Claims.GetSubject()
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}

	userID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: subject is not a user id: %w", ErrTokenIsInvalid, err)
	}

	return userID, nil
}

// AuthMiddleware authenticates requests with a bearer token and stores the
// acting user's id in the request context.
func AuthMiddleware(tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get("Authorization")
			if header == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Authorization header is required",
				})
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == "" || tokenString == header {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Bearer token is required",
				})
			}

			actorID, err := tokens.Validate(tokenString)
			if err != nil {
				message := "Invalid token"
				if errors.Is(err, ErrTokenIsExpired) {
					message = "Token has expired"
				}
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: message,
				})
			}

			ctx.Set(actorContextKey, actorID)

			return next(ctx)
		}
	}
}

// actorFromContext returns the authenticated user id stored by AuthMiddleware.
func actorFromContext(ctx echo.Context) (kernel.UUID, bool) {
	actorID, ok := ctx.Get(actorContextKey).(kernel.UUID)
	return actorID, ok
}
