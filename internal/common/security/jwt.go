package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
	"tienda_api/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the fixed lifetime of every issued token.
const TokenTTL = 24 * time.Hour

// Claims is the identity carried by a bearer token. TokenID and ExpiresAt are
// filled in on verification.
type Claims struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`

	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

type TokenService struct {
	auth *jwtauth.JWTAuth
	now  func() time.Time
}

func NewTokenService(secret []byte) *TokenService {
	return &TokenService{
		auth: jwtauth.New("HS256", secret, nil),
		now:  time.Now,
	}
}

// Issue signs c with an issued-at of now and an expiry TokenTTL later.
func (s *TokenService) Issue(c Claims) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":       c.ID,
		"user_id":  c.UserID,
		"username": c.Username,
		"role":     c.Role,
		"jti":      uuid.NewString(),
	}
	jwtauth.SetIssuedAt(claims, now)
	jwtauth.SetExpiry(claims, now.Add(TokenTTL))

	_, tokenString, err := s.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("security: sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry and decodes the claim set. Every failure,
// including a missing required claim, is reported as common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwtauth.VerifyToken(s.auth, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	raw, err := token.AsMap(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	claims, err := claimsFromMap(jwt.MapClaims(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	claims.TokenID = token.JwtID()
	claims.ExpiresAt = token.Expiration()
	if claims.ExpiresAt.IsZero() {
		return nil, fmt.Errorf("%w: exp claim is missing", common.ErrInvalidToken)
	}
	return claims, nil
}

func claimsFromMap(m jwt.MapClaims) (*Claims, error) {
	id, err := GetIntFromClaims(m, "id")
	if err != nil {
		return nil, err
	}
	userID, err := GetIntFromClaims(m, "user_id")
	if err != nil {
		return nil, err
	}
	username, err := GetStringFromClaims(m, "username")
	if err != nil {
		return nil, err
	}
	role, err := GetStringFromClaims(m, "role")
	if err != nil {
		return nil, err
	}
	return &Claims{ID: id, UserID: userID, Username: username, Role: role}, nil
}

// GetIntFromClaims reads a required integer claim. JSON numbers arrive as float64.
func GetIntFromClaims(claims jwt.MapClaims, key string) (int64, error) {
	switch v := claims[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s claim is not an integer", key)
		}
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case nil:
		return 0, fmt.Errorf("%s claim is missing", key)
	default:
		return 0, fmt.Errorf("%s claim has unexpected type %T", key, v)
	}
}

// GetStringFromClaims reads a required, non-empty string claim.
func GetStringFromClaims(claims jwt.MapClaims, key string) (string, error) {
	s, ok := claims[key].(string)
	if !ok || s == "" {
		return "", errors.New(key + " claim is missing or not a string")
	}
	return s, nil
}
