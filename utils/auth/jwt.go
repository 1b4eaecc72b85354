package auth

import (
	"errors"
	"time"

	"online-learning-api/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
	ErrKeyTooShort   = errors.New("jwt secret must be at least 32 bytes")
)

// MinSecretLength is the minimum HMAC key size in bytes (256 bits)
const MinSecretLength = 32

// TokenConfig holds JWT configuration
type TokenConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
	Prefix string // prepended to the token in Authorization response headers
}

// Claims represents JWT claims. Subject carries the username.
type Claims struct {
	Role   model.Role `json:"roles"`
	UserID uint       `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed identity tokens
type TokenService struct {
	config TokenConfig
	key    []byte
}

// NewTokenService creates a token service. A key shorter than 256 bits is
// rejected here so a weak secret can never reach signing time.
func NewTokenService(config TokenConfig) (*TokenService, error) {
	if len(config.Secret) < MinSecretLength {
		return nil, ErrKeyTooShort
	}
	if config.Expiry <= 0 {
		config.Expiry = time.Hour
	}
	return &TokenService{
		config: config,
		key:    []byte(config.Secret),
	}, nil
}

// Generate issues a signed HS256 token for the given identity
func (s *TokenService) Generate(username string, role model.Role, userID uint) (string, error) {
	now := time.Now()

	claims := Claims{
		Role:   role,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Validate reports whether the token is well-formed, correctly signed and not
// expired. It never returns an error; callers that need the failure reason or
// the claims use the extractors below.
func (s *TokenService) Validate(tokenString string) bool {
	_, err := s.parse(tokenString)
	return err == nil
}

// Subject returns the username claim after full verification
func (s *TokenService) Subject(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Role returns the role claim after full verification
func (s *TokenService) Role(tokenString string) (model.Role, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

// UserID returns the numeric user id claim after full verification
func (s *TokenService) UserID(tokenString string) (uint, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// ParseClaims verifies the token and returns the full claim set
func (s *TokenService) ParseClaims(tokenString string) (*Claims, error) {
	return s.parse(tokenString)
}

// Prefix returns the configured Authorization header prefix
func (s *TokenService) Prefix() string {
	return s.config.Prefix
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.key, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
