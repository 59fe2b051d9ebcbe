package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTStrategy verifies HS256 tokens whose subject is the user id.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, issuer: opts.Issuer}
}

// IssueToken signs a token for the user. The identity provider normally does this.
func (s *JWTStrategy) IssueToken(userID string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", ErrInvalidToken
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates token signature and expiry and returns the subject.
func (s *JWTStrategy) ParseToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", ErrInvalidToken
	}
	return id.String(), nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}

// ErrInvalidAdminKey is returned when the admin key does not match the configured hash.
var ErrInvalidAdminKey = errors.New("invalid admin key")

// AdminKeyVerifier checks admin API keys against a bcrypt hash.
type AdminKeyVerifier struct {
	hasher PasswordHasher
	hash   string
}

func NewAdminKeyVerifier(hasher PasswordHasher, hash string) *AdminKeyVerifier {
	return &AdminKeyVerifier{hasher: hasher, hash: hash}
}

// VerifyAdminKey rejects every key when no hash is configured.
func (v *AdminKeyVerifier) VerifyAdminKey(key string) error {
	if v.hash == "" || key == "" {
		return ErrInvalidAdminKey
	}
	if err := v.hasher.Compare(v.hash, key); err != nil {
		return ErrInvalidAdminKey
	}
	return nil
}
