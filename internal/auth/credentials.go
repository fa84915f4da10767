// Package auth implements the credential store: password hashing and
// signed session tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is the session lifetime. There is no refresh flow; expired
// tokens require a fresh login.
const DefaultTokenTTL = 7 * 24 * time.Hour

// MinBcryptCost is the lowest accepted hashing work factor.
const MinBcryptCost = 10

// ErrInvalidToken is returned when a token fails signature verification or
// has expired.
var ErrInvalidToken = errors.New("invalid token")

// Subject identifies the authenticated account carried inside a token.
type Subject struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Claims is the JWT claims payload for session tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Credentials hashes passwords and issues HS256 session tokens.
type Credentials struct {
	secret   []byte
	cost     int
	tokenTTL time.Duration
}

// NewCredentials constructs a credential store. Costs below MinBcryptCost
// are raised to it.
func NewCredentials(jwtSecret string, cost int, tokenTTL time.Duration) *Credentials {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Credentials{
		secret:   []byte(jwtSecret),
		cost:     cost,
		tokenTTL: tokenTTL,
	}
}

// Hash produces a salted one-way hash of password. Two calls with the same
// input produce different hashes; each verifies independently.
func (c *Credentials) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches passwordHash.
func (c *Credentials) Verify(password, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}

// IssueToken signs a token carrying the subject's id and email.
func (c *Credentials) IssueToken(subject Subject) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: subject.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// VerifyToken validates the signature and expiry of tokenString and returns
// the embedded subject. All failures map to ErrInvalidToken.
func (c *Credentials) VerifyToken(tokenString string) (Subject, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return Subject{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Subject{}, ErrInvalidToken
	}
	return Subject{ID: claims.Subject, Email: claims.Email}, nil
}
