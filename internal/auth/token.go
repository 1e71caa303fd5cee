package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = time.Hour

var (
	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
)

// User is the identity carried inside a token.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Issuer mints and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer signing with secret
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for the user.
func (i *Issuer) Issue(userID, name string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]string{
			"id":   userID,
			"name": name,
		},
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns its user.
func (i *Issuer) Verify(raw string) (User, error) {
	if raw == "" {
		return User{}, ErrMissingToken
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return User{}, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(i.now().Unix(), true) {
		return User{}, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}

	user, ok := claims["user"].(map[string]interface{})
	if !ok {
		return User{}, fmt.Errorf("%w: missing user claim", ErrInvalidToken)
	}
	id, _ := user["id"].(string)
	name, _ := user["name"].(string)
	if id == "" {
		return User{}, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return User{ID: id, Name: name}, nil
}
