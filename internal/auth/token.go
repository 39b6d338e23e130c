// Package auth issues and verifies the signed tokens handed to API clients.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in session tokens
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Token types
const (
	TypeSession = "session"
	TypeReset   = "reset"
)

// ResetTTL bounds how long a password reset token stays valid
const ResetTTL = time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims identify the caller of an authenticated request
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Type  string `json:"typ"`
	// Stamp is set on reset tokens and fingerprints the password they replace
	Stamp string `json:"stamp,omitempty"`
	jwt.RegisteredClaims
}

// SessionID returns the jti of a session token
func (c *Claims) SessionID() string {
	return c.ID
}

// UserID returns the subject of the token
func (c *Claims) UserID() string {
	return c.Subject
}

// IsAdmin reports whether the token was issued to the store administrator
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Issuer signs and verifies HS256 tokens with a shared secret
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer whose session tokens live for ttl
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueSession returns a session token for the user. sessionID becomes the
// jti and must match the stored session for the token to be accepted.
func (i *Issuer) IssueSession(userID, email, role, sessionID string) (string, error) {
	return i.issue(Claims{Email: email, Role: role, Type: TypeSession}, userID, sessionID, i.ttl)
}

// IssueReset returns a short-lived token bound to the user's current password
// hash. Once the password changes the stamp no longer matches and the token is spent.
func (i *Issuer) IssueReset(userID, email, passwordHash string) (string, error) {
	claims := Claims{Email: email, Role: RoleCustomer, Type: TypeReset, Stamp: PasswordStamp(passwordHash)}
	return i.issue(claims, userID, "", ResetTTL)
}

// PasswordStamp fingerprints a stored password hash
func PasswordStamp(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:16])
}

func (i *Issuer) issue(claims Claims, userID, id string, ttl time.Duration) (string, error) {
	now := i.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        id,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and checks it has the expected type
func (i *Issuer) Parse(token, typ string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Type != typ {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.Type)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	switch {
	case typ == TypeSession && claims.ID == "":
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidToken)
	case typ == TypeReset && claims.Stamp == "":
		return nil, fmt.Errorf("%w: missing password stamp", ErrInvalidToken)
	}
	return claims, nil
}
