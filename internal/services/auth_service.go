package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"arcticfresh/internal/errs"
)

var ErrBadCreds = errors.New("invalid username or password")

const (
	RoleAdmin = "admin"
	TokenTTL  = 7 * 24 * time.Hour
)

// CredentialVerifier checks an admin login.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticCredentials verifies against one configured username and bcrypt
// hash. With no password configured every login fails.
type StaticCredentials struct {
	username string
	hash     []byte
}

// NewStaticCredentials prefers passwordHash (bcrypt) over the plain password.
func NewStaticCredentials(username, password, passwordHash string) (*StaticCredentials, error) {
	c := &StaticCredentials{username: username}
	switch {
	case passwordHash != "":
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
		c.hash = []byte(passwordHash)
	case password != "":
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		c.hash = h
	}
	return c, nil
}

// Enabled reports whether any password is configured.
func (c *StaticCredentials) Enabled() bool { return len(c.hash) > 0 }

func (c *StaticCredentials) Verify(username, password string) bool {
	if !c.Enabled() || username == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
	return userOK && passOK
}

// Claims is the signed payload of the auth-token cookie.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Creds  CredentialVerifier
	secret []byte
	Now    func() time.Time
}

func NewAuthService(creds CredentialVerifier, secret string) *AuthService {
	return &AuthService{Creds: creds, secret: []byte(secret), Now: time.Now}
}

// Login verifies the credentials and issues a token for username.
func (s *AuthService) Login(username, password string) (string, *Claims, error) {
	if !s.Creds.Verify(username, password) {
		return "", nil, ErrBadCreds
	}
	return s.Issue(username)
}

// Issue signs an admin token valid for TokenTTL.
func (s *AuthService) Issue(username string) (string, *Claims, error) {
	now := s.Now()
	claims := &Claims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, errs.Internal(err)
	}
	return signed, claims, nil
}

// Parse verifies token and returns its claims. Only HS256 admin tokens are
// accepted.
func (s *AuthService) Parse(token string) (*Claims, error) {
	if token == "" {
		return nil, errs.Unauthorized("Authentication required")
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.Now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errs.Unauthorized("Invalid or expired session")
	}
	if claims.Role != RoleAdmin || claims.Username == "" {
		return nil, errs.Unauthorized("Invalid or expired session")
	}
	return claims, nil
}
