package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"home_dashboard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = time.Hour
	tokenIssuer       = "home-dashboard"
	minPasswordLength = 8
)

var (
	ErrInvalidUsername    = errors.New("username is empty")
	ErrWeakPassword       = fmt.Errorf("password must have at least %d characters", minPasswordLength)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService manages operator accounts. Passwords are stored as bcrypt
// hashes; sessions are HS256 tokens whose subject is the operator id.
type AuthService struct {
	operators  repository.Operators
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewAuthService(repo repository.Operators, signingKey string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		operators:  repo,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
		now:        time.Now,
	}
}

// SignUp registers an operator. Usernames are case-insensitive.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	username = normalizeUsername(username)
	if username == "" {
		return 0, ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return 0, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.operators.Create(ctx, username, string(hash))
}

// GenerateToken checks the credentials and issues a token.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	op, err := s.operators.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		return "", err
	}
	if op == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(op.ID)
}

// ParseToken validates a token and returns the operator id it was issued to.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims,
		func(*jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q", ErrInvalidToken, claims.Subject)
	}
	return id, nil
}

func (s *AuthService) issueToken(operatorID int) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.Itoa(operatorID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})
	return token.SignedString(s.signingKey)
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
