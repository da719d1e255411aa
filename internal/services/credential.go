package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/naufaladrian/be-report-app/internal/errs"
	"github.com/naufaladrian/be-report-app/internal/models"
	"github.com/naufaladrian/be-report-app/pkg/utils"
)

// tokenValidity is how long an issued token stays usable. Tokens are
// stateless: there is no revocation, only expiry.
const tokenValidity = 24 * time.Hour

// Claims carried inside a session token.
type Claims struct {
	jwt.RegisteredClaims
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserStore is the persistence surface the credential service needs.
type UserStore interface {
	Insert(ctx context.Context, u models.User) error
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// CredentialService owns password hashing/verification and token
// issuance/verification.
type CredentialService struct {
	users  UserStore
	secret []byte
}

func NewCredentialService(users UserStore, jwtSecret string) *CredentialService {
	return &CredentialService{users: users, secret: []byte(jwtSecret)}
}

// Register hashes the password and inserts a new user with a fresh id.
// A duplicate email comes back as errs.ErrConflict from the store.
func (s *CredentialService) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return errs.Invalid("name, email and password are required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	return s.users.Insert(ctx, models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
}

// Login verifies the credentials and issues a signed token alongside the
// redacted user view. Unknown email and wrong password are indistinguishable
// to the caller.
func (s *CredentialService) Login(ctx context.Context, email, password string) (string, models.PublicUser, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", models.PublicUser{}, fmt.Errorf("%w: invalid credentials", errs.ErrUnauthorized)
		}
		return "", models.PublicUser{}, err
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		return "", models.PublicUser{}, fmt.Errorf("%w: invalid credentials", errs.ErrUnauthorized)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", models.PublicUser{}, err
	}

	return token, user.Public(), nil
}

func (s *CredentialService) issueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
		},
		ID:    user.ID,
		Email: user.Email,
	})
	return token.SignedString(s.secret)
}

// VerifyToken checks signature and expiry only; validity never involves a
// database lookup.
func (s *CredentialService) VerifyToken(tokenString string) (Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}
	if !token.Valid {
		return Claims{}, fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}
	return *claims, nil
}
