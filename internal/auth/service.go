package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Service issues and verifies admin credentials and bearer tokens.
type Service struct {
	repo     *Repository
	secret   []byte
	tokenTTL time.Duration
	log      *zap.Logger
}

func NewService(repo *Repository, secret string, tokenTTL time.Duration, log *zap.Logger) *Service {
	return &Service{repo: repo, secret: []byte(secret), tokenTTL: tokenTTL, log: log}
}

// Login verifies the email/password pair and returns the admin together with
// a signed token. Unknown emails and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Admin, string, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, admin.ID); err != nil {
		s.log.Warn("could not update last_login", zap.Int64("admin", admin.ID), zap.Error(err))
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// Register creates a new admin account with a hashed password.
func (s *Service) Register(ctx context.Context, nama, email, password string) (int64, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return 0, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &Admin{
		Nama:     nama,
		Email:    email,
		Password: string(hash),
	})
}

// VerifyToken parses an HS256 token and returns the admin it belongs to.
func (s *Service) VerifyToken(ctx context.Context, tokenStr string) (*Admin, error) {
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Service) issueToken(admin *Admin) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    admin.ID,
		"email": admin.Email,
		"nama":  admin.Nama,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
