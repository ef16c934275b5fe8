// Package auth handles registration and the two-step OTP login flow.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"fido/internal/models"
	"fido/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service is the authentication surface. Login issues a one-time code;
// VerifyOTP exchanges it for an access token.
type Service interface {
	Register(ctx context.Context, fullName, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
}

type service struct {
	users     repositories.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(users repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) Service {
	if users == nil {
		panic("user repository is required")
	}
	if jwtSecret == "" {
		panic("jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &service{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *service) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		FullName: fullName,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Printf("registered user %s", user.ID)
	return user, nil
}

// Login verifies credentials and returns a fresh OTP stored on the user.
func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	otp, err := generateOTP()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	user.OTPCode = otp
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}

	log.Printf("generated OTP for user %s", user.ID)
	return otp, nil
}

// VerifyOTP exchanges a valid OTP for a signed access token and clears the
// code so it cannot be replayed.
func (s *service) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrInvalidOTP
		}
		return "", err
	}

	if user.OTPCode == "" || user.OTPCode != otp {
		return "", ErrInvalidOTP
	}

	claims := models.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	user.OTPCode = ""
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("clear otp: %w", err)
	}

	log.Printf("OTP verified for user %s", user.ID)
	return token, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
