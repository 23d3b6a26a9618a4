package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
)

const (
	accessTokenTTL  = 7 * 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// AccessClaims are the JWT claims carried by access tokens
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles login, token validation and refresh-token rotation.
// Refresh tokens are opaque values stored server-side so they can be
// revoked; access tokens are stateless HS256 JWTs.
type AuthService struct {
	userRepo   *repository.UserRepository
	driverRepo *repository.DriverRepository
	jwtSecret  []byte
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, driverRepo *repository.DriverRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		driverRepo: driverRepo,
		jwtSecret:  []byte(jwtSecret),
		now:        time.Now,
	}
}

// LoginResult is the payload returned on successful login
type LoginResult struct {
	User         *models.User   `json:"user"`
	Driver       *models.Driver `json:"driver,omitempty"`
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken"`
}

// Login checks credentials and, when role is non-empty, that the account
// holds exactly that role. A driver account is marked online on login.
func (s *AuthService) Login(email, password, role string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, invalidInput("email/password", "are required")
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}

	if role != "" && user.Role != role {
		return nil, ErrForbidden
	}

	token, err := s.mintAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken := uuid.NewString()
	if err := s.userRepo.CreateRefreshToken(user.ID, refreshToken, s.now().Add(refreshTokenTTL)); err != nil {
		return nil, err
	}

	result := &LoginResult{User: user, Token: token, RefreshToken: refreshToken}

	driver, err := s.driverRepo.GetDriverByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if driver != nil {
		if err := s.driverRepo.UpdateStatusByUser(user.ID, models.DriverStatusOnline); err != nil {
			return nil, err
		}
		driver.Status = models.DriverStatusOnline
		result.Driver = driver
	}

	return result, nil
}

// Validate parses an access token and returns the fresh user row it names
func (s *AuthService) Validate(tokenString string) (*models.User, error) {
	claims, err := s.ParseAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Revoked, expired or unknown tokens are rejected.
func (s *AuthService) Refresh(refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, ErrUnauthorized
	}

	rec, err := s.userRepo.GetRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if rec == nil || s.now().After(rec.ExpiresAt) {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetUserByID(rec.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	if err := s.userRepo.RevokeRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	token, err := s.mintAccessToken(user)
	if err != nil {
		return nil, err
	}

	newRefresh := uuid.NewString()
	if err := s.userRepo.CreateRefreshToken(user.ID, newRefresh, s.now().Add(refreshTokenTTL)); err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token, RefreshToken: newRefresh}, nil
}

// ParseAccessToken verifies an access token's signature and expiry
func (s *AuthService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) mintAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := AccessClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
