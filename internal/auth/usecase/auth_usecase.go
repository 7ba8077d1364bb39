package usecase

import (
	"errors"
	"time"

	"github.com/KumarShresth7/EmailAutomation/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenResponse carries an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AuthUsecase defines the interface for dashboard authentication. The
// dashboard has a single admin account configured via environment.
type AuthUsecase interface {
	// Login verifies the admin credentials and issues an access token
	Login(username, password string) (*TokenResponse, error)

	// ValidateToken parses and verifies an access token, returning the
	// subject username
	ValidateToken(tokenString string) (string, error)
}

type authUsecase struct {
	config *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(cfg *config.Config) AuthUsecase {
	return &authUsecase{config: cfg}
}

func (u *authUsecase) Login(username, password string) (*TokenResponse, error) {
	if u.config.AdminPasswordHash == "" {
		return nil, errors.New("admin account is not configured")
	}
	if username != u.config.AdminUsername {
		return nil, errors.New("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.config.AdminPasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid username or password")
	}

	expiry := u.config.JWTAccessExpiry
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(expiry).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: signed,
		ExpiresIn:   int64(expiry.Seconds()),
	}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	subject, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	return subject, nil
}
