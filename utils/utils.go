package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AccessTokenTTL is the lifetime of access tokens and their sessions.
const AccessTokenTTL = 24 * time.Hour

var (
	secretMu  sync.RWMutex
	secretKey = []byte("boqportal-dev-secret")
)

// SetJWTSecret replaces the signing key. Called once at startup.
func SetJWTSecret(secret string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	secretKey = []byte(secret)
}

func signingKey() []byte {
	secretMu.RLock()
	defer secretMu.RUnlock()
	return secretKey
}

// GenerateJWT creates an access token bound to a session.
func GenerateJWT(email string, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"email":     email,
		"type":      "access",
		"sessionId": sessionID,
		"exp":       time.Now().Add(AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

// ValidateJWT parses and validates a JWT string.
func ValidateJWT(tokenStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return token, nil
}

// SessionIDFromToken validates an access token and returns its session id.
func SessionIDFromToken(tokenStr string) (string, error) {
	token, err := ValidateJWT(tokenStr)
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims structure")
	}
	if t, _ := claims["type"].(string); t != "access" {
		return "", errors.New("not an access token")
	}
	sessionID, ok := claims["sessionId"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("session claim missing or invalid")
	}
	return sessionID, nil
}

func ValidatePassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}
