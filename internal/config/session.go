package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSessionKey = errors.New("no SESSION_KEY or SESSION_KEY_FILE env variable set")

// SessionClaims bind a token to the game session it was issued for.
type SessionClaims struct {
	GameSessionID int64 `json:"game_session_id"`
	jwt.RegisteredClaims
}

type Session struct {
	key           []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

func loadSessionKey() ([]byte, error) {
	key, ok := os.LookupEnv("SESSION_KEY")
	if ok {
		return []byte(key), nil
	}
	keyPath, ok := os.LookupEnv("SESSION_KEY_FILE")
	if !ok {
		return nil, ErrNoSessionKey
	}
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read session key: %w", err)
	}
	return []byte(strings.TrimSpace(string(data))), nil
}

func NewSession() (*Session, error) {
	key, err := loadSessionKey()
	if err != nil {
		return nil, err
	}
	lifetime, err := lookupDuration("SESSION_TOKEN_LIFETIME", time.Hour*24)
	if err != nil {
		return nil, err
	}
	return NewSessionWithKey(key, lifetime)
}

func NewSessionWithKey(key []byte, lifetime time.Duration) (*Session, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("session key is empty")
	}
	s := &Session{
		key:           key,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
	}
	return s, nil
}

func (s *Session) Sign(gameSessionID int64) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		GameSessionID: gameSessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(s.signingMethod, claims).SignedString(s.key)
}

func (s *Session) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return s.key, nil
		},
		jwt.WithValidMethods([]string{s.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
