package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid profile token")

// ProfileTokens issues and verifies the HS256 tokens naming a storage
// profile. A token only selects a namespace; it does not authenticate.
type ProfileTokens struct {
	secret   []byte
	duration time.Duration
}

func NewProfileTokens(secret string, duration time.Duration) *ProfileTokens {
	return &ProfileTokens{secret: []byte(secret), duration: duration}
}

// New allocates a fresh profile id and its token.
func (p *ProfileTokens) New() (id, token string, err error) {
	id = uuid.NewString()
	token, err = p.Issue(id)
	return id, token, err
}

func (p *ProfileTokens) Issue(profileID string) (string, error) {
	claims := jwt.MapClaims{
		"profile": profileID,
		"iat":     time.Now().Unix(),
	}
	if p.duration > 0 {
		claims["exp"] = time.Now().Add(p.duration).Unix()
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign profile token: %w", err)
	}
	return tok, nil
}

// Parse returns the profile id carried by token.
func (p *ProfileTokens) Parse(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	raw, _ := claims["profile"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidToken
	}
	return id.String(), nil
}
