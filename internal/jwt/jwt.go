package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/config"
	"holdem-server/pkg/token"
)

// Issuer issues the seat tickets
const Issuer = "holdem-server"

// Audience is the intended ticket audience
const Audience = "holdem-server.seat"

var secret []byte
var ttl time.Duration

// LoadSecret will load the signing secret
// If no secret is configured a random one is generated, tickets will not survive a restart.
// this method should only be called once.
func LoadSecret() {
	cfg := config.Instance().Tickets
	ttl = cfg.TTL

	if cfg.Secret != "" {
		secret = []byte(cfg.Secret)
		return
	}

	s, err := token.NewSecret()
	if err != nil {
		logrus.WithError(err).Fatal("could not generate ticket secret")
	}

	logrus.Warn("tickets.secret is not set, using a random secret")
	secret = s
}

// Sign will sign a ticket for the seat
func Sign(seat int) (string, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	now := time.Now()
	claims := jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(now),
		Issuer:   Issuer,
		Subject:  strconv.Itoa(seat),
	}

	if ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(ttl))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(secret)
}

// ValidSeat will validate a signed ticket and return the seat it was issued for
func ValidSeat(signedString string) (int, error) {
	if secret == nil {
		panic("LoadSecret() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return secret, nil
	})

	if err != nil {
		return -1, err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.RegisteredClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return -1, errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return -1, errors.New("invalid issuer")
			}

			return strconv.Atoi(claims.Subject)
		}

		return -1, fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	logrus.Warn("ticket claims were not valid. did not expect to reach this code")
	return -1, errors.New("claims were not valid")
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
