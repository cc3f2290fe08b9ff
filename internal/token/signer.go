package token

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints short-lived ES256 tokens for the embedded admin widget. The
// private key arrives as a JWK-shaped blob in config and is parsed once at
// construction.
type Signer struct {
	KeyID string
	key   *ecdsa.PrivateKey

	// swappable for tests
	Now func() time.Time
}

func NewSigner(keyID, jwkJSON string) (*Signer, error) {
	key, err := parseECJWK(jwkJSON)
	if err != nil {
		return nil, err
	}
	return &Signer{KeyID: keyID, key: key, Now: time.Now}, nil
}

// Sign returns a compact JWT for the given subject, valid for ttl from now.
func (s *Signer) Sign(subject string, ttl time.Duration) (string, error) {
	now := s.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	t.Header["kid"] = s.KeyID
	return t.SignedString(s.key)
}

// jwk is the subset of RFC 7517 needed for a P-256 private key.
type jwk struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	D   string `json:"d"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

func parseECJWK(raw string) (*ecdsa.PrivateKey, error) {
	if raw == "" {
		return nil, errors.New("signing key not configured")
	}

	var k jwk
	if err := json.Unmarshal([]byte(raw), &k); err != nil {
		return nil, fmt.Errorf("parsing signing key: %w", err)
	}
	if k.Kty != "EC" || k.Crv != "P-256" {
		return nil, fmt.Errorf("unsupported signing key type %s/%s", k.Kty, k.Crv)
	}

	d, err := decodeB64Int(k.D)
	if err != nil {
		return nil, fmt.Errorf("parsing signing key d: %w", err)
	}
	x, err := decodeB64Int(k.X)
	if err != nil {
		return nil, fmt.Errorf("parsing signing key x: %w", err)
	}
	y, err := decodeB64Int(k.Y)
	if err != nil {
		return nil, fmt.Errorf("parsing signing key y: %w", err)
	}

	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y},
		D:         d,
	}, nil
}

func decodeB64Int(s string) (*big.Int, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}
