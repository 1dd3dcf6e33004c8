// Package token issues and validates short-lived HMAC-signed tokens that
// grant anonymous, time-boxed download access to exactly one file. Tokens
// are time-bounded only: there is no single-use enforcement.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
)

type payload struct {
	FileID    string `json:"fileId"`
	ExpiresAt int64  `json:"expiresAt"` // unix milliseconds
}

type signedToken struct {
	FileID    string `json:"fileId"`
	ExpiresAt int64  `json:"expiresAt"`
	Signature string `json:"signature"`
}

// Issuer signs file access tokens with an HMAC secret.
type Issuer struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// NewIssuer creates an Issuer. defaultTTL is used when Issue receives a
// non-positive ttl.
func NewIssuer(secret string, defaultTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (i *Issuer) sign(p payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token payload: %w", err)
	}
	mac := hmac.New(sha256.New, i.secret)
	mac.Write(raw)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Issue returns base64({fileId, expiresAt, signature}) and the expiry time.
func (i *Issuer) Issue(fileID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = i.defaultTTL
	}
	expiresAt := i.now().Add(ttl)

	p := payload{FileID: fileID.String(), ExpiresAt: expiresAt.UnixMilli()}
	sig, err := i.sign(p)
	if err != nil {
		return "", time.Time{}, err
	}

	raw, err := json.Marshal(signedToken{FileID: p.FileID, ExpiresAt: p.ExpiresAt, Signature: sig})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to marshal token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), expiresAt, nil
}

// Validate decodes a token, recomputes the signature over {fileId, expiresAt}
// and compares in constant time, then checks expiry. Any failure yields
// domain.ErrInvalidToken without detail.
func (i *Issuer) Validate(tok string) (uuid.UUID, time.Time, error) {
	raw, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		return uuid.Nil, time.Time{}, domain.ErrInvalidToken
	}

	var st signedToken
	if err := json.Unmarshal(raw, &st); err != nil {
		return uuid.Nil, time.Time{}, domain.ErrInvalidToken
	}

	expected, err := i.sign(payload{FileID: st.FileID, ExpiresAt: st.ExpiresAt})
	if err != nil {
		return uuid.Nil, time.Time{}, domain.ErrInvalidToken
	}
	if !hmac.Equal([]byte(st.Signature), []byte(expected)) {
		return uuid.Nil, time.Time{}, domain.ErrInvalidToken
	}

	expiresAt := time.UnixMilli(st.ExpiresAt)
	if i.now().After(expiresAt) {
		return uuid.Nil, time.Time{}, domain.ErrInvalidToken
	}

	fileID, err := uuid.Parse(st.FileID)
	if err != nil {
		return uuid.Nil, time.Time{}, domain.ErrInvalidToken
	}
	return fileID, expiresAt, nil
}
