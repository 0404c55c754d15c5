// Package apptoken implements the compact signed token that bridges the
// client identity domain into the admin API. Tokens are three dot-joined
// URL-safe base64 segments (header, payload, signature) signed with
// HMAC-SHA256. Only that single algorithm is supported; this is not a
// general JOSE implementation.
package apptoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrMalformed    = errors.New("apptoken: malformed token")
	ErrBadSignature = errors.New("apptoken: signature mismatch")
)

// header is fixed for every token this system mints.
const encodedHeader = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9" // {"alg":"HS256","typ":"JWT"}

// Claims is the bridge token payload.
type Claims struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Issuer    string `json:"iss"`
	Audience  string `json:"aud"`
}

func b64Encode(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

func sign(signingInput string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(signingInput))
	return b64Encode(mac.Sum(nil))
}

// Encode serializes and signs the claims into the compact token form.
func Encode(claims Claims, secret []byte) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	signingInput := encodedHeader + "." + b64Encode(payload)
	return signingInput + "." + sign(signingInput, secret), nil
}

// Decode checks the token's shape and signature and returns its claims.
// The signature comparison is length-checked first, then constant time;
// no claim validation happens here.
func Decode(token string, secret []byte) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrMalformed
	}

	signingInput := parts[0] + "." + parts[1]
	expected := sign(signingInput, secret)
	if len(parts[2]) != len(expected) {
		return Claims{}, ErrBadSignature
	}
	if !hmac.Equal([]byte(parts[2]), []byte(expected)) {
		return Claims{}, ErrBadSignature
	}

	rawPayload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrMalformed
	}

	var claims Claims
	if err := json.Unmarshal(rawPayload, &claims); err != nil {
		return Claims{}, ErrMalformed
	}
	return claims, nil
}
