package apptoken

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestService(at time.Time) *Service {
	s := NewService(testSecret)
	s.now = func() time.Time { return at }
	return s
}

func TestIssueThenVerifyRoundTrip(t *testing.T) {
	s := newTestService(time.Unix(1_700_000_000, 0))

	issued, err := s.Issue("user_2abc", 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_300), issued.ExpiresAt)

	subject, err := s.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", subject)
}

func TestIssueAppliesTTLFloorAndDefault(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := newTestService(now)

	issued, err := s.Issue("u1", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, now.Unix()+60, issued.ExpiresAt, "requested TTL below floor must be raised to 60s")

	issued, err = s.Issue("u1", 0)
	require.NoError(t, err)
	assert.Equal(t, now.Unix()+3600, issued.ExpiresAt, "zero TTL selects the 1h default")
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	s := newTestService(time.Unix(1_700_000_000, 0))
	issued, err := s.Issue("u1", time.Minute)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Unix(1_700_000_061, 0) }
	_, err = s.Verify(issued.Token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	s := newTestService(time.Unix(1_700_000_000, 0))
	issued, err := s.Issue("u1", time.Minute)
	require.NoError(t, err)

	parts := strings.Split(issued.Token, ".")
	require.Len(t, parts, 3)

	// Flip a single bit in every signature byte position in turn; each
	// mutation must fail verification.
	sig := parts[2]
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		mutated[i] ^= 0x01
		tampered := parts[0] + "." + parts[1] + "." + string(mutated)
		if tampered == issued.Token {
			continue
		}
		_, err := s.Verify(tampered)
		assert.Error(t, err, "bit flip at signature byte %d must be rejected", i)
	}
}

func TestVerifyRejectsTruncatedSignature(t *testing.T) {
	s := newTestService(time.Unix(1_700_000_000, 0))
	issued, err := s.Issue("u1", time.Minute)
	require.NoError(t, err)

	parts := strings.Split(issued.Token, ".")
	_, err = s.Verify(parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-1])
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyRejectsWrongIssuerOrAudience(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := newTestService(now)

	for name, claims := range map[string]Claims{
		"wrong issuer": {
			Subject: "u1", IssuedAt: now.Unix(), ExpiresAt: now.Unix() + 600,
			Issuer: "someone-else", Audience: Audience,
		},
		"wrong audience": {
			Subject: "u1", IssuedAt: now.Unix(), ExpiresAt: now.Unix() + 600,
			Issuer: Issuer, Audience: "someone-else",
		},
		"missing subject": {
			IssuedAt: now.Unix(), ExpiresAt: now.Unix() + 600,
			Issuer: Issuer, Audience: Audience,
		},
	} {
		token, err := Encode(claims, testSecret)
		require.NoError(t, err, name)
		_, err = s.Verify(token)
		assert.Error(t, err, name)
	}
}

func TestVerifyRejectsMalformedTokens(t *testing.T) {
	s := newTestService(time.Unix(1_700_000_000, 0))

	for _, token := range []string{
		"",
		"one.two",
		"one.two.three.four",
		"not-base64.!!!.sig",
	} {
		_, err := s.Verify(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestMissingSecret(t *testing.T) {
	s := NewService(nil)

	_, err := s.Issue("u1", time.Minute)
	assert.ErrorIs(t, err, ErrNoSecret, "issuance without a secret is a hard failure")

	good := newTestService(time.Unix(1_700_000_000, 0))
	issued, err := good.Issue("u1", time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(issued.Token)
	assert.Error(t, err, "verification without a secret treats every token as invalid")
}

func TestVerifyRejectsTokenSignedWithDifferentSecret(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	a := newTestService(now)
	b := NewService([]byte("another-256-bit-secret-value...."))
	b.now = a.now

	issued, err := b.Issue("u1", time.Minute)
	require.NoError(t, err)

	_, err = a.Verify(issued.Token)
	assert.ErrorIs(t, err, ErrBadSignature)
}
