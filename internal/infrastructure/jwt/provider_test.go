package jwtinfra

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret-0123456789abcdef"

func newTestProvider() *Provider {
	return NewProvider(testSecret, 24*time.Hour, 7*24*time.Hour)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	p := newTestProvider()

	pair, err := p.Issue("owner@shop.example", true)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), pair.AccessExpiresAt, time.Minute)

	claims, err := p.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.example", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_TamperedToken(t *testing.T) {
	p := newTestProvider()

	pair, err := p.Issue("owner@shop.example", true)
	require.NoError(t, err)

	// Flip one payload byte; the signature no longer matches.
	for i := len(pair.AccessToken) / 2; i < len(pair.AccessToken); i++ {
		if pair.AccessToken[i] != 'x' && pair.AccessToken[i] != '.' {
			tampered := pair.AccessToken[:i] + "x" + pair.AccessToken[i+1:]
			_, err = p.Verify(tampered)
			require.Error(t, err)
			return
		}
	}
	t.Fatal("no byte available to tamper")
}

func TestVerify_WrongSecret(t *testing.T) {
	p := newTestProvider()
	pair, err := p.Issue("owner@shop.example", true)
	require.NoError(t, err)

	other := NewProvider("another-secret-entirely-0123456789", 24*time.Hour, 7*24*time.Hour)
	_, err = other.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	p := newTestProvider()
	pair, err := p.Issue("owner@shop.example", true)
	require.NoError(t, err)

	p.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = p.Verify(pair.AccessToken)
	require.Error(t, err)

	// The refresh token outlives the access token.
	_, err = p.Verify(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider()
	for _, tok := range []string{"", "not-a-token", "a.b.c", strings.Repeat("x", 512)} {
		_, err := p.Verify(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	p := newTestProvider()
	pair, err := p.Issue("owner@shop.example", true)
	require.NoError(t, err)

	next, err := p.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)
	assert.NotEmpty(t, next.RefreshToken)

	claims, err := p.Verify(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.example", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestRefresh_NonAdminRejected(t *testing.T) {
	p := newTestProvider()
	pair, err := p.Issue("shopper@example.com", false)
	require.NoError(t, err)

	_, err = p.Refresh(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefresh_GarbageRejected(t *testing.T) {
	p := newTestProvider()
	_, err := p.Refresh("garbage")
	assert.Error(t, err)
}
