package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nonceAction = "wpfa_speakers_ajax"

func TestHMACNonce_IssueAndVerify(t *testing.T) {
	m := NewHMACNonceManager("nonce-secret", 12*time.Hour)

	nonce := m.Issue("user-1", nonceAction)
	require.NotEmpty(t, nonce)
	assert.True(t, m.Verify("user-1", nonceAction, nonce))
}

func TestHMACNonce_Verify_rejects(t *testing.T) {
	m := NewHMACNonceManager("nonce-secret", 12*time.Hour)
	nonce := m.Issue("user-1", nonceAction)

	assert.False(t, m.Verify("user-2", nonceAction, nonce), "different user")
	assert.False(t, m.Verify("user-1", "other_action", nonce), "different action")
	assert.False(t, m.Verify("user-1", nonceAction, ""), "empty nonce")
	assert.False(t, m.Verify("user-1", nonceAction, "deadbeefdeadbeefdeadbeef"), "forged nonce")

	other := NewHMACNonceManager("other-secret", 12*time.Hour)
	assert.False(t, other.Verify("user-1", nonceAction, nonce), "different secret")
}

func TestHMACNonce_previousWindowStillValid(t *testing.T) {
	m := NewHMACNonceManager("nonce-secret", time.Hour).(*hmacNonce)

	issued := time.Date(2025, 6, 1, 10, 59, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }
	nonce := m.Issue("user-1", nonceAction)

	// One window boundary later the nonce still verifies; two don't.
	m.now = func() time.Time { return issued.Add(30 * time.Minute) }
	assert.True(t, m.Verify("user-1", nonceAction, nonce))

	m.now = func() time.Time { return issued.Add(3 * time.Hour) }
	assert.False(t, m.Verify("user-1", nonceAction, nonce))
}
