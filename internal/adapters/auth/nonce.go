package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"speakeradmin/internal/domain"
)

type hmacNonce struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewHMACNonceManager returns a NonceManager whose nonces are HMAC-SHA256
// tags over (user, action, time window). A nonce stays valid for the window
// it was issued in plus the following one, so its real lifetime is between
// one and two times the given duration.
func NewHMACNonceManager(secret string, lifetime time.Duration) domain.NonceManager {
	return &hmacNonce{secret: []byte(secret), lifetime: lifetime, now: time.Now}
}

func (n *hmacNonce) Issue(userID, action string) string {
	return n.tag(userID, action, n.window())
}

func (n *hmacNonce) Verify(userID, action, nonce string) bool {
	if nonce == "" {
		return false
	}
	w := n.window()
	for _, candidate := range []int64{w, w - 1} {
		if hmac.Equal([]byte(nonce), []byte(n.tag(userID, action, candidate))) {
			return true
		}
	}
	return false
}

func (n *hmacNonce) window() int64 {
	return n.now().Unix() / int64(n.lifetime/time.Second)
}

func (n *hmacNonce) tag(userID, action string, window int64) string {
	mac := hmac.New(sha256.New, n.secret)
	fmt.Fprintf(mac, "%s|%s|%d", userID, action, window)
	return hex.EncodeToString(mac.Sum(nil)[:12])
}
