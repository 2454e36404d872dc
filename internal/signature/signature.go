// Package signature authenticates intake bodies with a shared-secret MAC.
//
// Verification always runs over the exact raw request bytes, before any
// parsing, so a semantically-equivalent re-encoding can never bypass it.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the hex-encoded HMAC-SHA256 of raw under secret. Builders
// compute the same digest out-of-band and send it in X-Signature.
func Sign(raw, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(raw)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig is the valid MAC for raw under secret.
// The comparison is constant-time.
func Verify(raw []byte, sig string, secret []byte) bool {
	expected := Sign(raw, secret)
	return hmac.Equal([]byte(expected), []byte(sig))
}
