package agent

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
)

// SignCanonical computes the request signature: HMAC-SHA1 keyed with the
// shared secret over the canonical string, then standard base64 of the raw
// digest. Deterministic for identical inputs; uniqueness of real requests
// comes from the nonce and timestamp folded into the canonical string.
func SignCanonical(canonical string, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	if canonical == "" {
		return "", ErrEmptyCanonical
	}
	mac := hmac.New(sha1.New, secret)
	_, _ = mac.Write([]byte(canonical))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

func int64ToString(v int64) string {
	// tiny helper to avoid strconv import everywhere in this package
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := v < 0
	if neg {
		v = -v
	}
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
