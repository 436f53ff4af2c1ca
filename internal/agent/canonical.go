package agent

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// emptyBodyMarker keeps bodiless requests distinct from every real body,
// including `{}` (whose digest differs).
const emptyBodyMarker = "-"

// Canonicalize builds the exact byte string the signature covers. The server
// rebuilds the same string from the request, so the layout is a wire contract:
// method, normalized path, decimal epoch seconds, hyphenated UUID and the
// lowercase hex SHA-1 of the body, joined by newlines.
func Canonicalize(method, path string, timestamp int64, nonce uuid.UUID, body []byte) string {
	b := strings.Builder{}
	b.WriteString(method)
	b.WriteByte('\n')
	b.WriteString(NormalizePath(path))
	b.WriteByte('\n')
	b.WriteString(int64ToString(timestamp))
	b.WriteByte('\n')
	b.WriteString(nonce.String())
	b.WriteByte('\n')
	if len(body) == 0 {
		b.WriteString(emptyBodyMarker)
	} else {
		sum := sha1.Sum(body)
		b.WriteString(hex.EncodeToString(sum[:]))
	}
	return b.String()
}

// NormalizePath forces a single canonical spelling for each resource so that
// "/v1/jobs" and "v1/jobs/" sign identically. A query string, when present,
// is part of the path and is signed as-is.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
