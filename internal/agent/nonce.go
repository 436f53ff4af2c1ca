package agent

import (
	"time"

	"github.com/google/uuid"
)

// TokenSource hands out the per-attempt replay-protection pair. Every
// physical attempt must draw a fresh pair; a retried request never reuses
// the previous nonce or timestamp because the server's replay window would
// reject the resent envelope.
type TokenSource interface {
	Fresh() (uuid.UUID, int64)
}

type clockSource struct{}

// NewTokenSource returns the production source: a random v4 UUID from the
// process-wide CSPRNG (safe for concurrent callers) and the current wall
// clock in epoch seconds.
func NewTokenSource() TokenSource { return clockSource{} }

func (clockSource) Fresh() (uuid.UUID, int64) {
	return uuid.New(), time.Now().Unix()
}
