package agent

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignCanonicalReferenceVector(t *testing.T) {
	// Independently computed: base64(hmac-sha1("key", "canonical"))
	sig, err := SignCanonical("canonical", []byte("key"))
	require.NoError(t, err)
	assert.Equal(t, "xOqe3BUGLrmnKSiuk/Zny4yXEA8=", sig)
}

func TestSignCanonicalEndToEndVector(t *testing.T) {
	// POST /v1/jobs {"name":"x"} with secret s3cr3t and a pinned
	// nonce/timestamp. Reference value computed outside this codebase.
	nonce := uuid.MustParse("3d9ac1b4-52fb-4c55-9f14-7b3a0ea3c0d2")
	canonical := Canonicalize("POST", "/v1/jobs", 1664582400, nonce, []byte(`{"name":"x"}`))

	sig, err := SignCanonical(canonical, []byte("s3cr3t"))
	require.NoError(t, err)
	assert.Equal(t, "LDVK2EQ9xEUnGg/jHNX+2GuW084=", sig)
}

func TestSignCanonicalAgreesWithRawHMAC(t *testing.T) {
	canonical := "GET\n/v1/ping\n42\n3d9ac1b4-52fb-4c55-9f14-7b3a0ea3c0d2\n-"
	secret := []byte("shared")

	sig, err := SignCanonical(canonical, secret)
	require.NoError(t, err)

	mac := hmac.New(sha1.New, secret)
	mac.Write([]byte(canonical))
	assert.Equal(t, base64.StdEncoding.EncodeToString(mac.Sum(nil)), sig)
}

func TestSignCanonicalSingleByteSensitivity(t *testing.T) {
	secret := []byte("s3cr3t")
	base := "POST\n/v1/jobs\n1664582400\nnonce\ndigest"

	want, err := SignCanonical(base, secret)
	require.NoError(t, err)

	for i := 0; i < len(base); i++ {
		mutated := []byte(base)
		mutated[i] ^= 0x01
		got, err := SignCanonical(string(mutated), secret)
		require.NoError(t, err)
		assert.NotEqual(t, want, got, "flipping byte %d did not change the signature", i)
	}
}

func TestSignCanonicalConfigurationErrors(t *testing.T) {
	_, err := SignCanonical("canonical", nil)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = SignCanonical("", []byte("key"))
	assert.ErrorIs(t, err, ErrEmptyCanonical)
}
