package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretSuccessWithPayload(t *testing.T) {
	out, err := Interpret(200, []byte(`{"data":{"time":1664582400}}`))
	require.NoError(t, err)
	assert.Equal(t, 200, out.Status)
	require.NotNil(t, out.Payload)

	m, ok := out.Payload.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "data")
}

func TestInterpretBodilessSuccess(t *testing.T) {
	for _, body := range [][]byte{nil, {}, []byte("  \n")} {
		out, err := Interpret(204, body)
		require.NoError(t, err)
		assert.Equal(t, 204, out.Status)
		assert.Nil(t, out.Payload)
	}
}

func TestInterpretMalformedSuccessBody(t *testing.T) {
	_, err := Interpret(200, []byte("<html>gateway</html>"))
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, transportProtocol, te.Kind)
}

func TestInterpretErrorEnvelopeVerbatim(t *testing.T) {
	_, err := Interpret(401, []byte(`{"error_code":"SIGNATURE_INVALID","message":"bad signature"}`))
	require.Error(t, err)

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 401, ae.Status)
	assert.Equal(t, "SIGNATURE_INVALID", ae.Code)
	assert.Equal(t, "bad signature", ae.Message)
	assert.False(t, ae.Retryable())
}

func TestInterpretRetryableStatuses(t *testing.T) {
	for _, status := range []int{429, 500, 502, 503} {
		_, err := Interpret(status, []byte(`{"error_code":"BUSY","message":"try later"}`))
		var ae *APIError
		require.ErrorAs(t, err, &ae, "status %d", status)
		assert.True(t, ae.Retryable(), "status %d", status)
	}
	_, err := Interpret(404, []byte(`{"error_code":"NOT_FOUND","message":"gone"}`))
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.False(t, ae.Retryable())
}

func TestInterpretUndecodableErrorBody(t *testing.T) {
	_, err := Interpret(502, []byte("Bad Gateway"))
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, transportProtocol, te.Kind)

	// protocol violations are still transient from the caller's view
	assert.True(t, isRetryable(err))
}

func TestIsRetryableClassification(t *testing.T) {
	assert.True(t, isRetryable(&TransportError{Kind: transportNetwork, Err: errors.New("refused")}))
	assert.True(t, isRetryable(&APIError{Status: 503}))
	assert.False(t, isRetryable(&APIError{Status: 400}))
	assert.False(t, isRetryable(ErrEmptySecret))
	assert.False(t, isRetryable(errors.New("unclassified")))
}
