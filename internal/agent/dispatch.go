package agent

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// Dispatcher performs exactly one signed attempt per call: fresh nonce and
// timestamp, canonicalize, sign, send, interpret. Retry policy lives in the
// Controller so the signing/transport boundary stays free of it.
type Dispatcher struct {
	base   string
	http   httpClient
	tokens TokenSource
}

func NewDispatcher(base string, hc httpClient, tokens TokenSource) *Dispatcher {
	if hc == nil {
		hc = defaultHTTPClient()
	}
	if tokens == nil {
		tokens = NewTokenSource()
	}
	return &Dispatcher{base: strings.TrimSuffix(base, "/"), http: hc, tokens: tokens}
}

func (d *Dispatcher) Dispatch(ctx context.Context, cred Credential, method, path string, body []byte) (Outcome, error) {
	path = NormalizePath(path)
	nonce, ts := d.tokens.Fresh()

	sig, err := SignCanonical(Canonicalize(method, path, ts, nonce, body), cred.Secret)
	if err != nil {
		return Outcome{}, err
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, d.base+path, rd)
	if err != nil {
		return Outcome{}, &TransportError{Kind: transportNetwork, Err: err}
	}

	req.Header.Set("User-Agent", "hanactl")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderKeyID, cred.KeyID)
	req.Header.Set(HeaderSignature, sig)
	req.Header.Set(HeaderSigMethod, SignatureMethod)
	req.Header.Set(HeaderNonce, nonce.String())
	req.Header.Set(HeaderTimestamp, int64ToString(ts))

	resp, err := d.http.Do(req)
	if err != nil {
		return Outcome{}, &TransportError{Kind: transportNetwork, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, &TransportError{Kind: transportNetwork, Err: err}
	}
	return Interpret(resp.StatusCode, b)
}
