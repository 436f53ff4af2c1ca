package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Outcome is the parsed result of one accepted request. Payload is nil for
// bodiless responses such as 204.
type Outcome struct {
	Status  int
	Payload any
}

type errorEnvelope struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// Interpret maps a raw status and body to an Outcome or a classified error.
// Pure mapping, no IO. An empty body on 2xx is a success; a 2xx body that is
// not JSON is a protocol violation, not an application failure.
func Interpret(status int, body []byte) (Outcome, error) {
	trimmed := bytes.TrimSpace(body)

	if status >= 200 && status < 300 {
		if len(trimmed) == 0 {
			return Outcome{Status: status}, nil
		}
		var payload any
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return Outcome{}, &TransportError{
				Kind: transportProtocol,
				Err:  fmt.Errorf("status=%d with malformed JSON body: %w", status, err),
			}
		}
		return Outcome{Status: status, Payload: payload}, nil
	}

	if len(trimmed) > 0 && json.Valid(trimmed) {
		var env errorEnvelope
		_ = json.Unmarshal(trimmed, &env)
		return Outcome{}, &APIError{Status: status, Code: env.ErrorCode, Message: env.Message}
	}
	return Outcome{}, &TransportError{
		Kind: transportProtocol,
		Err:  fmt.Errorf("status=%d with undecodable error body", status),
	}
}
