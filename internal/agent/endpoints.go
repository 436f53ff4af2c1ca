package agent

const (
	EndpointPing      = "/v1/ping"
	EndpointJobs      = "/v1/jobs"
	EndpointJobPrefix = "/v1/jobs/"
	EndpointEnroll    = "/v1/agents/enroll"
)

// Auth headers carried by every signed request. The server recomputes the
// signature from these plus the request line and body.
const (
	HeaderKeyID     = "X-Hana-Key"
	HeaderSignature = "X-Hana-Signature"
	HeaderSigMethod = "X-Hana-Signature-Method"
	HeaderNonce     = "X-Hana-Nonce"
	HeaderTimestamp = "X-Hana-Timestamp"

	SignatureMethod = "HMAC-SHA1"
)
