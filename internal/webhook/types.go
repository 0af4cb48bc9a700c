package webhook

import (
	"context"
	"time"

	"github.com/mattjoyce/skydispatch/internal/reply"
)

// Dispatcher turns a verified request body into a reply.
type Dispatcher interface {
	Dispatch(ctx context.Context, body []byte) (reply.Response, error)
}

// Verifier authenticates a raw request body against its signature headers.
type Verifier interface {
	Verify(body []byte, signature, timestamp string) (bool, error)
}

// ReadyReporter reports whether the backing stores initialized.
type ReadyReporter interface {
	Ready() bool
}

// Config holds webhook server configuration.
type Config struct {
	Listen       string
	MaxBodySize  int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ErrorResponse is the JSON response for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON body of GET /healthz.
type HealthResponse struct {
	Status        string `json:"status"`
	StoreReady    bool   `json:"store_ready"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Default values
const (
	DefaultMaxBodySize  = 1048576 // 1 MB
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
)

// Client-facing messages.
const (
	bannerText        = "✈️ Virtual Skies Bot is ONLINE (IBM Code Engine Application). Ready for HTTP interactions."
	errInvalidSig     = "invalid request signature"
	errVerifierFault  = "internal verification error"
	errUnknownType    = "unknown interaction type"
	errPayloadTooBig  = "payload too large"
	errReadBodyFailed = "failed to read request body"
)

// Verification failure reasons recorded in metrics.
const (
	reasonMissingHeaders = "missing_headers"
	reasonBadSignature   = "bad_signature"
	reasonFault          = "fault"
)
