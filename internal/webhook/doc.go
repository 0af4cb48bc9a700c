// Package webhook serves the signed interaction endpoint.
//
// # Request Flow
//
//  1. POST / arrives; the body is read once as raw bytes (413 above max_body_size)
//  2. X-Signature-Ed25519 and X-Signature-Timestamp are checked against the
//     application public key over timestamp || body (401 on mismatch)
//  3. The verified body is dispatched; any reply is returned with 200
//  4. Unrecognized interactions get 400
//
// # Error Responses
//
// - 400 Bad Request: {"error":"unknown interaction type"}
// - 401 Unauthorized: {"error":"invalid request signature"}
// - 413 Payload Too Large: body exceeds max_body_size
// - 500 Internal Server Error: the signature primitive itself failed
//
// # Other Routes
//
// GET / answers with a plain-text banner, GET /healthz with store readiness,
// and GET /metrics with the Prometheus exposition when a handler is configured.
//
// Request logging never includes bodies, signatures or key material.
package webhook
