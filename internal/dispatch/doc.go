// Package dispatch turns verified interaction payloads into replies.
//
// The dispatcher parses the payload, answers handshakes directly and routes
// commands through a name to handler table. Handlers read the document and
// realtime stores through the process-wide store.Handle.
//
// Outcomes:
//   - Handshake → Pong
//   - Known command → channel message (text or embed)
//   - Unknown command, other kinds, malformed payloads → ErrUnrecognized
//   - Stores not ready → "temporarily unavailable" message
//   - Store query failure → message naming the failed command and cause
//
// Dispatch never returns an error for store problems; those become replies so
// that the caller always has something to show the user.
package dispatch
