// Package signature authenticates interaction callbacks signed with the
// platform's Ed25519 application key.
//
// The signed message is the X-Signature-Timestamp header value followed by
// the raw request body, byte for byte. Callers must pass the body exactly as
// it was read from the wire; re-encoding parsed JSON changes the bytes and
// fails verification.
package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Header names carrying the signature and the signed timestamp.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// ErrVerifierFault is returned when the verification primitive itself fails
// unexpectedly, as opposed to rejecting a signature.
var ErrVerifierFault = errors.New("signature verifier fault")

// Primitive checks sig over message with publicKey.
type Primitive func(publicKey ed25519.PublicKey, message, sig []byte) bool

// Verifier checks request signatures against one application public key.
type Verifier struct {
	publicKey ed25519.PublicKey
	primitive Primitive
}

// NewVerifier returns a Verifier for the hex-encoded publicKey. An empty or
// undecodable key is accepted so the process can start; such a Verifier
// rejects every request. Use Configured to detect it.
func NewVerifier(publicKeyHex string) *Verifier {
	v := &Verifier{primitive: ed25519.Verify}
	raw, err := hex.DecodeString(strings.TrimSpace(publicKeyHex))
	if err == nil && len(raw) == ed25519.PublicKeySize {
		v.publicKey = ed25519.PublicKey(raw)
	}
	return v
}

// WithPrimitive replaces the verification primitive.
func (v *Verifier) WithPrimitive(p Primitive) *Verifier {
	v.primitive = p
	return v
}

// Configured reports whether a usable public key was loaded.
func (v *Verifier) Configured() bool {
	return v != nil && len(v.publicKey) == ed25519.PublicKeySize
}

// Verify reports whether signature (hex) is valid for timestamp||body.
//
// Missing inputs and malformed encodings are rejections, not errors. The only
// error is a panic raised by the primitive, returned wrapping ErrVerifierFault.
func (v *Verifier) Verify(body []byte, signature, timestamp string) (ok bool, err error) {
	if !v.Configured() || signature == "" || timestamp == "" {
		return false, nil
	}

	sig, decodeErr := hex.DecodeString(signature)
	if decodeErr != nil || len(sig) != ed25519.SignatureSize {
		return false, nil
	}

	message := make([]byte, 0, len(timestamp)+len(body))
	message = append(message, timestamp...)
	message = append(message, body...)

	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("%w: %v", ErrVerifierFault, r)
		}
	}()
	return v.primitive(v.publicKey, message, sig), nil
}
