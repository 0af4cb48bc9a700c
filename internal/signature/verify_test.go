package signature

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeyPair(t *testing.T) (string, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return hex.EncodeToString(pub), priv
}

func sign(priv ed25519.PrivateKey, timestamp string, body []byte) string {
	return hex.EncodeToString(ed25519.Sign(priv, append([]byte(timestamp), body...)))
}

func TestVerify(t *testing.T) {
	pubHex, priv := newKeyPair(t)
	otherPub, _ := newKeyPair(t)
	body := []byte(`{"type":1}`)
	ts := "1700000000"
	sig := sign(priv, ts, body)

	tests := []struct {
		name      string
		publicKey string
		body      []byte
		signature string
		timestamp string
		want      bool
	}{
		{name: "valid", publicKey: pubHex, body: body, signature: sig, timestamp: ts, want: true},
		{name: "tampered body", publicKey: pubHex, body: []byte(`{"type": 1}`), signature: sig, timestamp: ts},
		{name: "different timestamp", publicKey: pubHex, body: body, signature: sig, timestamp: "1700000001"},
		{name: "wrong public key", publicKey: otherPub, body: body, signature: sig, timestamp: ts},
		{name: "missing signature", publicKey: pubHex, body: body, timestamp: ts},
		{name: "missing timestamp", publicKey: pubHex, body: body, signature: sig},
		{name: "signature not hex", publicKey: pubHex, body: body, signature: "zz-not-hex", timestamp: ts},
		{name: "signature wrong length", publicKey: pubHex, body: body, signature: "abcd", timestamp: ts},
		{name: "no public key", body: body, signature: sig, timestamp: ts},
		{name: "public key not hex", publicKey: "nope", body: body, signature: sig, timestamp: ts},
		{name: "public key wrong length", publicKey: "abcd", body: body, signature: sig, timestamp: ts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewVerifier(tt.publicKey).Verify(tt.body, tt.signature, tt.timestamp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerify_PrimitivePanicIsFault(t *testing.T) {
	pubHex, priv := newKeyPair(t)
	body := []byte(`{"type":1}`)
	v := NewVerifier(pubHex).WithPrimitive(func(ed25519.PublicKey, []byte, []byte) bool {
		panic("openssl exploded")
	})

	ok, err := v.Verify(body, sign(priv, "1", body), "1")
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVerifierFault))
	assert.Contains(t, err.Error(), "openssl exploded")
}

func TestVerify_PrimitiveNotCalledForMissingHeaders(t *testing.T) {
	pubHex, _ := newKeyPair(t)
	called := false
	v := NewVerifier(pubHex).WithPrimitive(func(ed25519.PublicKey, []byte, []byte) bool {
		called = true
		return true
	})

	ok, err := v.Verify([]byte(`{}`), "", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, called)
}

func TestConfigured(t *testing.T) {
	pubHex, _ := newKeyPair(t)
	assert.True(t, NewVerifier(pubHex).Configured())
	assert.True(t, NewVerifier("  "+pubHex+"\n").Configured())
	assert.False(t, NewVerifier("").Configured())
	var nilVerifier *Verifier
	assert.False(t, nilVerifier.Configured())
}
