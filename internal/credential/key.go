package credential

import (
	"crypto"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"strings"

	"github.com/zeebo/blake3"
)

// ParsePrivateKey decodes a normalized PEM block and parses the key it holds.
// PKCS#8, PKCS#1 (RSA) and SEC 1 (EC) encodings are accepted.
func ParsePrivateKey(pemText string) (crypto.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, newError(KindMalformed, "no PEM block found", nil)
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err == nil {
		return key, nil
	}
	if rsaKey, rsaErr := x509.ParsePKCS1PrivateKey(block.Bytes); rsaErr == nil {
		return rsaKey, nil
	}
	if ecKey, ecErr := x509.ParseECPrivateKey(block.Bytes); ecErr == nil {
		return ecKey, nil
	}
	return nil, newError(KindMalformed, "unsupported private key in "+block.Type+" block", err)
}

// Fingerprint identifies key material in logs without revealing it.
func Fingerprint(s string) string {
	sum := blake3.Sum256([]byte(s))
	return "blake3:" + hex.EncodeToString(sum[:8])
}

// BodyLines returns the number of base64 lines between the PEM markers.
func BodyLines(pemText string) int {
	lines := strings.Split(strings.TrimRight(pemText, "\n"), "\n")
	if len(lines) < 2 {
		return 0
	}
	return len(lines) - 2
}

// ErrEmpty is returned by callers that require a credential and received none.
var ErrEmpty = errors.New("credential: private key is empty")
