package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

const signatureSeparator = "|"

// signer produces and checks HMAC-SHA256 signed values.
type signer struct {
	keys [][]byte
}

func newSigner(secrets []string) signer {
	keys := make([][]byte, len(secrets))
	for i, s := range secrets {
		keys[i] = []byte(s)
	}
	return signer{keys: keys}
}

func mac(key []byte, value []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(value)
	return h.Sum(nil)
}

func (s signer) sign(value string) string {
	sig := mac(s.keys[0], []byte(value))
	return base64.RawURLEncoding.EncodeToString([]byte(value)) +
		signatureSeparator +
		base64.RawURLEncoding.EncodeToString(sig)
}

func (s signer) verify(signed string) (string, error) {
	encoded, encodedSig, ok := strings.Cut(signed, signatureSeparator)
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, key := range s.keys {
		if hmac.Equal(sig, mac(key, value)) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}
