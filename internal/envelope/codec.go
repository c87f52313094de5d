// Package envelope implements the wire format spoken on each client
// connection: a JSON document encrypted with AES-256-CBC under a pre-shared
// key, prefixed with a random IV and base64-encoded. Older clients send plain
// base64(JSON) instead, so decoding tries an ordered chain of strategies and
// the first one that yields valid JSON wins.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// KeySize is the required pre-shared key length (AES-256).
	KeySize = 32

	// ProbeLiteral is the liveness probe. It is sent as-is, never encoded,
	// and is recognized by the connection loop before decoding.
	ProbeLiteral = "TEST"
)

// minEnvelopeSize is one IV block plus at least one cipher block.
const minEnvelopeSize = 2 * aes.BlockSize

var (
	ErrKeySize = errors.New("envelope: key must be 32 bytes")

	errTooShort      = errors.New("input shorter than IV plus one block")
	errBlockAlign    = errors.New("ciphertext not a multiple of the block size")
	errBadPadding    = errors.New("invalid padding")
	errNotJSON       = errors.New("plaintext is not valid JSON")
	errNotUTF8       = errors.New("plaintext is not valid UTF-8")
	errEmptyLegacy   = errors.New("empty payload")
	errLegacyNotJSON = errors.New("decoded text is not valid JSON")
)

// DecodeError reports that every decode strategy failed. Reasons holds one
// entry per strategy, in the order they were tried.
type DecodeError struct {
	Reasons []string
}

func (e *DecodeError) Error() string {
	return "envelope: malformed message: " + strings.Join(e.Reasons, "; ")
}

// Codec encrypts and decrypts wire messages under a fixed pre-shared key.
// The key is provisioned out-of-band via configuration; the codec never
// embeds one.
type Codec struct {
	key []byte
}

// New returns a Codec for the given 32-byte key.
func New(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}
	c := &Codec{key: make([]byte, KeySize)}
	copy(c.key, key)
	return c, nil
}

// Encode serializes v to JSON, pads it to the cipher block size, encrypts it
// with a fresh random IV, and returns base64(IV || ciphertext). The returned
// text carries no trailing newline; framing is the connection loop's job.
func (c *Codec) Encode(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("envelope: marshal: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("envelope: iv: %w", err)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("envelope: cipher: %w", err)
	}

	padded := pad(plaintext)
	out := make([]byte, aes.BlockSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decode parses a wire message into v. Strategies are tried in order:
// encrypted envelope first, then the legacy plain-base64 path. If both fail,
// a *DecodeError carrying each strategy's reason is returned.
func (c *Codec) Decode(text string, v any) error {
	strategies := []struct {
		name string
		fn   func(string) ([]byte, error)
	}{
		{"aes-cbc", c.decodeEncrypted},
		{"legacy-base64", decodeLegacy},
	}

	reasons := make([]string, 0, len(strategies))
	for _, s := range strategies {
		plaintext, err := s.fn(text)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: %v", s.name, err))
			continue
		}
		return json.Unmarshal(plaintext, v)
	}
	return &DecodeError{Reasons: reasons}
}

func (c *Codec) decodeEncrypted(text string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	if len(raw) < minEnvelopeSize {
		return nil, errTooShort
	}

	iv, ciphertext := raw[:aes.BlockSize], raw[aes.BlockSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, errBlockAlign
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = unpad(plaintext)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(plaintext) {
		return nil, errNotUTF8
	}
	if !json.Valid(plaintext) {
		return nil, errNotJSON
	}
	return plaintext, nil
}

// decodeLegacy handles older clients that send unencrypted base64(JSON).
// Accepted on input only; responses are always encrypted.
func decodeLegacy(text string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errEmptyLegacy
	}
	if !json.Valid(raw) {
		return nil, errLegacyNotJSON
	}
	return raw, nil
}

// pad appends PKCS#7 padding so the result is a positive multiple of the
// block size. The pad value equals the number of bytes appended.
func pad(data []byte) []byte {
	n := aes.BlockSize - len(data)%aes.BlockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// unpad verifies and strips PKCS#7 padding.
func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errBadPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize || n > len(data) {
		return nil, errBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if b != byte(n) {
			return nil, errBadPadding
		}
	}
	return data[:len(data)-n], nil
}
