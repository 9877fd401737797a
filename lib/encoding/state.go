// Package encoding serializes history states.
//
// A state passed to pushState/replaceState is packed with msgpack and
// wrapped in one of two envelopes:
//   - Signed (default): base64 payload + HMAC tag, readable but tamper-evident
//   - Sealed: AES-256-GCM, opaque to anything reading the history entry
//
// The platform history primitive only stores strings, so the codec also
// defines the string form: an empty state encodes to "".
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid state format")
	ErrSignatureInvalid = errors.New("encoding: state signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: state decryption failed")
)

const sealedPrefix = "~"

// Codec encodes and decodes history states.
type Codec struct {
	key []byte
	gcm cipher.AEAD
}

// NewCodec creates a codec. Keys shorter than 32 bytes are stretched with
// SHA-256.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{key: key, gcm: gcm}, nil
}

// Encode packs v. A nil v encodes to the empty string.
func (c *Codec) Encode(v any, sealed bool) (string, error) {
	if v == nil {
		return "", nil
	}
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding: pack state: %w", err)
	}
	if sealed {
		return c.seal(packed)
	}
	return c.sign(packed), nil
}

// Decode unpacks s into v. The envelope is detected from s, so callers do
// not need to remember how a state was written. An empty s leaves v
// untouched.
func (c *Codec) Decode(s string, v any) error {
	if s == "" {
		return nil
	}

	var packed []byte
	var err error
	if strings.HasPrefix(s, sealedPrefix) {
		packed, err = c.open(strings.TrimPrefix(s, sealedPrefix))
	} else {
		packed, err = c.verify(s)
	}
	if err != nil {
		return err
	}

	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

// sign produces base64.tag
func (c *Codec) sign(data []byte) string {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	return b64 + "." + base64.RawURLEncoding.EncodeToString(c.tag(data))
}

func (c *Codec) verify(s string) ([]byte, error) {
	payload, sig, ok := strings.Cut(s, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	tag, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, ErrSignatureInvalid
	}

	if !hmac.Equal(tag, c.tag(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (c *Codec) tag(data []byte) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	return mac.Sum(nil)[:16]
}

func (c *Codec) seal(data []byte) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ciphertext := c.gcm.Seal(nonce, nonce, data, nil)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

func (c *Codec) open(s string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	if len(ciphertext) < c.gcm.NonceSize() {
		return nil, ErrInvalidFormat
	}

	nonce := ciphertext[:c.gcm.NonceSize()]
	ciphertext = ciphertext[c.gcm.NonceSize():]

	data, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
