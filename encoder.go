package craft

import (
	"github.com/pthm/craft/lib/encoding"
)

// StateCodec is an alias for encoding.Codec for convenience.
type StateCodec = encoding.Codec

// History state errors, re-exported from lib/encoding.
var (
	ErrInvalidState          = encoding.ErrInvalidFormat
	ErrStateSignatureInvalid = encoding.ErrSignatureInvalid
	ErrStateDecryptFailed    = encoding.ErrDecryptFailed
)

// NewStateCodec creates a history state codec with the given key.
func NewStateCodec(key []byte) (*StateCodec, error) {
	return encoding.NewCodec(key)
}
