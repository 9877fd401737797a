package encoding

import (
	"errors"
	"strings"
	"testing"
)

type testState struct {
	Tag    int64  `msgpack:"tag"`
	Scroll int    `msgpack:"scroll"`
	Title  string `msgpack:"title"`
}

func TestNewCodec(t *testing.T) {
	if _, err := NewCodec([]byte("short")); err != nil {
		t.Fatalf("NewCodec with short key failed: %v", err)
	}
	if _, err := NewCodec([]byte("this-is-a-32-byte-key-for-aes!!!")); err != nil {
		t.Fatalf("NewCodec with 32-byte key failed: %v", err)
	}
	if _, err := NewCodec([]byte("a-key-that-is-quite-a-bit-longer-than-thirty-two-bytes")); err != nil {
		t.Fatalf("NewCodec with long key failed: %v", err)
	}
}

func TestSignedRoundTrip(t *testing.T) {
	c, err := NewCodec([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	original := testState{Tag: 42, Scroll: 120, Title: "tag 42"}
	encoded, err := c.Encode(original, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(encoded, ".") {
		t.Errorf("signed state %q should contain a tag separator", encoded)
	}

	var decoded testState
	if err := c.Decode(encoded, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != original {
		t.Errorf("Decode() = %+v, want %+v", decoded, original)
	}
}

func TestSealedRoundTrip(t *testing.T) {
	c, _ := NewCodec([]byte("test-key"))

	original := testState{Tag: 7, Title: "secret"}
	encoded, err := c.Encode(original, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasPrefix(encoded, sealedPrefix) {
		t.Errorf("sealed state %q should start with %q", encoded, sealedPrefix)
	}
	if strings.Contains(encoded, "secret") {
		t.Errorf("sealed state leaks plaintext: %q", encoded)
	}

	var decoded testState
	if err := c.Decode(encoded, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != original {
		t.Errorf("Decode() = %+v, want %+v", decoded, original)
	}
}

func TestNilStateIsEmpty(t *testing.T) {
	c, _ := NewCodec([]byte("test-key"))

	encoded, err := c.Encode(nil, false)
	if err != nil {
		t.Fatalf("Encode(nil) failed: %v", err)
	}
	if encoded != "" {
		t.Errorf("Encode(nil) = %q, want empty", encoded)
	}

	decoded := testState{Tag: 9}
	if err := c.Decode("", &decoded); err != nil {
		t.Fatalf("Decode(\"\") failed: %v", err)
	}
	if decoded.Tag != 9 {
		t.Errorf("Decode(\"\") modified the target: %+v", decoded)
	}
}

func TestTamperedSignature(t *testing.T) {
	c, _ := NewCodec([]byte("test-key"))
	encoded, _ := c.Encode(testState{Tag: 1}, false)

	tampered := flip(encoded, 0)

	var decoded testState
	err := c.Decode(tampered, &decoded)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Decode(tampered) error = %v, want ErrSignatureInvalid", err)
	}
}

func TestTamperedCiphertext(t *testing.T) {
	c, _ := NewCodec([]byte("test-key"))
	encoded, _ := c.Encode(testState{Tag: 1}, true)

	tampered := flip(encoded, len(encoded)/2)

	var decoded testState
	err := c.Decode(tampered, &decoded)
	if !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("Decode(tampered) error = %v, want ErrDecryptFailed", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	c, _ := NewCodec([]byte("test-key"))

	var decoded testState
	err := c.Decode("noseparator", &decoded)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Decode() error = %v, want ErrInvalidFormat", err)
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	c1, _ := NewCodec([]byte("key-one"))
	c2, _ := NewCodec([]byte("key-two"))

	for _, sealed := range []bool{false, true} {
		encoded, err := c1.Encode(testState{Tag: 3}, sealed)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		var decoded testState
		if err := c2.Decode(encoded, &decoded); err == nil {
			t.Errorf("sealed=%v: expected error when decoding with a different key", sealed)
		}
	}
}

// flip replaces the base64 character at i with a different one.
func flip(s string, i int) string {
	r := byte('A')
	if s[i] == 'A' {
		r = 'B'
	}
	return s[:i] + string(r) + s[i+1:]
}
