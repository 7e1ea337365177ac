// Package veil implements a reversible keyed text-obfuscation transform:
// a double-keyed polyalphabetic substitution over the 7-bit character
// space, followed by a deterministic positional interleave of the result.
// It is an obfuscation format, not a cipher with any security claim.
package veil

import (
	"errors"
	"fmt"
)

// Modulus is the size of the character alphabet. All input, key and
// output codes live in [0, Modulus).
const Modulus = 128

// DefaultKey2 is the second key used when the caller supplies only one.
// It is a fixed, public constant and provides no secrecy.
const DefaultKey2 = "madoka"

var (
	// ErrEmptyKey is returned when a key of length zero is supplied.
	ErrEmptyKey = errors.New("veil: empty key")

	// ErrOutOfRange is returned when an input or key byte is outside
	// the 7-bit alphabet.
	ErrOutOfRange = errors.New("veil: character code out of range")
)

// Codec applies the transform under a fixed pair of keys. It holds no
// per-call state, so a single Codec is safe for concurrent use.
type Codec struct {
	key1 []byte
	key2 []byte
}

// New creates a Codec from two explicit keys. Both keys must be
// non-empty and contain only codes below Modulus.
func New(key1, key2 string) (*Codec, error) {
	k1, err := checkKey("key1", key1)
	if err != nil {
		return nil, err
	}
	k2, err := checkKey("key2", key2)
	if err != nil {
		return nil, err
	}
	return &Codec{key1: k1, key2: k2}, nil
}

// NewWithDefault creates a Codec from one key, using DefaultKey2 as the
// second.
func NewWithDefault(key1 string) (*Codec, error) {
	return New(key1, DefaultKey2)
}

func checkKey(name, key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("veil: %s: %w", name, ErrEmptyKey)
	}
	k := []byte(key)
	for i, b := range k {
		if b >= Modulus {
			return nil, fmt.Errorf("veil: %s: byte 0x%02x at offset %d: %w", name, b, i, ErrOutOfRange)
		}
	}
	return k, nil
}

func checkData(data []byte) error {
	for i, b := range data {
		if b >= Modulus {
			return fmt.Errorf("veil: input byte 0x%02x at offset %d: %w", b, i, ErrOutOfRange)
		}
	}
	return nil
}

// encryptChar combines one input code with one code from each key,
// wrapping after each addition.
func encryptChar(c, k1, k2 byte) byte {
	return byte(((int(c)+int(k1))%Modulus + int(k2)) % Modulus)
}

// decryptChar inverts encryptChar: subtract k2 then k1, adding Modulus
// back whenever a subtraction goes negative.
func decryptChar(c, k1, k2 byte) byte {
	x := int(c) - int(k2)
	if x < 0 {
		x += Modulus
	}
	y := x - int(k1)
	if y < 0 {
		y += Modulus
	}
	return byte(y)
}

// substitute runs the two-stage substitution left to right. The two key
// indices rotate independently, each wrapping modulo its own key length,
// and always start from zero.
func (c *Codec) substitute(data []byte) []byte {
	out := make([]byte, len(data))
	i, j := 0, 0
	for n, b := range data {
		out[n] = encryptChar(b, c.key1[i], c.key2[j])
		i = (i + 1) % len(c.key1)
		j = (j + 1) % len(c.key2)
	}
	return out
}

func (c *Codec) unsubstitute(data []byte) []byte {
	out := make([]byte, len(data))
	i, j := 0, 0
	for n, b := range data {
		out[n] = decryptChar(b, c.key1[i], c.key2[j])
		i = (i + 1) % len(c.key1)
		j = (j + 1) % len(c.key2)
	}
	return out
}

// Encode obfuscates data: substitution first, then the positional
// interleave. Output length always equals input length.
func (c *Codec) Encode(data []byte) ([]byte, error) {
	if err := checkData(data); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return shuffle(c.substitute(data)), nil
}

// Decode inverts Encode given the same keys.
func (c *Codec) Decode(cipher []byte) ([]byte, error) {
	if err := checkData(cipher); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return c.unsubstitute(unshuffle(cipher)), nil
}

// EncodeString is Encode over strings.
func (c *Codec) EncodeString(s string) (string, error) {
	out, err := c.Encode([]byte(s))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeString is Decode over strings.
func (c *Codec) DecodeString(s string) (string, error) {
	out, err := c.Decode([]byte(s))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
