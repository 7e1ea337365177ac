package veil

import (
	"bufio"
	"fmt"
	"io"
)

// Streaming mode substitutes one character at a time and writes it
// immediately. It deliberately skips the interleave step: the interleave
// needs the full sequence length up front, so a caller wanting the
// interleaved form over a stream must buffer the whole stream and use
// Encode instead.

// EncodeStream reads codes from r until EOF, applies the two-stage
// substitution and writes each transformed code to w. A read or write
// failure aborts the stream; whatever was already written stays written.
func (c *Codec) EncodeStream(r io.Reader, w io.Writer) error {
	return c.stream(r, w, encryptChar)
}

// DecodeStream inverts EncodeStream over a stream produced by it.
func (c *Codec) DecodeStream(r io.Reader, w io.Writer) error {
	return c.stream(r, w, decryptChar)
}

func (c *Codec) stream(r io.Reader, w io.Writer, f func(c, k1, k2 byte) byte) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	i, j := 0, 0
	for n := 0; ; n++ {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("veil: stream read: %w", err)
		}
		if b >= Modulus {
			return fmt.Errorf("veil: stream byte 0x%02x at offset %d: %w", b, n, ErrOutOfRange)
		}
		if err := bw.WriteByte(f(b, c.key1[i], c.key2[j])); err != nil {
			return fmt.Errorf("veil: stream write: %w", err)
		}
		i = (i + 1) % len(c.key1)
		j = (j + 1) % len(c.key2)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("veil: stream write: %w", err)
	}
	return nil
}
