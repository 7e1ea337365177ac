package veil

import (
	"bytes"
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	keys := [][2]string{
		{"sayaka", "madoka"},
		{"k", "z"},
		{"a", "longer second key"},
		{"The quick brown fox", "!"},
	}
	for _, kp := range keys {
		c, err := New(kp[0], kp[1])
		if err != nil {
			t.Fatalf("New(%q, %q): %v", kp[0], kp[1], err)
		}
		for n := 0; n <= 64; n++ {
			in := make([]byte, n)
			for i := range in {
				in[i] = byte((i*37 + n) % Modulus)
			}
			enc, err := c.Encode(in)
			if err != nil {
				t.Fatalf("Encode len %d: %v", n, err)
			}
			if len(enc) != n {
				t.Errorf("Encode changed length: got %d, want %d", len(enc), n)
			}
			dec, err := c.Decode(enc)
			if err != nil {
				t.Fatalf("Decode len %d: %v", n, err)
			}
			if !bytes.Equal(dec, in) {
				t.Errorf("round trip failed for len %d keys %q/%q", n, kp[0], kp[1])
			}
		}
	}
}

func TestEmptyInput(t *testing.T) {
	c, err := New("sayaka", "madoka")
	if err != nil {
		t.Fatal(err)
	}
	enc, err := c.Encode(nil)
	if err != nil || len(enc) != 0 {
		t.Errorf("Encode(nil) = %v, %v; want empty, nil", enc, err)
	}
	dec, err := c.Decode(nil)
	if err != nil || len(dec) != 0 {
		t.Errorf("Decode(nil) = %v, %v; want empty, nil", dec, err)
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	if _, err := New("", "madoka"); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("New with empty key1: got %v, want ErrEmptyKey", err)
	}
	if _, err := New("sayaka", ""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("New with empty key2: got %v, want ErrEmptyKey", err)
	}
}

func TestOutOfRangeRejected(t *testing.T) {
	if _, err := New("say\x80ka", "madoka"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("New with 8-bit key byte: got %v, want ErrOutOfRange", err)
	}
	c, err := New("sayaka", "madoka")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Encode([]byte{0x41, 0xFF}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Encode with 8-bit input byte: got %v, want ErrOutOfRange", err)
	}
	if _, err := c.Decode([]byte{0x80}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Decode with 8-bit input byte: got %v, want ErrOutOfRange", err)
	}
}

func TestDefaultKey2(t *testing.T) {
	short, err := NewWithDefault("sayaka")
	if err != nil {
		t.Fatal(err)
	}
	full, err := New("sayaka", DefaultKey2)
	if err != nil {
		t.Fatal(err)
	}
	in := []byte("Master of Puppets")
	a, _ := short.Encode(in)
	b, _ := full.Encode(in)
	if !bytes.Equal(a, b) {
		t.Errorf("single-key encode differs from explicit DefaultKey2 encode")
	}
}

// Pinned ciphertext for the canonical scenario, so the output format
// cannot drift silently.
func TestKnownVector(t *testing.T) {
	c, err := NewWithDefault("sayaka")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{73, 66, 80, 38, 67, 0, 59, 80, 45, 68, 50, 55, 112, 49, 52, 68, 35}
	got, err := c.EncodeString("Master of Puppets")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal([]byte(got), want) {
		t.Errorf("EncodeString(\"Master of Puppets\") = %v, want %v", []byte(got), want)
	}
	back, err := c.DecodeString(got)
	if err != nil {
		t.Fatal(err)
	}
	if back != "Master of Puppets" {
		t.Errorf("DecodeString = %q, want %q", back, "Master of Puppets")
	}
}

// A length-1 key degenerates to a plain single-character Vigenère shift;
// the whole transform is then that constant shift composed with the
// interleave.
func TestSingleCharKeys(t *testing.T) {
	c, err := New("k", "z")
	if err != nil {
		t.Fatal(err)
	}
	in := []byte("hello")
	shifted := make([]byte, len(in))
	for i, b := range in {
		shifted[i] = byte((int(b) + 'k' + 'z') % Modulus)
	}
	want := shuffle(shifted)
	got, err := c.Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = %v, want constant shift + interleave %v", got, want)
	}
	if wantPinned := []byte{84, 81, 77, 81, 74}; !bytes.Equal(got, wantPinned) {
		t.Errorf("Encode(\"hello\") = %v, want %v", got, wantPinned)
	}
}

func TestCharInverse(t *testing.T) {
	for c := 0; c < Modulus; c += 7 {
		for k1 := 0; k1 < Modulus; k1 += 11 {
			for k2 := 0; k2 < Modulus; k2 += 13 {
				e := encryptChar(byte(c), byte(k1), byte(k2))
				if e >= Modulus {
					t.Fatalf("encryptChar(%d,%d,%d) = %d escaped the alphabet", c, k1, k2, e)
				}
				if d := decryptChar(e, byte(k1), byte(k2)); d != byte(c) {
					t.Fatalf("decryptChar(encryptChar(%d,%d,%d)) = %d", c, k1, k2, d)
				}
			}
		}
	}
}
