package transform

import (
	"fmt"

	"veil-go/pkg/veil"
)

type veilTransform struct {
	codec *veil.Codec
}

// NewVeilTransform creates the keyed obfuscation stage. key2 may be
// empty, in which case veil.DefaultKey2 is used.
func NewVeilTransform(key1, key2 string) (Transform, error) {
	var codec *veil.Codec
	var err error
	if key2 == "" {
		codec, err = veil.NewWithDefault(key1)
	} else {
		codec, err = veil.New(key1, key2)
	}
	if err != nil {
		return nil, fmt.Errorf("veil stage: %w", err)
	}
	return &veilTransform{codec: codec}, nil
}

func (t *veilTransform) Apply(data []byte) ([]byte, error) {
	out, err := t.codec.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("veil apply: %w", err)
	}
	return out, nil
}

func (t *veilTransform) Reverse(data []byte) ([]byte, error) {
	out, err := t.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("veil reverse: %w", err)
	}
	return out, nil
}
