package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/flowintel/flowintel/internal/core"
	"gopkg.in/yaml.v3"
)

// DocumentExt is the file extension of profile documents.
const DocumentExt = ".yaml"

// Decode parses and validates a YAML profile document. Unknown fields are
// rejected so typos in hand-written documents surface early.
func Decode(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, core.WrapError(core.ErrProfileInvalid, errors.New("empty document"))
		}
		return nil, core.WrapError(core.ErrProfileInvalid, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Encode renders a profile as a YAML document.
func Encode(p Profile) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encoding profile %s: %w", p.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding profile %s: %w", p.ID, err)
	}
	return buf.Bytes(), nil
}
