package family

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dukerupert/familytree/internal/model"
)

type document struct {
	Members []model.FamilyMember `yaml:"members"`
}

// Decode reads a YAML document of the form
//
//	members:
//	  - id: john-sr
//	    name: John Smith Sr.
//	    dateOfBirth: 1935-03-15
//	    ...
//
// and builds a registry from it. Unknown keys are rejected.
func Decode(r io.Reader, opts ...Option) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return New(doc.Members, opts...)
}

// LoadFile builds a registry from the YAML file at path.
func LoadFile(path string, opts ...Option) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()
	return Decode(f, opts...)
}

// Load returns the registry at path, or the built-in sample when path is empty.
func Load(path string, opts ...Option) (*Registry, error) {
	if path == "" {
		return New(Sample(), opts...)
	}
	return LoadFile(path, opts...)
}
