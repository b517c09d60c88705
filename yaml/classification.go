// Package yaml loads simplifier classifications from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/pagetrim"
	"gopkg.in/yaml.v3"
)

// ClassificationFile is the on-disk form of a classification. Every list
// extends the defaults rather than replacing them.
type ClassificationFile struct {
	IncludeLinks        bool     `yaml:"include_links"`
	IncludeImages       bool     `yaml:"include_images"`
	ImportantElements   []string `yaml:"important_elements"`
	IgnoreElements      []string `yaml:"ignore_elements"`
	StandaloneElements  []string `yaml:"standalone_elements"`
	ImportantAttributes []string `yaml:"important_attributes"`
}

// Classification applies the file on top of base.
func (f *ClassificationFile) Classification(base *pagetrim.Classification) *pagetrim.Classification {
	cls := base
	if f.IncludeLinks {
		cls = cls.WithLinks()
	}
	if f.IncludeImages {
		cls = cls.WithImages()
	}
	return cls.
		WithImportant(f.ImportantElements...).
		WithIgnored(f.IgnoreElements...).
		WithStandalone(f.StandaloneElements...).
		WithAttributes(f.ImportantAttributes...)
}

// ParseClassification decodes a classification file. Unknown keys are
// rejected so that a misspelled list is not silently ignored.
func ParseClassification(data []byte) (*ClassificationFile, error) {
	var f ClassificationFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, pagetrim.Errorf(pagetrim.EINVALID, "invalid classification: %v", err)
	}
	return &f, nil
}

// LoadClassification reads the file at path and returns the default
// classification extended by it.
func LoadClassification(path string) (*pagetrim.Classification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pagetrim.Errorf(pagetrim.ENOTFOUND, "classification file %s not found", path)
		}
		return nil, err
	}

	f, err := ParseClassification(data)
	if err != nil {
		return nil, err
	}
	return f.Classification(pagetrim.DefaultClassification()), nil
}
