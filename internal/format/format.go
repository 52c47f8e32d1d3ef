// Package format reads and writes argument-definition documents: a graph
// definition plus the audiences to evaluate it for, as YAML or JSON.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Harshitk-cp/caes/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	ExtYAML = ".yaml"
	ExtJSON = ".json"
)

// Document is the on-disk form of an argument graph and its audiences.
type Document struct {
	domain.GraphDefinition `yaml:",inline"`
	Audiences              []domain.AudienceDefinition `json:"audiences,omitempty" yaml:"audiences,omitempty"`
}

// Audience returns the audience called name, or the first one when name is empty.
func (d *Document) Audience(name string) (*domain.AudienceDefinition, error) {
	if len(d.Audiences) == 0 {
		return nil, fmt.Errorf("document %q defines no audiences", d.Name)
	}
	if name == "" {
		return &d.Audiences[0], nil
	}
	for i := range d.Audiences {
		if d.Audiences[i].Name == name {
			return &d.Audiences[i], nil
		}
	}
	return nil, fmt.Errorf("document %q has no audience %q", d.Name, name)
}

// LoadFromPath reads a document; the format is chosen by extension, or by
// content when the extension is not recognised.
func LoadFromPath(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses a document. ext is a format hint (".yaml", ".yml", ".json");
// empty means detect from content: JSON if it starts with '{', else YAML.
func Load(data []byte, ext string) (*Document, error) {
	var doc Document
	switch normalizeExt(ext, data) {
	case ExtJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse document json: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse document yaml: %w", err)
		}
	}
	return &doc, nil
}

// Marshal encodes doc as YAML or JSON according to ext.
func Marshal(doc *Document, ext string) ([]byte, error) {
	if normalizeExt(ext, nil) == ExtJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode document json: %w", err)
		}
		return append(data, '\n'), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func WriteFile(path string, doc *Document) error {
	data, err := Marshal(doc, filepath.Ext(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// FromGraph builds a document from a graph and its audiences.
func FromGraph(name string, g *domain.ArgumentGraph, audiences ...domain.AudienceDefinition) *Document {
	return &Document{GraphDefinition: domain.DefinitionOf(name, g), Audiences: audiences}
}

func normalizeExt(ext string, data []byte) string {
	switch strings.ToLower(ext) {
	case ".json", "json":
		return ExtJSON
	case ".yaml", ".yml", "yaml", "yml":
		return ExtYAML
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return ExtJSON
	}
	return ExtYAML
}
