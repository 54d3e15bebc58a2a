// Package cli holds shared helpers for the dfakit commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/fsmlab/dfakit/pkg/automaton"
)

// LoadAutomaton reads an automaton definition from disk. JSON is the
// canonical format; YAML is accepted as a convenience and mapped onto
// the same document shape.
func LoadAutomaton(path string) (*automaton.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return automaton.Decode(data)
	}
}

// LoadDocument is LoadAutomaton without the validation step; convert
// needs the raw document even when it does not construct.
func LoadDocument(path string) (*automaton.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLDocument(data)
	default:
		return automaton.ParseDocument(data)
	}
}

func decodeYAML(data []byte) (*automaton.Automaton, error) {
	doc, err := parseYAMLDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Automaton()
}

func parseYAMLDocument(data []byte) (*automaton.Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var doc automaton.Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		TagName:     "mapstructure",
		ErrorUnused: false,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("map yaml document: %w", err)
	}
	return &doc, nil
}
