package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kadresources/sheetsync/internal/resource"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the site expects the generated data file
const DefaultPath = "_data/resources.yml"

// Storage handles persistence of the generated document
type Storage struct {
	path string
}

// New creates a Storage writing to path. A leading ~/ is expanded.
func New(path string) (*Storage, error) {
	if path == "" {
		path = DefaultPath
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	return &Storage{path: path}, nil
}

// Path returns the output file path
func (s *Storage) Path() string {
	return s.path
}

// Encode writes the header comment and the YAML document to w
func Encode(w io.Writer, doc *resource.Document) error {
	header := "# Auto-generated from Google Sheet\n" +
		"# Last updated: " + doc.LastUpdated + "\n" +
		"# DO NOT EDIT MANUALLY - This file is automatically generated\n\n"
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	return nil
}

// Load reads the previously written document.
// A missing file is not an error and returns nil.
func (s *Storage) Load() (*resource.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var doc resource.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	return &doc, nil
}

// Save writes the document, creating parent directories as needed.
// The previous file is only replaced once the new one is fully written.
func (s *Storage) Save(doc *resource.Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	return nil
}
