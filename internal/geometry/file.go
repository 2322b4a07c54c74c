package geometry

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/sprinkler-layout/internal/fsutil"
)

// MaxFileSize bounds geometry files read by LoadFile.
const MaxFileSize = 4 * 1024 * 1024

// fileDataset is the on-disk shape of a geometry file. JSON files decode
// through the same YAML decoder.
type fileDataset struct {
	Name       string      `yaml:"name"`
	Room       []Point3D   `yaml:"room"`
	Pipes      []Pipe      `yaml:"pipes"`
	Sprinklers []Sprinkler `yaml:"sprinklers"`
	Connectors []Connector `yaml:"connectors"`
}

// IsGeometryFile reports whether path has an extension LoadFile accepts.
func IsGeometryFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// LoadFile reads a YAML or JSON geometry file. The dataset name defaults to the
// file's base name when the document does not set one.
func LoadFile(fsys fsutil.FileSystem, path string) (*Dataset, error) {
	cleanPath := filepath.Clean(path)
	if !IsGeometryFile(cleanPath) {
		return nil, fmt.Errorf("geometry file must be .yaml, .yml or .json, got %q", filepath.Ext(cleanPath))
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat geometry file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("geometry file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read geometry file: %w", err)
	}
	ds, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	if ds.name == "" {
		base := filepath.Base(cleanPath)
		ds.name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return ds, nil
}

// Decode parses one geometry document.
func Decode(r io.Reader) (*Dataset, error) {
	var doc fileDataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, malformed("document", -1, "empty geometry document")
		}
		return nil, fmt.Errorf("failed to parse geometry: %w", err)
	}
	return NewDataset(doc.Name, doc.Room, doc.Pipes, doc.Sprinklers, doc.Connectors), nil
}

// Encode writes src as a YAML geometry document readable by Decode.
func Encode(w io.Writer, src Source) error {
	doc := fileDataset{
		Name:       src.Name(),
		Room:       src.Room(),
		Pipes:      src.Pipes(),
		Sprinklers: src.Sprinklers(),
		Connectors: src.Connectors(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode geometry: %w", err)
	}
	return enc.Close()
}
