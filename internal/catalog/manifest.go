package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManifestFile is the name of the card-count manifest kept next to the packages.
const ManifestFile = "apkg_meta.json"

// ManifestEntry records what a package was built from.
type ManifestEntry struct {
	Cards int `json:"cards"`
}

// Manifest maps a package filename to its entry.
type Manifest map[string]ManifestEntry

// LoadManifest reads the manifest at path. A missing file is an empty manifest.
func LoadManifest(path string) (Manifest, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	manifest := Manifest{}
	if len(bytes.TrimSpace(content)) == 0 {
		return manifest, nil
	}
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}
	return manifest, nil
}

// Merge overwrites the entries present in other and keeps the rest.
func (m Manifest) Merge(other Manifest) {
	for filename, entry := range other {
		m[filename] = entry
	}
}

// Save writes the manifest atomically.
func (m Manifest) Save(path string) error {
	content, err := marshalIndent(m)
	if err != nil {
		return fmt.Errorf("marshalIndent(manifest) > %w", err)
	}
	return writeFileAtomic(path, content)
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp() > %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("file.Write(%s) > %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("file.Chmod > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", path, err)
	}
	return nil
}
