// Package vault is the note storage collaborator: a narrow contract for
// creating and reading notes plus a filesystem implementation. Creation
// never silently overwrites: colliding paths get an incrementing counter
// suffix, so concurrent pipeline runs against the same video stay safe.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Vault is the storage contract consumed by the pipeline.
type Vault interface {
	// Create writes a new note and returns the path actually used, which
	// may carry a counter suffix if the requested path already existed.
	Create(path, content string) (string, error)
	Read(path string) (string, error)
	Exists(path string) (bool, error)
	Mkdir(path string) error
}

// DirVault stores notes as files under a root directory.
type DirVault struct {
	root string
}

// NewDirVault creates the root directory if needed and returns a vault
// rooted there.
func NewDirVault(root string) (*DirVault, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("vault: mkdir %s: %w", root, err)
	}
	return &DirVault{root: root}, nil
}

// Root returns the vault root directory.
func (v *DirVault) Root() string {
	return v.root
}

func (v *DirVault) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("vault: path %q escapes root", path)
	}
	return filepath.Join(v.root, clean), nil
}

func (v *DirVault) Create(path, content string) (string, error) {
	unique, err := v.uniquePath(path)
	if err != nil {
		return "", err
	}
	full, err := v.resolve(unique)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0750); err != nil {
		return "", fmt.Errorf("vault: mkdir parent: %w", err)
	}
	if err := os.WriteFile(full, []byte(content), 0640); err != nil {
		return "", fmt.Errorf("vault: write %s: %w", unique, err)
	}
	return unique, nil
}

func (v *DirVault) Read(path string) (string, error) {
	full, err := v.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("vault: read %s: %w", path, err)
	}
	return string(data), nil
}

func (v *DirVault) Exists(path string) (bool, error) {
	full, err := v.resolve(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (v *DirVault) Mkdir(path string) error {
	full, err := v.resolve(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, 0750)
}

// uniquePath appends " N" before the extension until the path is unused.
func (v *DirVault) uniquePath(path string) (string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	unique := path
	for counter := 1; ; counter++ {
		exists, err := v.Exists(unique)
		if err != nil {
			return "", err
		}
		if !exists {
			return unique, nil
		}
		unique = fmt.Sprintf("%s %d%s", base, counter, ext)
	}
}
