// Package files owns the durable photo binaries. Capture URIs handed to the
// app are transient and may be revoked by the host, so every photo is copied
// into the library before its metadata record exists.
package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrOutsideLibrary = errors.New("path outside photo library")

type Library struct {
	root string
}

func NewLibrary(root string) (*Library, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create photo library: %w", err)
	}
	absolute, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve photo library root: %w", err)
	}
	return &Library{root: absolute}, nil
}

func (library *Library) Root() string {
	return library.root
}

// SaveFromTransient copies the file behind a transient capture URI into the
// library and returns the durable path. The original file is left in place;
// the host reclaims it on its own schedule.
func (library *Library) SaveFromTransient(transientURI string) (string, error) {
	sourcePath := stripFileScheme(transientURI)

	source, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open transient file: %w", err)
	}
	defer source.Close()

	fileName := fmt.Sprintf("photo_%s%s", uuid.NewString(), extensionOf(sourcePath))
	destinationPath := filepath.Join(library.root, fileName)

	destination, err := os.Create(destinationPath)
	if err != nil {
		return "", fmt.Errorf("create library file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		os.Remove(destinationPath)
		return "", fmt.Errorf("copy into library: %w", err)
	}

	return destinationPath, nil
}

// Remove deletes a library file. Absent files are fine; paths outside the
// library root are refused so a corrupt record cannot delete arbitrary files.
func (library *Library) Remove(path string) error {
	cleaned := filepath.Clean(stripFileScheme(path))
	if !strings.HasPrefix(cleaned, library.root+string(filepath.Separator)) {
		return ErrOutsideLibrary
	}

	err := os.Remove(cleaned)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete library file: %w", err)
	}
	return nil
}

func stripFileScheme(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

func extensionOf(path string) string {
	extension := filepath.Ext(path)
	if extension == "" {
		return ".jpg"
	}
	return extension
}
