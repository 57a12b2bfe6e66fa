// Package localmedia keeps uploaded files in a directory served by the
// HTTP server itself.
package localmedia

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type Dir struct {
	root      string
	publicURL string
}

func NewDir(root string, publicURL string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	if publicURL == "" {
		publicURL = "/media/"
	}
	return &Dir{root: root, publicURL: publicURL}, nil
}

func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) PutImage(ctx context.Context, key string, contentType string, content []byte) (string, error) {
	clean := path.Clean("/" + key)
	if strings.Contains(key, "..") || clean == "/" {
		return "", fmt.Errorf("invalid media key %q", key)
	}

	full := filepath.Join(d.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return strings.TrimRight(d.publicURL, "/") + clean, nil
}
