package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Staging writes downloaded payloads to a local directory pending analysis.
type Staging struct {
	basePath string
}

func New(basePath string) (*Staging, error) {
	if basePath == "" {
		basePath = "./downloads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Staging{basePath: basePath}, nil
}

func (s *Staging) Save(_ context.Context, key string, data io.Reader) error {
	f, err := os.Create(s.path(key))
	if err != nil {
		return fmt.Errorf("create staged file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write staged file: %w", err)
	}
	return nil
}

func (s *Staging) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("open staged file: %w", err)
	}
	return f, nil
}

func (s *Staging) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		return fmt.Errorf("remove staged file: %w", err)
	}
	return nil
}

// path confines keys to the staging directory; keys are generated
// internally but a platform-supplied filename component must not escape.
func (s *Staging) path(key string) string {
	return filepath.Join(s.basePath, filepath.Base(key))
}
